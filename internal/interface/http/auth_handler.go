package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

// Signup accepts JSON or multipart form data with an optional profileImage file.
func (h *AuthHandler) Signup(c *gin.Context) {
	var in application.SignupInput
	if err := bind(c, &in); err != nil {
		fail(c, err, h.Logger)
		return
	}
	img, closeImg, err := formImage(c, "profileImage")
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	defer closeImg()
	in.ProfileImage = img

	res, err := h.Svc.Signup(c.Request.Context(), in)
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	h.Cookies.SetToken(c, res.Token, res.ExpiresAt)
	response.Success(c, http.StatusCreated, res, "signup successful", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in application.LoginInput
	if err := bind(c, &in); err != nil {
		fail(c, err, h.Logger)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), in)
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	h.Cookies.SetToken(c, res.Token, res.ExpiresAt)
	response.Success(c, http.StatusOK, res, "login successful", nil)
}

// Logout clears the cookie. Bearer tokens stay valid until they expire.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}
