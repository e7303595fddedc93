package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

// Create expects multipart form data with title, description and blogImage.
func (h *BlogHandler) Create(c *gin.Context) {
	var in application.CreateBlogInput
	if err := bind(c, &in); err != nil {
		fail(c, err, h.Logger)
		return
	}
	img, closeImg, err := formImage(c, "blogImage")
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	defer closeImg()
	in.Image = img

	v, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusCreated, v, "blog created", nil)
}

func (h *BlogHandler) ListMine(c *gin.Context) {
	list, err := h.Svc.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusOK, list, "blogs", map[string]any{"count": len(list)})
}

func (h *BlogHandler) ListPublic(c *gin.Context) {
	list, err := h.Svc.ListPublic(c.Request.Context())
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusOK, list, "blogs", map[string]any{"count": len(list)})
}

func (h *BlogHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	list, err := h.Svc.SearchBlogs(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusOK, list, "search results", map[string]any{"count": len(list)})
}

func (h *BlogHandler) Get(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusOK, d, "blog", nil)
}

// Update overwrites only the non-empty fields; blogImage is optional.
func (h *BlogHandler) Update(c *gin.Context) {
	var in application.UpdateBlogInput
	if err := bind(c, &in); err != nil {
		fail(c, err, h.Logger)
		return
	}
	img, closeImg, err := formImage(c, "blogImage")
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	defer closeImg()
	in.Image = img

	v, err := h.Svc.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), in)
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusOK, v, "blog updated", nil)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": c.Param("id")}, "blog deleted", nil)
}
