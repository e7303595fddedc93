package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

const CtxUserIDKey = "userID"

// Authenticator resolves a session token to a user id.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// Auth reads the token from the Authorization header or, failing that, the
// access_token cookie, and stores the user id under CtxUserIDKey.
func Auth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := authn.Authenticate(tokenFrom(c))
		if err != nil {
			msg := "unauthenticated"
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				msg = appErr.Message
			}
			response.Abort(c, http.StatusUnauthorized, msg, nil)
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if token, err := c.Cookie(helpers.AccessTokenCookie); err == nil {
		return token
	}
	return ""
}

// UserID returns the id stored by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
