package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
)

// AuthModule serves POST /api/auth/signup, /api/auth/login and /api/auth/logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   Guard
}

func NewAuthModule(h *handlers.AuthHandler, g Guard) *AuthModule {
	return &AuthModule{Handler: h, Guard: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	limiter := m.Guard.Public()
	auth.POST("/signup", limiter, m.Handler.Signup)
	auth.POST("/login", limiter, m.Handler.Login)
	auth.POST("/logout", m.Handler.Logout)
}
