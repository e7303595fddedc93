package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
)

const (
	publicLimit = 10  // signup and login, per IP and route
	userLimit   = 120 // authenticated calls, per user
)

// Guard carries what the modules need to protect their routes. A nil Redis
// turns the limiters into no-ops.
type Guard struct {
	Authn middleware.Authenticator
	Redis *redis.Client
}

// Public limits anonymous endpoints by client IP and route.
func (g Guard) Public() gin.HandlerFunc {
	return middleware.RateLimit(g.Redis, publicLimit, time.Minute, middleware.KeyByIPAndRoute(), nil)
}

// Protected requires a valid token and limits per user.
func (g Guard) Protected() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.Auth(g.Authn),
		middleware.RateLimit(g.Redis, userLimit, time.Minute, middleware.KeyByUserID(), nil),
	}
}
