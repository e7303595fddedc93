package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
)

// BlogModule mounts /api/blogs. The public feed and search are open;
// everything else requires a token.
type BlogModule struct {
	Handler *handlers.BlogHandler
	Guard   Guard
}

func NewBlogModule(h *handlers.BlogHandler, g Guard) *BlogModule {
	return &BlogModule{Handler: h, Guard: g}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	open := rg.Group("/blogs")
	open.GET("/public", m.Handler.ListPublic)
	open.GET("/search", m.Handler.Search)

	blogs := rg.Group("/blogs", m.Guard.Protected()...)
	{
		blogs.POST("", m.Handler.Create)
		blogs.GET("", m.Handler.ListMine)
		blogs.GET("/:id", m.Handler.Get)
		blogs.PUT("/:id", m.Handler.Update)
		blogs.DELETE("/:id", m.Handler.Delete)
	}
}
