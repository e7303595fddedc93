package router

import (
	"github.com/oksasatya/go-ddd-blog/internal/container"
	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
	"github.com/oksasatya/go-ddd-blog/internal/router/modules"
)

// InitModules builds the handlers from c and adds every feature module to
// the registry. Uploaded files are served outside /api at /uploads.
func InitModules(r *Registry, c *container.Container) {
	guard := modules.Guard{Authn: c.AuthService, Redis: c.Redis}

	r.Add(
		modules.NewAuthModule(handlers.NewAuthHandler(c.AuthService, c.Cookies, c.Logger), guard),
		modules.NewUserModule(handlers.NewUserHandler(c.AuthService, c.Logger), guard),
		modules.NewBlogModule(handlers.NewBlogHandler(c.BlogService, c.Logger), guard),
		modules.NewCommentModule(handlers.NewCommentHandler(c.CommentService, c.Logger), guard),
	)
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}

	var remote handlers.Locator
	if c.Bucket != nil {
		remote = c.Bucket
	}
	uploads := handlers.NewUploadHandler(c.Config.UploadsDir, remote)
	r.Engine.GET("/uploads/*filepath", uploads.Serve)
	r.Engine.HEAD("/uploads/*filepath", uploads.Serve)
}
