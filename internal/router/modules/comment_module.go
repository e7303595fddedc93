package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-blog/internal/interface/http"
)

// CommentModule mounts /api/comments. Listing a blog's comments is open;
// everything else requires a token.
type CommentModule struct {
	Handler *handlers.CommentHandler
	Guard   Guard
}

func NewCommentModule(h *handlers.CommentHandler, g Guard) *CommentModule {
	return &CommentModule{Handler: h, Guard: g}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	rg.GET("/comments/blog/:blogId", m.Handler.ListForBlog)

	comments := rg.Group("/comments", m.Guard.Protected()...)
	{
		comments.POST("", m.Handler.Create)
		comments.POST("/:id/addcomments", m.Handler.CreateOnBlog)
		comments.POST("/:id/replies", m.Handler.AddReply)
		comments.PUT("/:id", m.Handler.Update)
		comments.DELETE("/:id", m.Handler.Delete)
		comments.PUT("/:id/replies/:replyId", m.Handler.UpdateReply)
		comments.DELETE("/:id/replies/:replyId", m.Handler.DeleteReply)
	}
}
