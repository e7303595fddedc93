package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/application"
	"github.com/oksasatya/go-ddd-blog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

// Create takes {blogId, content}.
func (h *CommentHandler) Create(c *gin.Context) {
	var in application.CreateCommentInput
	if err := bind(c, &in); err != nil {
		fail(c, err, h.Logger)
		return
	}
	h.create(c, in)
}

// CreateOnBlog takes the blog id from the path and {content} from the body.
func (h *CommentHandler) CreateOnBlog(c *gin.Context) {
	var in application.ContentInput
	if err := bind(c, &in); err != nil {
		fail(c, err, h.Logger)
		return
	}
	h.create(c, application.CreateCommentInput{BlogID: c.Param("id"), Content: in.Content})
}

func (h *CommentHandler) create(c *gin.Context, in application.CreateCommentInput) {
	v, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusCreated, v, "comment created", nil)
}

func (h *CommentHandler) AddReply(c *gin.Context) {
	var in application.ContentInput
	if err := bind(c, &in); err != nil {
		fail(c, err, h.Logger)
		return
	}
	v, err := h.Svc.AddReply(c.Request.Context(), middleware.UserID(c), c.Param("id"), in.Content)
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusCreated, v, "reply added", nil)
}

func (h *CommentHandler) ListForBlog(c *gin.Context) {
	list, err := h.Svc.ListForBlog(c.Request.Context(), c.Param("blogId"))
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusOK, list, "comments", map[string]any{"count": len(list)})
}

func (h *CommentHandler) Update(c *gin.Context) {
	var in application.ContentInput
	if err := bind(c, &in); err != nil {
		fail(c, err, h.Logger)
		return
	}
	v, err := h.Svc.UpdateComment(c.Request.Context(), middleware.UserID(c), c.Param("id"), in.Content)
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusOK, v, "comment updated", nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteComment(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": c.Param("id")}, "comment deleted", nil)
}

func (h *CommentHandler) UpdateReply(c *gin.Context) {
	var in application.ContentInput
	if err := bind(c, &in); err != nil {
		fail(c, err, h.Logger)
		return
	}
	v, err := h.Svc.UpdateReply(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("replyId"), in.Content)
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusOK, v, "reply updated", nil)
}

func (h *CommentHandler) DeleteReply(c *gin.Context) {
	v, err := h.Svc.DeleteReply(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("replyId"))
	if err != nil {
		fail(c, err, h.Logger)
		return
	}
	response.Success(c, http.StatusOK, v, "reply deleted", nil)
}
