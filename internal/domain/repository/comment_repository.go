package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

// CommentRepository persists comments with their embedded replies.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// ListByBlog returns comments newest first with the comment author attached.
	ListByBlog(ctx context.Context, blogID string) ([]*entity.Comment, error)
	// Update overwrites content and the full reply list.
	Update(ctx context.Context, c *entity.Comment) error
	// AppendReply adds r at the end of the reply list in a single write.
	AppendReply(ctx context.Context, commentID string, r entity.Reply) error
	Delete(ctx context.Context, id string) error
}
