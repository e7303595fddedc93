package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

// BlogRepository persists blogs. List methods order by creation time,
// newest first, and attach the author.
type BlogRepository interface {
	Create(ctx context.Context, b *entity.Blog) error
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*entity.Blog, error)
	ListAll(ctx context.Context) ([]*entity.Blog, error)
	// ListByIDs keeps the order of ids and skips the ones that no longer exist.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Blog, error)
	Update(ctx context.Context, b *entity.Blog) error
	// DeleteWithComments removes every comment of the blog, then the blog.
	DeleteWithComments(ctx context.Context, id string) error
}
