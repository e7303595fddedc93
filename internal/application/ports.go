package application

import (
	"context"
	"errors"
	"io"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

// FileStore keeps uploaded images by filename.
type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) error
	Delete(ctx context.Context, name string) error
}

// BlogSearch is a full-text index over blog titles and descriptions.
type BlogSearch interface {
	Put(ctx context.Context, b *entity.Blog) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]string, error)
}

// FeedCache holds the rendered public feed between blog mutations.
type FeedCache interface {
	Get(ctx context.Context) ([]BlogView, bool, error)
	Set(ctx context.Context, feed []BlogView) error
	Invalidate(ctx context.Context) error
}

// Publisher puts a JSON job on the notification queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// storeErr keeps application errors from the stores as they are and turns
// anything else into an internal error.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.Internal(err)
}
