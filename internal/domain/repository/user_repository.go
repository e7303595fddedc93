package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

// UserRepository defines the credential store.
// Create returns apperror.ErrDuplicateUser when the email is taken; lookups
// return apperror.ErrNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListByIDs returns the users that exist, keyed by id.
	ListByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
}
