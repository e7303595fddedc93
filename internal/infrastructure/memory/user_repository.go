package memory

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.emails[u.Email]; ok {
		return apperror.DuplicateUser()
	}
	now := r.s.now()
	u.ID = newID()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = &userRow{u: *u, seq: r.s.nextSeq()}
	r.s.emails[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u := r.s.authorCopy(id); u != nil {
		return u, nil
	}
	return nil, apperror.NotFound("user")
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if id, ok := r.s.emails[email]; ok {
		return r.s.authorCopy(id), nil
	}
	return nil, apperror.NotFound("user")
}

func (r *UserRepository) ListByIDs(_ context.Context, ids []string) (map[string]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make(map[string]*entity.User, len(ids))
	for _, id := range ids {
		if u := r.s.authorCopy(id); u != nil {
			out[id] = u
		}
	}
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
