package memory

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

type BlogRepository struct {
	s *Store
}

func (r *BlogRepository) Create(_ context.Context, b *entity.Blog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[b.AuthorID]; !ok {
		return apperror.NotFound("user")
	}
	now := r.s.now()
	b.ID = newID()
	b.CreatedAt, b.UpdatedAt = now, now
	stored := *b
	stored.Author = nil
	r.s.blogs[b.ID] = &blogRow{b: stored, seq: r.s.nextSeq()}
	return nil
}

func (r *BlogRepository) GetByID(_ context.Context, id string) (*entity.Blog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.blogs[id]
	if !ok {
		return nil, apperror.NotFound("blog")
	}
	return r.s.blogCopy(row), nil
}

func (r *BlogRepository) ListByAuthor(_ context.Context, authorID string) ([]*entity.Blog, error) {
	return r.list(func(b *entity.Blog) bool { return b.AuthorID == authorID }), nil
}

func (r *BlogRepository) ListAll(_ context.Context) ([]*entity.Blog, error) {
	return r.list(func(*entity.Blog) bool { return true }), nil
}

func (r *BlogRepository) ListByIDs(_ context.Context, ids []string) ([]*entity.Blog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*entity.Blog, 0, len(ids))
	for _, id := range ids {
		if row, ok := r.s.blogs[id]; ok {
			out = append(out, r.s.blogCopy(row))
		}
	}
	return out, nil
}

func (r *BlogRepository) list(keep func(*entity.Blog) bool) []*entity.Blog {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*blogRow, 0, len(r.s.blogs))
	for _, row := range r.s.blogs {
		if keep(&row.b) {
			rows = append(rows, row)
		}
	}
	sortBlogs(rows)
	out := make([]*entity.Blog, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.s.blogCopy(row))
	}
	return out
}

func (r *BlogRepository) Update(_ context.Context, b *entity.Blog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.blogs[b.ID]
	if !ok {
		return apperror.NotFound("blog")
	}
	row.b.Title = b.Title
	row.b.Description = b.Description
	row.b.Image = b.Image
	row.b.UpdatedAt = r.s.now()
	b.UpdatedAt = row.b.UpdatedAt
	return nil
}

func (r *BlogRepository) DeleteWithComments(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.blogs[id]; !ok {
		return apperror.NotFound("blog")
	}
	for cid, row := range r.s.comments {
		if row.c.BlogID == id {
			delete(r.s.comments, cid)
		}
	}
	delete(r.s.blogs, id)
	return nil
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
