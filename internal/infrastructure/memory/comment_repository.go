package memory

import (
	"context"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

type CommentRepository struct {
	s *Store
}

func (r *CommentRepository) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.blogs[c.BlogID]; !ok {
		return apperror.NotFound("blog")
	}
	now := r.s.now()
	c.ID = newID()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Replies == nil {
		c.Replies = []entity.Reply{}
	}
	stored := *c
	stored.Author = nil
	stored.Replies = append([]entity.Reply{}, c.Replies...)
	r.s.comments[c.ID] = &commentRow{c: stored, seq: r.s.nextSeq()}
	return nil
}

func (r *CommentRepository) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment")
	}
	return r.s.commentCopy(row), nil
}

func (r *CommentRepository) ListByBlog(_ context.Context, blogID string) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*commentRow, 0)
	for _, row := range r.s.comments {
		if row.c.BlogID == blogID {
			rows = append(rows, row)
		}
	}
	sortComments(rows)
	out := make([]*entity.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.s.commentCopy(row))
	}
	return out, nil
}

func (r *CommentRepository) Update(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.comments[c.ID]
	if !ok {
		return apperror.NotFound("comment")
	}
	row.c.Content = c.Content
	row.c.Replies = append([]entity.Reply{}, c.Replies...)
	row.c.UpdatedAt = r.s.now()
	c.UpdatedAt = row.c.UpdatedAt
	return nil
}

func (r *CommentRepository) AppendReply(_ context.Context, commentID string, reply entity.Reply) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.comments[commentID]
	if !ok {
		return apperror.NotFound("comment")
	}
	row.c.Replies = append(row.c.Replies, reply)
	row.c.UpdatedAt = r.s.now()
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return apperror.NotFound("comment")
	}
	delete(r.s.comments, id)
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
