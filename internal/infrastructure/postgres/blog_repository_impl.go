package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

const blogSelect = `
	SELECT b.id, b.title, b.description, b.image, b.author_id, b.created_at, b.updated_at,
	       u.id, u.email, u.profile_image, u.created_at, u.updated_at
	FROM blogs b
	JOIN users u ON u.id = b.author_id
`

type BlogRepository struct {
	db DB
}

func NewBlogRepository(db DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func scanBlog(row pgx.Row) (*entity.Blog, error) {
	b := &entity.Blog{Author: &entity.User{}}
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.Image, &b.AuthorID, &b.CreatedAt, &b.UpdatedAt,
		&b.Author.ID, &b.Author.Email, &b.Author.ProfileImage, &b.Author.CreatedAt, &b.Author.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BlogRepository) Create(ctx context.Context, b *entity.Blog) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO blogs (title, description, image, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, b.Title, b.Description, b.Image, b.AuthorID)
	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if pgCode(err) == foreignKeyViolation {
			return apperror.NotFound("user")
		}
		return err
	}
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	if !validID(id) {
		return nil, apperror.NotFound("blog")
	}
	b, err := scanBlog(r.db.QueryRow(ctx, blogSelect+` WHERE b.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("blog")
		}
		return nil, err
	}
	return b, nil
}

func (r *BlogRepository) ListByAuthor(ctx context.Context, authorID string) ([]*entity.Blog, error) {
	if !validID(authorID) {
		return []*entity.Blog{}, nil
	}
	return r.list(ctx, blogSelect+` WHERE b.author_id = $1 ORDER BY b.created_at DESC`, authorID)
}

func (r *BlogRepository) ListAll(ctx context.Context) ([]*entity.Blog, error) {
	return r.list(ctx, blogSelect+` ORDER BY b.created_at DESC`)
}

func (r *BlogRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Blog, error) {
	ids = validIDs(ids)
	if len(ids) == 0 {
		return []*entity.Blog{}, nil
	}
	found, err := r.list(ctx, blogSelect+` WHERE b.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Blog, len(found))
	for _, b := range found {
		byID[b.ID] = b
	}
	out := make([]*entity.Blog, 0, len(found))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BlogRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Blog, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*entity.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BlogRepository) Update(ctx context.Context, b *entity.Blog) error {
	if !validID(b.ID) {
		return apperror.NotFound("blog")
	}
	row := r.db.QueryRow(ctx, `
		UPDATE blogs
		SET title = $1, description = $2, image = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, b.Title, b.Description, b.Image, b.ID)
	if err := row.Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("blog")
		}
		return err
	}
	return nil
}

// DeleteWithComments runs both deletes in one transaction so a failure
// cannot leave orphaned comments behind.
func (r *BlogRepository) DeleteWithComments(ctx context.Context, id string) (err error) {
	if !validID(id) {
		return apperror.NotFound("blog")
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM comments WHERE blog_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = apperror.NotFound("blog")
		return err
	}
	return tx.Commit(ctx)
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
