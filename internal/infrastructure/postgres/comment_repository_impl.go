package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

const commentSelect = `
	SELECT c.id, c.content, c.author_id, c.blog_id, c.replies, c.created_at, c.updated_at,
	       u.id, u.email, u.profile_image, u.created_at, u.updated_at
	FROM comments c
	JOIN users u ON u.id = c.author_id
`

// replyRecord is the JSONB shape of one element of comments.replies.
type replyRecord struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func encodeReplies(replies []entity.Reply) (string, error) {
	recs := make([]replyRecord, 0, len(replies))
	for _, r := range replies {
		recs = append(recs, replyRecord(r))
	}
	b, err := json.Marshal(recs)
	return string(b), err
}

func decodeReplies(raw []byte) ([]entity.Reply, error) {
	if len(raw) == 0 {
		return []entity.Reply{}, nil
	}
	var recs []replyRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, err
	}
	out := make([]entity.Reply, 0, len(recs))
	for _, r := range recs {
		out = append(out, entity.Reply(r))
	}
	return out, nil
}

type CommentRepository struct {
	db DB
}

func NewCommentRepository(db DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func scanComment(row pgx.Row) (*entity.Comment, error) {
	c := &entity.Comment{Author: &entity.User{}}
	var replies []byte
	err := row.Scan(&c.ID, &c.Content, &c.AuthorID, &c.BlogID, &replies, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.ID, &c.Author.Email, &c.Author.ProfileImage, &c.Author.CreatedAt, &c.Author.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if c.Replies, err = decodeReplies(replies); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	if !validID(c.BlogID) {
		return apperror.NotFound("blog")
	}
	replies, err := encodeReplies(c.Replies)
	if err != nil {
		return err
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO comments (content, author_id, blog_id, replies)
		VALUES ($1, $2, $3, $4::jsonb)
		RETURNING id, created_at, updated_at
	`, c.Content, c.AuthorID, c.BlogID, replies)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if pgCode(err) == foreignKeyViolation {
			return apperror.NotFound("blog")
		}
		return err
	}
	if c.Replies == nil {
		c.Replies = []entity.Reply{}
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	if !validID(id) {
		return nil, apperror.NotFound("comment")
	}
	c, err := scanComment(r.db.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("comment")
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) ListByBlog(ctx context.Context, blogID string) ([]*entity.Comment, error) {
	out := []*entity.Comment{}
	if !validID(blogID) {
		return out, nil
	}
	rows, err := r.db.Query(ctx, commentSelect+` WHERE c.blog_id = $1 ORDER BY c.created_at DESC`, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	if !validID(c.ID) {
		return apperror.NotFound("comment")
	}
	replies, err := encodeReplies(c.Replies)
	if err != nil {
		return err
	}
	row := r.db.QueryRow(ctx, `
		UPDATE comments
		SET content = $1, replies = $2::jsonb, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, c.Content, replies, c.ID)
	if err := row.Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("comment")
		}
		return err
	}
	return nil
}

func (r *CommentRepository) AppendReply(ctx context.Context, commentID string, reply entity.Reply) error {
	if !validID(commentID) {
		return apperror.NotFound("comment")
	}
	b, err := json.Marshal(replyRecord(reply))
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE comments
		SET replies = replies || jsonb_build_array($1::jsonb), updated_at = now()
		WHERE id = $2
	`, string(b), commentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("comment")
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return apperror.NotFound("comment")
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("comment")
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
