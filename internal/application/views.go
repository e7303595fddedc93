package application

import (
	"time"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
)

// PublicUser is the outward view of a user. It has no password field.
type PublicUser struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	ProfileImage    string    `json:"profile_image"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// AuthorSummary is attached to blogs, comments and replies.
type AuthorSummary struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	ProfileImage    string `json:"profile_image"`
	ProfileImageURL string `json:"profile_image_url"`
}

type BlogView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	ImageURL    string         `json:"image_url"`
	AuthorID    string         `json:"author_id"`
	Author      *AuthorSummary `json:"author"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BlogDetail is a blog with its comments, newest first.
type BlogDetail struct {
	BlogView
	Comments []CommentView `json:"comments"`
}

type CommentView struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	BlogID    string         `json:"blog_id"`
	AuthorID  string         `json:"author_id"`
	Author    *AuthorSummary `json:"author"`
	Replies   []ReplyView    `json:"replies"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type ReplyView struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	AuthorID  string         `json:"author_id"`
	Author    *AuthorSummary `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func NewPublicUser(u *entity.User) PublicUser {
	return PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		ProfileImage:    u.ProfileImage,
		ProfileImageURL: u.ProfileImageURL(),
		CreatedAt:       u.CreatedAt,
	}
}

// NewAuthorSummary returns nil when the author is unknown.
func NewAuthorSummary(u *entity.User) *AuthorSummary {
	if u == nil {
		return nil
	}
	return &AuthorSummary{
		ID:              u.ID,
		Email:           u.Email,
		ProfileImage:    u.ProfileImage,
		ProfileImageURL: u.ProfileImageURL(),
	}
}

func NewBlogView(b *entity.Blog) BlogView {
	return BlogView{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Image:       b.Image,
		ImageURL:    b.ImageURL(),
		AuthorID:    b.AuthorID,
		Author:      NewAuthorSummary(b.Author),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func newBlogViews(blogs []*entity.Blog) []BlogView {
	out := make([]BlogView, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, NewBlogView(b))
	}
	return out
}

// newCommentView resolves the comment author and every reply author from
// authors. c.Author wins over the map when the store already joined it.
func newCommentView(c *entity.Comment, authors map[string]*entity.User) CommentView {
	author := c.Author
	if author == nil {
		author = authors[c.AuthorID]
	}
	v := CommentView{
		ID:        c.ID,
		Content:   c.Content,
		BlogID:    c.BlogID,
		AuthorID:  c.AuthorID,
		Author:    NewAuthorSummary(author),
		Replies:   make([]ReplyView, 0, len(c.Replies)),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for _, r := range c.Replies {
		v.Replies = append(v.Replies, ReplyView{
			ID:        r.ID,
			Content:   r.Content,
			AuthorID:  r.AuthorID,
			Author:    NewAuthorSummary(authors[r.AuthorID]),
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return v
}
