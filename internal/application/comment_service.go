package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

type CommentService struct {
	Comments repo.CommentRepository
	Blogs    repo.BlogRepository
	Users    repo.UserRepository
	Notify   *Notifier
	Logger   *logrus.Logger

	now func() time.Time
}

func NewCommentService(comments repo.CommentRepository, blogs repo.BlogRepository, users repo.UserRepository, notify *Notifier, logger *logrus.Logger) *CommentService {
	return &CommentService{
		Comments: comments,
		Blogs:    blogs,
		Users:    users,
		Notify:   notify,
		Logger:   logger,
		now:      time.Now,
	}
}

type CreateCommentInput struct {
	BlogID  string `json:"blogId" form:"blogId" validate:"required"`
	Content string `json:"content" form:"content" validate:"required"`
}

type ContentInput struct {
	Content string `json:"content" form:"content"`
}

func requireContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperror.Validation("content", "content is required")
	}
	return content, nil
}

func (s *CommentService) Create(ctx context.Context, identity string, in CreateCommentInput) (*CommentView, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validate(in); err != nil {
		return nil, err
	}
	blog, err := s.Blogs.GetByID(ctx, in.BlogID)
	if err != nil {
		return nil, storeErr(err)
	}

	c := &entity.Comment{Content: in.Content, AuthorID: identity, BlogID: blog.ID, Replies: []entity.Reply{}}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, storeErr(err)
	}

	v, err := s.view(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if s.Notify.Enabled() {
		s.Notify.NewComment(ctx, blog, c, s.author(ctx, identity))
	}
	return v, nil
}

// AddReply appends a reply and returns the whole comment.
func (s *CommentService) AddReply(ctx context.Context, identity, commentID, content string) (*CommentView, error) {
	content, err := requireContent(content)
	if err != nil {
		return nil, err
	}
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeErr(err)
	}

	now := s.now()
	r := entity.Reply{ID: uuid.NewString(), Content: content, AuthorID: identity, CreatedAt: now, UpdatedAt: now}
	if err := s.Comments.AppendReply(ctx, c.ID, r); err != nil {
		return nil, storeErr(err)
	}

	v, err := s.view(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if s.Notify.Enabled() {
		s.Notify.NewReply(ctx, c, r, s.author(ctx, identity))
	}
	return v, nil
}

// ListForBlog returns NotFound when the blog does not exist.
func (s *CommentService) ListForBlog(ctx context.Context, blogID string) ([]CommentView, error) {
	if _, err := s.Blogs.GetByID(ctx, blogID); err != nil {
		return nil, storeErr(err)
	}
	comments, err := s.Comments.ListByBlog(ctx, blogID)
	if err != nil {
		return nil, storeErr(err)
	}
	return commentViews(ctx, s.Users, comments)
}

// UpdateComment leaves the content unchanged when it is empty.
func (s *CommentService) UpdateComment(ctx context.Context, identity, id, content string) (*CommentView, error) {
	c, err := s.Comments.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if !entity.IsOwner(identity, c) {
		return nil, apperror.Forbidden("you can only edit your own comments")
	}
	if content = strings.TrimSpace(content); content != "" {
		c.Content = content
		if err := s.Comments.Update(ctx, c); err != nil {
			return nil, storeErr(err)
		}
	}
	return s.single(ctx, c)
}

func (s *CommentService) DeleteComment(ctx context.Context, identity, id string) error {
	c, err := s.Comments.GetByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if !entity.IsOwner(identity, c) {
		return apperror.Forbidden("you can only delete your own comments")
	}
	return storeErr(s.Comments.Delete(ctx, id))
}

// UpdateReply is gated by the reply author, not the comment author. Empty
// content leaves the reply unchanged.
func (s *CommentService) UpdateReply(ctx context.Context, identity, commentID, replyID, content string) (*CommentView, error) {
	c, r, err := s.ownedReply(ctx, identity, commentID, replyID, "edit")
	if err != nil {
		return nil, err
	}
	if content = strings.TrimSpace(content); content != "" {
		r.Content = content
		r.UpdatedAt = s.now()
		if err := s.Comments.Update(ctx, c); err != nil {
			return nil, storeErr(err)
		}
	}
	return s.single(ctx, c)
}

// DeleteReply removes the reply and keeps the order of the others.
func (s *CommentService) DeleteReply(ctx context.Context, identity, commentID, replyID string) (*CommentView, error) {
	c, _, err := s.ownedReply(ctx, identity, commentID, replyID, "delete")
	if err != nil {
		return nil, err
	}
	c.RemoveReply(replyID)
	if err := s.Comments.Update(ctx, c); err != nil {
		return nil, storeErr(err)
	}
	return s.single(ctx, c)
}

func (s *CommentService) ownedReply(ctx context.Context, identity, commentID, replyID, verb string) (*entity.Comment, *entity.Reply, error) {
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, nil, storeErr(err)
	}
	r := c.FindReply(replyID)
	if r == nil {
		return nil, nil, apperror.NotFound("reply")
	}
	if !entity.IsOwner(identity, r) {
		return nil, nil, apperror.Forbidden("you can only " + verb + " your own replies")
	}
	return c, r, nil
}

// view re-reads the comment so the result reflects the stored state.
func (s *CommentService) view(ctx context.Context, id string) (*CommentView, error) {
	c, err := s.Comments.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return s.single(ctx, c)
}

func (s *CommentService) single(ctx context.Context, c *entity.Comment) (*CommentView, error) {
	views, err := commentViews(ctx, s.Users, []*entity.Comment{c})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// author is only used for notifications, so lookup failures are ignored.
func (s *CommentService) author(ctx context.Context, id string) *entity.User {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return u
}
