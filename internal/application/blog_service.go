package application

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

type BlogService struct {
	Blogs    repo.BlogRepository
	Comments repo.CommentRepository
	Users    repo.UserRepository
	Uploads  *Uploader
	// Search and Feed are optional.
	Search BlogSearch
	Feed   FeedCache
	Logger *logrus.Logger

	// feedGen counts invalidations; a feed read across one is not cached.
	feedGen atomic.Uint64
}

func NewBlogService(blogs repo.BlogRepository, comments repo.CommentRepository, users repo.UserRepository, uploads *Uploader, search BlogSearch, feed FeedCache, logger *logrus.Logger) *BlogService {
	return &BlogService{
		Blogs:    blogs,
		Comments: comments,
		Users:    users,
		Uploads:  uploads,
		Search:   search,
		Feed:     feed,
		Logger:   logger,
	}
}

type CreateBlogInput struct {
	Title       string  `json:"title" form:"title" validate:"required"`
	Description string  `json:"description" form:"description" validate:"required"`
	Image       *Upload `json:"-" form:"-" validate:"-"`
}

// UpdateBlogInput only overwrites the fields that are non-empty.
type UpdateBlogInput struct {
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	Image       *Upload `json:"-" form:"-"`
}

func (s *BlogService) Create(ctx context.Context, identity string, in CreateBlogInput) (*BlogView, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := validate(in); err != nil {
		return nil, err
	}
	if in.Image == nil {
		return nil, apperror.Validation("blogImage", "blog image is required")
	}

	image, err := s.Uploads.Save(ctx, "blogImage", in.Image)
	if err != nil {
		return nil, err
	}
	b := &entity.Blog{Title: in.Title, Description: in.Description, Image: image, AuthorID: identity}
	if err := s.Blogs.Create(ctx, b); err != nil {
		s.Uploads.Remove(ctx, image)
		return nil, storeErr(err)
	}

	created, err := s.Blogs.GetByID(ctx, b.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	s.changed(ctx, created)
	v := NewBlogView(created)
	return &v, nil
}

func (s *BlogService) ListMine(ctx context.Context, identity string) ([]BlogView, error) {
	blogs, err := s.Blogs.ListByAuthor(ctx, identity)
	if err != nil {
		return nil, storeErr(err)
	}
	return newBlogViews(blogs), nil
}

// ListPublic serves the feed from the cache when it is warm.
func (s *BlogService) ListPublic(ctx context.Context) ([]BlogView, error) {
	if s.Feed != nil {
		feed, ok, err := s.Feed.Get(ctx)
		if err != nil {
			s.warn(err, "read feed cache failed", nil)
		} else if ok {
			return feed, nil
		}
	}

	gen := s.feedGen.Load()
	blogs, err := s.Blogs.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	feed := newBlogViews(blogs)
	if s.Feed != nil && s.feedGen.Load() == gen {
		if err := s.Feed.Set(ctx, feed); err != nil {
			s.warn(err, "write feed cache failed", nil)
		}
	}
	return feed, nil
}

// Get returns the blog with its comments and every comment and reply author.
func (s *BlogService) Get(ctx context.Context, id string) (*BlogDetail, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	comments, err := s.Comments.ListByBlog(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	views, err := commentViews(ctx, s.Users, comments)
	if err != nil {
		return nil, err
	}
	return &BlogDetail{BlogView: NewBlogView(b), Comments: views}, nil
}

func (s *BlogService) Update(ctx context.Context, identity, id string, in UpdateBlogInput) (*BlogView, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if !entity.IsOwner(identity, b) {
		return nil, apperror.Forbidden("you can only edit your own blogs")
	}

	if t := strings.TrimSpace(in.Title); t != "" {
		b.Title = t
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		b.Description = d
	}
	oldImage := b.Image
	if in.Image != nil {
		name, err := s.Uploads.Save(ctx, "blogImage", in.Image)
		if err != nil {
			return nil, err
		}
		b.Image = name
	}

	if err := s.Blogs.Update(ctx, b); err != nil {
		if b.Image != oldImage {
			s.Uploads.Remove(ctx, b.Image)
		}
		return nil, storeErr(err)
	}
	if b.Image != oldImage {
		s.Uploads.Remove(ctx, oldImage)
	}

	s.changed(ctx, b)
	v := NewBlogView(b)
	return &v, nil
}

// Delete removes the blog and all of its comments.
func (s *BlogService) Delete(ctx context.Context, identity, id string) error {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		return storeErr(err)
	}
	if !entity.IsOwner(identity, b) {
		return apperror.Forbidden("you can only delete your own blogs")
	}
	if err := s.Blogs.DeleteWithComments(ctx, id); err != nil {
		return storeErr(err)
	}

	s.Uploads.Remove(ctx, b.Image)
	if s.Search != nil {
		if err := s.Search.Remove(ctx, id); err != nil {
			s.warn(err, "unindex blog failed", logrus.Fields{"blog_id": id})
		}
	}
	s.invalidateFeed(ctx)
	return nil
}

// SearchBlogs matches q against titles and descriptions. Without a search
// index, or when the index fails, it falls back to scanning the store.
func (s *BlogService) SearchBlogs(ctx context.Context, q string, size int) ([]BlogView, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.Validation("q", "search query is required")
	}
	switch {
	case size <= 0:
		size = defaultSearchSize
	case size > maxSearchSize:
		size = maxSearchSize
	}

	if s.Search != nil {
		ids, err := s.Search.Search(ctx, q, size)
		if err == nil {
			blogs, err := s.Blogs.ListByIDs(ctx, ids)
			if err != nil {
				return nil, storeErr(err)
			}
			return newBlogViews(blogs), nil
		}
		s.warn(err, "search index failed, scanning store", logrus.Fields{"q": q})
	}

	all, err := s.Blogs.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	needle := strings.ToLower(q)
	out := make([]BlogView, 0, size)
	for _, b := range all {
		if len(out) == size {
			break
		}
		if strings.Contains(strings.ToLower(b.Title), needle) || strings.Contains(strings.ToLower(b.Description), needle) {
			out = append(out, NewBlogView(b))
		}
	}
	return out, nil
}

// changed re-indexes b and drops the cached feed.
func (s *BlogService) changed(ctx context.Context, b *entity.Blog) {
	if s.Search != nil {
		if err := s.Search.Put(ctx, b); err != nil {
			s.warn(err, "index blog failed", logrus.Fields{"blog_id": b.ID})
		}
	}
	s.invalidateFeed(ctx)
}

func (s *BlogService) invalidateFeed(ctx context.Context) {
	s.feedGen.Add(1)
	if s.Feed == nil {
		return
	}
	if err := s.Feed.Invalidate(ctx); err != nil {
		s.warn(err, "invalidate feed cache failed", nil)
	}
}

func (s *BlogService) warn(err error, msg string, fields logrus.Fields) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(fields).Warn(msg)
}

// commentViews resolves every comment and reply author with one lookup.
func commentViews(ctx context.Context, users repo.UserRepository, comments []*entity.Comment) ([]CommentView, error) {
	var ids []string
	seen := map[string]struct{}{}
	for _, c := range comments {
		for _, id := range c.AuthorIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	authors := map[string]*entity.User{}
	if len(ids) > 0 {
		var err error
		if authors, err = users.ListByIDs(ctx, ids); err != nil {
			return nil, storeErr(err)
		}
	}

	out := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, newCommentView(c, authors))
	}
	return out, nil
}
