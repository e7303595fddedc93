package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

func seedUser(t *testing.T, s *Store, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "hash", ProfileImage: "default-profile.jpg"}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func TestUserDuplicateEmail(t *testing.T) {
	s := NewStore()
	seedUser(t, s, "a@x.com")

	err := s.Users().Create(context.Background(), &entity.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateUser)

	_, err = s.Users().GetByEmail(context.Background(), "b@x.com")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestBlogsNewestFirstWithAuthor(t *testing.T) {
	s := NewStore()
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { tick = tick.Add(time.Second); return tick }
	ctx := context.Background()

	alice := seedUser(t, s, "alice@x.com")
	bob := seedUser(t, s, "bob@x.com")
	for _, b := range []*entity.Blog{
		{Title: "one", Description: "d", Image: "1.jpg", AuthorID: alice.ID},
		{Title: "two", Description: "d", Image: "2.jpg", AuthorID: bob.ID},
		{Title: "three", Description: "d", Image: "3.jpg", AuthorID: alice.ID},
	} {
		require.NoError(t, s.Blogs().Create(ctx, b))
	}

	all, err := s.Blogs().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "three", all[0].Title)
	assert.Equal(t, "one", all[2].Title)
	assert.Equal(t, "alice@x.com", all[0].Author.Email)

	mine, err := s.Blogs().ListByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestSameInstantKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	u := seedUser(t, s, "a@x.com")
	first := &entity.Blog{Title: "first", AuthorID: u.ID}
	second := &entity.Blog{Title: "second", AuthorID: u.ID}
	require.NoError(t, s.Blogs().Create(ctx, first))
	require.NoError(t, s.Blogs().Create(ctx, second))

	all, err := s.Blogs().ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", all[0].Title)

	byIDs, err := s.Blogs().ListByIDs(ctx, []string{first.ID, "gone", second.ID})
	require.NoError(t, err)
	require.Len(t, byIDs, 2)
	assert.Equal(t, "first", byIDs[0].Title)
}

func TestDeleteWithCommentsCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := seedUser(t, s, "a@x.com")

	keep := &entity.Blog{Title: "keep", AuthorID: u.ID}
	drop := &entity.Blog{Title: "drop", AuthorID: u.ID}
	require.NoError(t, s.Blogs().Create(ctx, keep))
	require.NoError(t, s.Blogs().Create(ctx, drop))

	require.NoError(t, s.Comments().Create(ctx, &entity.Comment{Content: "a", AuthorID: u.ID, BlogID: drop.ID}))
	require.NoError(t, s.Comments().Create(ctx, &entity.Comment{Content: "b", AuthorID: u.ID, BlogID: drop.ID}))
	require.NoError(t, s.Comments().Create(ctx, &entity.Comment{Content: "c", AuthorID: u.ID, BlogID: keep.ID}))

	require.NoError(t, s.Blogs().DeleteWithComments(ctx, drop.ID))

	_, err := s.Blogs().GetByID(ctx, drop.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	gone, err := s.Comments().ListByBlog(ctx, drop.ID)
	require.NoError(t, err)
	assert.Empty(t, gone)
	kept, err := s.Comments().ListByBlog(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	assert.ErrorIs(t, s.Blogs().DeleteWithComments(ctx, drop.ID), apperror.ErrNotFound)
}

func TestCommentCopiesAreIsolated(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := seedUser(t, s, "a@x.com")
	b := &entity.Blog{Title: "t", AuthorID: u.ID}
	require.NoError(t, s.Blogs().Create(ctx, b))

	c := &entity.Comment{Content: "hello", AuthorID: u.ID, BlogID: b.ID}
	require.NoError(t, s.Comments().Create(ctx, c))
	require.NoError(t, s.Comments().AppendReply(ctx, c.ID, entity.Reply{ID: "r1", Content: "hi", AuthorID: u.ID}))

	got, err := s.Comments().GetByID(ctx, c.ID)
	require.NoError(t, err)
	got.Replies[0].Content = "mutated"

	again, err := s.Comments().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", again.Replies[0].Content)
	assert.Equal(t, "a@x.com", again.Author.Email)
}

func TestCommentOnMissingBlog(t *testing.T) {
	s := NewStore()
	u := seedUser(t, s, "a@x.com")
	err := s.Comments().Create(context.Background(), &entity.Comment{Content: "x", AuthorID: u.ID, BlogID: "nope"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, s.Comments().AppendReply(context.Background(), "nope", entity.Reply{}), apperror.ErrNotFound)
}
