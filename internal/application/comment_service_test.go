package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	mailtpl "github.com/oksasatya/go-ddd-blog/pkg/mailer/templates"
)

type thread struct {
	e            *env
	alice, bob   string
	carol        string
	blogID       string
	commentID    string
	bobReplyID   string
	carolReplyID string
}

// newThread builds a blog by alice, a comment by alice, a reply by bob and a reply by carol.
func newThread(t *testing.T) *thread {
	t.Helper()
	e := newEnv(t)
	th := &thread{
		e:     e,
		alice: e.signup(t, "alice@x.com").User.ID,
		bob:   e.signup(t, "bob@x.com").User.ID,
		carol: e.signup(t, "carol@x.com").User.ID,
	}
	th.blogID = e.blog(t, th.alice, "Hi").ID
	th.commentID = e.comment(t, th.alice, th.blogID, "root").ID

	ctx := context.Background()
	v, err := e.comments.AddReply(ctx, th.bob, th.commentID, "from bob")
	require.NoError(t, err)
	th.bobReplyID = v.Replies[0].ID
	v, err = e.comments.AddReply(ctx, th.carol, th.commentID, "from carol")
	require.NoError(t, err)
	th.carolReplyID = v.Replies[1].ID
	return th
}

func TestCreateComment(t *testing.T) {
	e := newEnv(t)
	alice := e.signup(t, "alice@x.com").User.ID
	bob := e.signup(t, "bob@x.com").User.ID
	blogID := e.blog(t, alice, "Hi").ID
	ctx := context.Background()

	v := e.comment(t, bob, blogID, "  nice  ")
	assert.Equal(t, "nice", v.Content)
	assert.Equal(t, blogID, v.BlogID)
	require.NotNil(t, v.Author)
	assert.Equal(t, "bob@x.com", v.Author.Email)
	assert.Empty(t, v.Replies)

	_, err := e.comments.Create(ctx, bob, CreateCommentInput{BlogID: blogID, Content: "   "})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = e.comments.Create(ctx, bob, CreateCommentInput{BlogID: "missing", Content: "x"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.Equal(t, []string{mailtpl.Welcome, mailtpl.Welcome, mailtpl.NewComment}, e.pub.templates())
	assert.Equal(t, "alice@x.com", e.pub.jobs[2].To)
}

func TestOwnCommentDoesNotNotify(t *testing.T) {
	e := newEnv(t)
	alice := e.signup(t, "alice@x.com").User.ID
	e.comment(t, alice, e.blog(t, alice, "Hi").ID, "self")
	assert.Equal(t, []string{mailtpl.Welcome}, e.pub.templates())
}

func TestAddReplyAppendsInOrder(t *testing.T) {
	th := newThread(t)
	ctx := context.Background()

	before, err := th.e.store.Comments().GetByID(ctx, th.commentID)
	require.NoError(t, err)

	v, err := th.e.comments.AddReply(ctx, th.alice, th.commentID, "from alice")
	require.NoError(t, err)
	require.Len(t, v.Replies, len(before.Replies)+1)
	for i, r := range before.Replies {
		assert.Equal(t, r.ID, v.Replies[i].ID)
		assert.Equal(t, r.Content, v.Replies[i].Content)
	}
	assert.Equal(t, "from alice", v.Replies[2].Content)
	assert.Equal(t, "alice@x.com", v.Author.Email)
	assert.Equal(t, "bob@x.com", v.Replies[0].Author.Email)
	assert.Equal(t, "carol@x.com", v.Replies[1].Author.Email)

	_, err = th.e.comments.AddReply(ctx, th.alice, "missing", "x")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = th.e.comments.AddReply(ctx, th.alice, th.commentID, "")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestReplyNotifiesCommentAuthor(t *testing.T) {
	th := newThread(t)
	var replies int
	for _, j := range th.e.pub.jobs {
		if j.Template == mailtpl.NewReply {
			replies++
			assert.Equal(t, "alice@x.com", j.To)
		}
	}
	assert.Equal(t, 2, replies)
}

func TestListForBlog(t *testing.T) {
	th := newThread(t)
	ctx := context.Background()
	th.e.comment(t, th.bob, th.blogID, "later")

	list, err := th.e.comments.ListForBlog(ctx, th.blogID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "later", list[0].Content)
	assert.Equal(t, "carol@x.com", list[1].Replies[1].Author.Email)

	_, err = th.e.comments.ListForBlog(ctx, "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateComment(t *testing.T) {
	th := newThread(t)
	ctx := context.Background()

	v, err := th.e.comments.UpdateComment(ctx, th.alice, th.commentID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", v.Content)
	assert.Len(t, v.Replies, 2)

	v, err = th.e.comments.UpdateComment(ctx, th.alice, th.commentID, "  ")
	require.NoError(t, err)
	assert.Equal(t, "edited", v.Content, "empty content is a no-op")

	_, err = th.e.comments.UpdateComment(ctx, th.bob, th.commentID, "hijack")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	_, err = th.e.comments.UpdateComment(ctx, th.alice, "missing", "x")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteComment(t *testing.T) {
	th := newThread(t)
	ctx := context.Background()

	assert.ErrorIs(t, th.e.comments.DeleteComment(ctx, th.bob, th.commentID), apperror.ErrForbidden)
	require.NoError(t, th.e.comments.DeleteComment(ctx, th.alice, th.commentID))
	assert.ErrorIs(t, th.e.comments.DeleteComment(ctx, th.alice, th.commentID), apperror.ErrNotFound)

	list, err := th.e.comments.ListForBlog(ctx, th.blogID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReplyOwnershipIsIndependent(t *testing.T) {
	th := newThread(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		identity string
		replyID  string
		want     error
	}{
		{"comment author cannot edit another's reply", th.alice, th.bobReplyID, apperror.ErrForbidden},
		{"other replier cannot edit", th.carol, th.bobReplyID, apperror.ErrForbidden},
		{"missing reply", th.bob, "missing", apperror.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := th.e.comments.UpdateReply(ctx, tt.identity, th.commentID, tt.replyID, "x")
			assert.ErrorIs(t, err, tt.want)
			_, err = th.e.comments.DeleteReply(ctx, tt.identity, th.commentID, tt.replyID)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := th.e.comments.UpdateReply(ctx, th.bob, "missing", th.bobReplyID, "x")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateReply(t *testing.T) {
	th := newThread(t)
	ctx := context.Background()

	v, err := th.e.comments.UpdateReply(ctx, th.bob, th.commentID, th.bobReplyID, "bob edited")
	require.NoError(t, err)
	assert.Equal(t, "bob edited", v.Replies[0].Content)
	assert.Equal(t, "from carol", v.Replies[1].Content)
	assert.True(t, !v.Replies[0].UpdatedAt.Before(v.Replies[0].CreatedAt))

	v, err = th.e.comments.UpdateReply(ctx, th.bob, th.commentID, th.bobReplyID, "")
	require.NoError(t, err)
	assert.Equal(t, "bob edited", v.Replies[0].Content)
}

func TestDeleteReplyKeepsOrder(t *testing.T) {
	th := newThread(t)
	ctx := context.Background()
	_, err := th.e.comments.AddReply(ctx, th.alice, th.commentID, "from alice")
	require.NoError(t, err)

	v, err := th.e.comments.DeleteReply(ctx, th.carol, th.commentID, th.carolReplyID)
	require.NoError(t, err)
	require.Len(t, v.Replies, 2)
	assert.Equal(t, "from bob", v.Replies[0].Content)
	assert.Equal(t, "from alice", v.Replies[1].Content)

	_, err = th.e.comments.DeleteReply(ctx, th.carol, th.commentID, th.carolReplyID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
