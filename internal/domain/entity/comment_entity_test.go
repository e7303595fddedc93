package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleComment() *Comment {
	return &Comment{
		ID:       "c1",
		AuthorID: "alice",
		Replies: []Reply{
			{ID: "r1", Content: "first", AuthorID: "bob"},
			{ID: "r2", Content: "second", AuthorID: "alice"},
			{ID: "r3", Content: "third", AuthorID: "bob"},
		},
	}
}

func TestFindReply(t *testing.T) {
	c := sampleComment()

	r := c.FindReply("r2")
	if assert.NotNil(t, r) {
		assert.Equal(t, "second", r.Content)
		r.Content = "edited"
		assert.Equal(t, "edited", c.Replies[1].Content, "FindReply must point into the slice")
	}
	assert.Nil(t, c.FindReply("missing"))
}

func TestRemoveReplyKeepsOrder(t *testing.T) {
	c := sampleComment()
	original := c.Replies

	assert.True(t, c.RemoveReply("r2"))
	assert.Len(t, c.Replies, 2)
	assert.Equal(t, "r1", c.Replies[0].ID)
	assert.Equal(t, "r3", c.Replies[1].ID)
	assert.Equal(t, "r2", original[1].ID, "backing array of the caller must be untouched")

	assert.False(t, c.RemoveReply("r2"))
}

func TestAuthorIDs(t *testing.T) {
	assert.Equal(t, []string{"alice", "bob"}, sampleComment().AuthorIDs())
}

func TestIsOwner(t *testing.T) {
	c := sampleComment()
	assert.True(t, IsOwner("alice", c))
	assert.False(t, IsOwner("bob", c))
	assert.False(t, IsOwner("", &Comment{}))

	reply := c.FindReply("r1")
	assert.True(t, IsOwner("bob", reply))
	assert.False(t, IsOwner("alice", reply), "reply ownership is independent of the comment author")

	assert.True(t, IsOwner("u1", &Blog{AuthorID: "u1"}))
}

func TestUploadURL(t *testing.T) {
	assert.Equal(t, "/uploads/f.jpg", (&Blog{Image: "f.jpg"}).ImageURL())
	assert.Equal(t, "/uploads/default-profile.jpg", (&User{ProfileImage: "default-profile.jpg"}).ProfileImageURL())
	assert.Equal(t, "", UploadURL(""))
}
