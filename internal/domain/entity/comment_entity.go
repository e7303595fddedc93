package entity

import "time"

// Comment belongs to one blog and embeds its replies in insertion order.
type Comment struct {
	ID        string
	Content   string
	AuthorID  string
	BlogID    string
	Replies   []Reply
	CreatedAt time.Time
	UpdatedAt time.Time

	Author *User
}

// Reply lives inside its parent comment and is owned by its own author.
type Reply struct {
	ID        string
	Content   string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) OwnerID() string { return c.AuthorID }

func (r *Reply) OwnerID() string { return r.AuthorID }

// FindReply returns a pointer into c.Replies, or nil.
func (c *Comment) FindReply(id string) *Reply {
	for i := range c.Replies {
		if c.Replies[i].ID == id {
			return &c.Replies[i]
		}
	}
	return nil
}

// RemoveReply drops the reply with the given id, keeping the order of the rest.
func (c *Comment) RemoveReply(id string) bool {
	for i := range c.Replies {
		if c.Replies[i].ID == id {
			c.Replies = append(c.Replies[:i:i], c.Replies[i+1:]...)
			return true
		}
	}
	return false
}

// AuthorIDs lists the comment author followed by reply authors, without duplicates.
func (c *Comment) AuthorIDs() []string {
	seen := map[string]struct{}{c.AuthorID: {}}
	ids := []string{c.AuthorID}
	for _, r := range c.Replies {
		if _, ok := seen[r.AuthorID]; ok {
			continue
		}
		seen[r.AuthorID] = struct{}{}
		ids = append(ids, r.AuthorID)
	}
	return ids
}
