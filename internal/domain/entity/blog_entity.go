package entity

import "time"

// Blog is a post written by exactly one author. Comments reference it by
// BlogID and are not embedded.
type Blog struct {
	ID          string
	Title       string
	Description string
	Image       string
	AuthorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Author is filled by queries that join the users table.
	Author *User
}

func (b *Blog) ImageURL() string {
	return UploadURL(b.Image)
}

func (b *Blog) OwnerID() string { return b.AuthorID }
