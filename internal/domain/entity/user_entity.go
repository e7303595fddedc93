package entity

import (
	"time"
)

// UploadsPrefix is the public path under which stored images are served.
const UploadsPrefix = "/uploads/"

// User is the aggregate root for the credential store.
// Passwords are stored as bcrypt hashes in Password field
// and must never leave the application layer.
type User struct {
	ID           string
	Email        string
	Password     string
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) ProfileImageURL() string {
	return UploadURL(u.ProfileImage)
}

// UploadURL resolves a stored filename to its public URL.
func UploadURL(filename string) string {
	if filename == "" {
		return ""
	}
	return UploadsPrefix + filename
}
