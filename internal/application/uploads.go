package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

var imageExts = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

// Upload is an image received from a client, before it is stored.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader validates images and stores them under a generated filename.
type Uploader struct {
	Store    FileStore
	MaxBytes int64
	Logger   *logrus.Logger
}

func NewUploader(store FileStore, maxBytes int64, logger *logrus.Logger) *Uploader {
	return &Uploader{Store: store, MaxBytes: maxBytes, Logger: logger}
}

// Save stores up and returns the filename to persist on the record. field
// names the form field in validation errors.
func (u *Uploader) Save(ctx context.Context, field string, up *Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if _, ok := imageExts[ext]; !ok {
		return "", apperror.Validation(field, "only jpg, jpeg, png, gif or webp images are allowed")
	}
	if up.ContentType != "" && !strings.HasPrefix(up.ContentType, "image/") {
		return "", apperror.Validation(field, "file must be an image")
	}
	if up.Size <= 0 {
		return "", apperror.Validation(field, "file is empty")
	}
	if u.MaxBytes > 0 && up.Size > u.MaxBytes {
		return "", apperror.Validation(field, "file is too large")
	}

	name := uuid.NewString() + ext
	if err := u.Store.Save(ctx, name, up.ContentType, up.Body); err != nil {
		return "", apperror.Internal(err)
	}
	return name, nil
}

// Remove deletes a stored image. Failures are logged and otherwise ignored.
func (u *Uploader) Remove(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if err := u.Store.Delete(ctx, name); err != nil && u.Logger != nil {
		u.Logger.WithError(err).WithField("file", name).Warn("remove upload failed")
	}
}
