package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*gcs.Client, error) {
	if credsPath == "" {
		return gcs.NewClient(ctx)
	}
	return gcs.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// GCSStore keeps uploads as objects under Prefix in Bucket. /uploads/<name>
// redirects to ObjectURL.
type GCSStore struct {
	Client *gcs.Client
	Bucket string
	Prefix string
}

func NewGCSStore(client *gcs.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket, Prefix: "uploads"}
}

func (s *GCSStore) Save(ctx context.Context, name, contentType string, r io.Reader) error {
	wc := s.Client.Bucket(s.Bucket).Object(s.object(name)).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // images are small, upload in one request
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return err
	}
	return wc.Close()
}

func (s *GCSStore) Delete(ctx context.Context, name string) error {
	err := s.Client.Bucket(s.Bucket).Object(s.object(name)).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

// ObjectURL assumes the bucket grants public read.
func (s *GCSStore) ObjectURL(name string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.Bucket, s.object(name))
}

func (s *GCSStore) object(name string) string {
	return path.Join(s.Prefix, path.Base(name))
}
