// Package storage persists uploaded breakdown pictures. Local disk is the
// default; Google Cloud Storage is used only when USE_GCS=true, so ambient
// Google credentials on a dev box never switch the backend.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
)

// MaxPictureSize is the per-file upload limit.
const MaxPictureSize = 10 << 20 // 10MB

// PictureStore saves one uploaded picture and returns its public URL.
type PictureStore interface {
	Save(ctx context.Context, field string, file multipart.File, header *multipart.FileHeader) (string, error)
}

// FromEnv picks the backend: GCS when USE_GCS=true, local disk otherwise.
func FromEnv(ctx context.Context) (PictureStore, error) {
	if os.Getenv("USE_GCS") == "true" {
		bucket := os.Getenv("GCS_BUCKET")
		if bucket == "" {
			return nil, fmt.Errorf("USE_GCS is set but GCS_BUCKET is empty")
		}
		client, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create GCS client: %w", err)
		}
		return &GCSStore{Client: client, Bucket: bucket}, nil
	}

	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return &LocalStore{Dir: dir, BaseURL: os.Getenv("CDN_BASEURL")}, nil
}

// uniqueName builds a timestamp-suffixed filename so repeated uploads of the
// same field never collide.
func uniqueName(field, original string) string {
	ext := filepath.Ext(original)
	return fmt.Sprintf("%s-%d%s", field, time.Now().UnixMilli(), ext)
}

// LocalStore writes pictures to a local directory served under /uploads/.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func (s *LocalStore) Save(ctx context.Context, field string, file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	name := uniqueName(field, header.Filename)
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}

	if s.BaseURL != "" {
		u, err := url.JoinPath(s.BaseURL, name)
		if err == nil {
			return u, nil
		}
	}
	return "/uploads/" + name, nil
}

// GCSStore writes pictures to a Google Cloud Storage bucket.
type GCSStore struct {
	Client *gcs.Client
	Bucket string
	// Prefix is an optional object-name folder, no trailing slash.
	Prefix string
}

func (s *GCSStore) Save(ctx context.Context, field string, file multipart.File, header *multipart.FileHeader) (string, error) {
	name := uniqueName(field, header.Filename)
	if s.Prefix != "" {
		name = strings.TrimSuffix(s.Prefix, "/") + "/" + name
	}

	obj := s.Client.Bucket(s.Bucket).Object(name)
	wc := obj.NewWriter(ctx)
	wc.ContentType = header.Header.Get("Content-Type")
	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		return "", fmt.Errorf("upload to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("finalize GCS upload: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.Bucket, name), nil
}
