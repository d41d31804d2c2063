package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
)

// Uploader stores a binary payload and resolves a public URL for it.
type Uploader interface {
	Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error)
}

// StorageUploader implements Uploader on a Cloud Storage bucket. Objects are
// keyed per user and disambiguated by upload time, so repeated uploads of the
// same filename never collide.
type StorageUploader struct {
	bucket     *storage.BucketHandle
	bucketName string
}

// NewStorageUploader creates a new StorageUploader
func NewStorageUploader(bucket *storage.BucketHandle, bucketName string) *StorageUploader {
	return &StorageUploader{bucket: bucket, bucketName: bucketName}
}

// Upload writes the payload to the bucket and returns its public URL
func (u *StorageUploader) Upload(ctx context.Context, userID, filename, contentType string, r io.Reader) (string, error) {
	object := fmt.Sprintf("posts/%s/%d_%s", userID, time.Now().UnixNano(), filepath.Base(filename))

	w := u.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", object, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucketName, object), nil
}
