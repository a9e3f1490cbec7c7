package util

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Uploader pushes a photo to object storage and returns its public URL.
// Implementations must be safe for concurrent use.
type Uploader interface {
	Upload(ctx context.Context, bucket, objectName string, contentType string, r io.Reader) (string, error)
}

var uploader Uploader

// SetUploader injects the object-storage client. Call during application
// startup; a nil uploader leaves photo uploads disabled.
func SetUploader(u Uploader) {
	uploader = u
}

// GetUploader returns the injected uploader, or nil when uploads are disabled.
func GetUploader() Uploader {
	return uploader
}

// GCSUploader uploads photos to Google Cloud Storage buckets. Application
// Default Credentials are assumed to be configured.
type GCSUploader struct {
	client *storage.Client
}

// NewGCSUploader creates the storage client once; reuse it for all uploads.
func NewGCSUploader(ctx context.Context) (*GCSUploader, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSUploader{client: client}, nil
}

// Upload writes the reader's content to the bucket and returns the public URL.
func (g *GCSUploader) Upload(ctx context.Context, bucket, objectName, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := g.client.Bucket(bucket).Object(objectName).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy to storage writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}
	return PublicURL(bucket, objectName), nil
}

// Close releases the underlying storage client.
func (g *GCSUploader) Close() error {
	return g.client.Close()
}

// PublicURL builds the public object URL for a bucket/object pair.
func PublicURL(bucket, objectName string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectName)
}

// NombreObjeto builds a collision-free object name for an uploaded photo,
// keeping the original file extension.
func NombreObjeto(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext)
}
