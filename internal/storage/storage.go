// Package storage holds product images behind a small interface so the
// backend can later move to cloud object storage without touching handlers.
package storage

import (
	"context"
	"io"
)

type ImageStore interface {
	// UploadURL returns an upload target for a new image and the storage key
	// the image will live under.
	UploadURL(ctx context.Context, filename, contentType string) (uploadURL, key string, err error)

	// Save writes image bytes under the key. Used by the upload endpoint.
	Save(key string, reader io.Reader) error

	// Open reads the image stored under the key.
	Open(key string) (io.ReadCloser, error)

	// Delete removes the image stored under the key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the key holds an image, and its size.
	Exists(ctx context.Context, key string) (bool, int64, error)
}
