package service

import (
	"context"
	"io"
)

// FileStorage defines the interface for blob storage of book assets.
// Upload is a single awaited operation: it returns the public URL once the
// object is fully written, or an error.
type FileStorage interface {
	// Upload writes the content under the given key and returns the
	// object's public URL.
	Upload(ctx context.Context, key, contentType string, content io.Reader) (string, error)

	// Delete removes the object a previously returned public URL points at.
	Delete(ctx context.Context, publicURL string) error
}
