package storage

import (
	"context"
	"io"
)

// ObjectStorage abstracts the avatar object store.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// URL returns the public URL of a stored object.
	URL(key string) string
}
