package storage

import (
	"context"
	"io"
)

// Storage defines the object storage operations the application needs:
// uploading post images, removing them, and resolving a public URL.
type Storage interface {
	io.Closer

	// PutObject stores data under key and returns object metadata.
	PutObject(ctx context.Context, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// DeleteObject removes the object.
	DeleteObject(ctx context.Context, key string) error
	// PublicURL returns the browser-reachable URL for key.
	PublicURL(key string) string
}

// PutOptions configures upload behavior.
type PutOptions struct {
	// Size is the expected content length; -1 when unknown.
	Size int64
	// ContentType is the MIME type for the object.
	ContentType string
}

// ObjectInfo describes object metadata.
type ObjectInfo struct {
	// Key is the object key.
	Key string
	// Size is the object size in bytes.
	Size int64
	// ETag is the object ETag when provided.
	ETag string
	// URL is the public URL for the object.
	URL string
}
