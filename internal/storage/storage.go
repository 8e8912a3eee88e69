// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO, AWS S3).
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrStoreUnavailable indicates the backing store could not be reached.
var ErrStoreUnavailable = errors.New("object store unavailable")

// ErrWriteFailed indicates a write was rejected or interrupted. A caller must
// never persist a record referencing a key whose write returned this.
var ErrWriteFailed = errors.New("object store write failed")

// ErrObjectNotFound indicates the requested key does not exist in the store.
var ErrObjectNotFound = errors.New("object not found")

// Storage is the interface for uploading and retrieving objects.
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Download opens the object at key for reading. The caller closes it.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PresignedURL generates a time-limited signed GET URL for the key.
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
