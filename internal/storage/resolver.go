package storage

import (
	"context"
	"log"
	"time"
)

// URLResolver turns stored keys into client-usable URLs. The preferred
// strategy is a presigned GET URL with an explicit expiry, re-issued on
// every read so a cached expired link is never served. When presigning
// fails (store unreachable), it degrades to the deterministic public URL
// instead of failing the read.
type URLResolver struct {
	store  Storage
	expiry time.Duration
}

// NewURLResolver creates a resolver issuing presigned URLs valid for expiry.
func NewURLResolver(store Storage, expiry time.Duration) *URLResolver {
	return &URLResolver{store: store, expiry: expiry}
}

// Resolve returns a URL for key. It never fails: an unreachable store still
// yields the constructed public URL.
func (r *URLResolver) Resolve(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	u, err := r.store.PresignedURL(ctx, key, r.expiry)
	if err != nil {
		log.Printf("storage: presign %q failed, falling back to public URL: %v", key, err)
		return r.store.PublicURL(key)
	}
	return u
}
