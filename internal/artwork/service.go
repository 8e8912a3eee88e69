package artwork

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/saifaleee/MetroArt/internal/authz"
	"github.com/saifaleee/MetroArt/internal/storage"
	"github.com/saifaleee/MetroArt/internal/upload"
	"github.com/saifaleee/MetroArt/internal/user"
)

// Repo is the persistence surface the service needs. *Repository satisfies it.
type Repo interface {
	Create(ctx context.Context, title, description, storageKey, fingerprint, ownerID string) (*Artwork, error)
	GetByID(ctx context.Context, id string) (*Artwork, error)
	ListPublished(ctx context.Context) ([]*Artwork, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Artwork, error)
	Update(ctx context.Context, id, title, description string, isPublished bool) (*Artwork, error)
	Delete(ctx context.Context, id string) error
}

// IdentityStore confirms that a token subject still exists. *user.Service
// satisfies it.
type IdentityStore interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// Service orchestrates the ingestion pipeline and ownership-gated mutations.
type Service struct {
	repo     Repo
	store    storage.Storage
	resolver *storage.URLResolver
	users    IdentityStore
}

// NewService creates a new artwork Service.
func NewService(repo Repo, store storage.Storage, resolver *storage.URLResolver, users IdentityStore) *Service {
	return &Service{repo: repo, store: store, resolver: resolver, users: users}
}

// UpdateParams are the mutable metadata fields. Nil means "leave unchanged".
type UpdateParams struct {
	Title       *string
	Description *string
	IsPublished *bool
}

// Create runs the full ingestion pipeline: re-confirm the identity,
// fingerprint the bytes, write to the object store, then persist the record.
// The store write must succeed before the record exists, so a failed write
// can never leave a record pointing at a missing object. The reverse — an
// orphaned object after a failed insert — is tolerated; we attempt a
// best-effort cleanup and log the key so it stays reclaimable.
func (s *Service) Create(ctx context.Context, identityID string, asset *upload.RawAsset, title, description string) (*Artwork, error) {
	if _, err := s.users.GetByID(ctx, identityID); err != nil {
		return nil, fmt.Errorf("confirm identity: %w", err)
	}

	fingerprint := upload.Fingerprint(asset.Bytes)
	key := upload.BuildKey(upload.Namespace, identityID, asset.OriginalName)

	err := s.store.Upload(ctx, key, bytes.NewReader(asset.Bytes), int64(len(asset.Bytes)), asset.MimeType)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.Create(ctx, title, description, key, fingerprint, identityID)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("artwork: orphaned object %q after failed insert (cleanup failed: %v)", key, delErr)
		} else {
			log.Printf("artwork: removed orphaned object %q after failed insert", key)
		}
		return nil, err
	}

	s.attachURL(ctx, a)
	return a, nil
}

// Get returns a single artwork with its image URL resolved. Reads are public.
func (s *Service) Get(ctx context.Context, id string) (*Artwork, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachURL(ctx, a)
	return a, nil
}

// ListPublished returns all published artworks with image URLs resolved.
func (s *Service) ListPublished(ctx context.Context) ([]*Artwork, error) {
	list, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		s.attachURL(ctx, a)
	}
	return list, nil
}

// ListByOwner returns the authenticated user's artworks, published or not.
func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]*Artwork, error) {
	list, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		s.attachURL(ctx, a)
	}
	return list, nil
}

// Update mutates metadata only. The stored image, its key, and its
// fingerprint are immutable for the life of the artwork.
func (s *Service) Update(ctx context.Context, identityID, id string, params UpdateParams) (*Artwork, error) {
	if _, err := s.users.GetByID(ctx, identityID); err != nil {
		return nil, fmt.Errorf("confirm identity: %w", err)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(identityID, a.OwnerID, authz.ActionUpdate); err != nil {
		return nil, err
	}

	title, description, published := a.Title, a.Description, a.IsPublished
	if params.Title != nil {
		title = *params.Title
	}
	if params.Description != nil {
		description = *params.Description
	}
	if params.IsPublished != nil {
		published = *params.IsPublished
	}

	updated, err := s.repo.Update(ctx, id, title, description, published)
	if err != nil {
		return nil, err
	}
	s.attachURL(ctx, updated)
	return updated, nil
}

// Delete removes the artwork record, then its stored object. The record goes
// first so a partial failure leaves an orphaned object, never a dangling record.
func (s *Service) Delete(ctx context.Context, identityID, id string) error {
	if _, err := s.users.GetByID(ctx, identityID); err != nil {
		return fmt.Errorf("confirm identity: %w", err)
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(identityID, a.OwnerID, authz.ActionDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, a.StorageKey); err != nil {
		log.Printf("artwork: orphaned object %q after delete (cleanup failed: %v)", a.StorageKey, err)
	}
	return nil
}

// OpenImage streams the stored object bytes for the given key.
func (s *Service) OpenImage(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.store.Download(ctx, key)
}

func (s *Service) attachURL(ctx context.Context, a *Artwork) {
	a.ImageURL = s.resolver.Resolve(ctx, a.StorageKey)
}
