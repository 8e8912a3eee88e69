// Package artwork manages art pieces: the upload pipeline, ownership-gated
// mutations, and public reads.
package artwork

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Artwork represents a single art piece. StorageKey and Fingerprint are set
// once at creation and never change afterward; ImageURL is resolved per read
// and never stored.
type Artwork struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StorageKey  string    `json:"storageKey"`
	Fingerprint string    `json:"fingerprint"`
	IsPublished bool      `json:"isPublished"`
	OwnerID     string    `json:"ownerId"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ErrNotFound is returned when an artwork does not exist.
var ErrNotFound = errors.New("artwork not found")

const artworkColumns = `id, title, description, storage_key, fingerprint, is_published, owner_id, created_at, updated_at`

// Repository handles all artwork database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func scanArtwork(row pgx.Row) (*Artwork, error) {
	a := &Artwork{}
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.StorageKey, &a.Fingerprint,
		&a.IsPublished, &a.OwnerID, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new artwork and returns the stored record.
func (r *Repository) Create(ctx context.Context, title, description, storageKey, fingerprint, ownerID string) (*Artwork, error) {
	a, err := scanArtwork(r.db.QueryRow(ctx,
		`INSERT INTO artworks (title, description, storage_key, fingerprint, owner_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+artworkColumns,
		title, description, storageKey, fingerprint, ownerID,
	))
	if err != nil {
		return nil, fmt.Errorf("create artwork: %w", err)
	}
	return a, nil
}

// GetByID fetches an artwork by its UUID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Artwork, error) {
	a, err := scanArtwork(r.db.QueryRow(ctx,
		`SELECT `+artworkColumns+` FROM artworks WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get artwork by id: %w", err)
	}
	return a, nil
}

// ListPublished returns all published artworks, newest first.
func (r *Repository) ListPublished(ctx context.Context) ([]*Artwork, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+artworkColumns+` FROM artworks
		 WHERE is_published ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list published artworks: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// ListByOwner returns all artworks owned by the given user, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*Artwork, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+artworkColumns+` FROM artworks
		 WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list artworks by owner: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// Update persists the mutable metadata fields. storage_key and fingerprint
// are deliberately absent from the statement.
func (r *Repository) Update(ctx context.Context, id, title, description string, isPublished bool) (*Artwork, error) {
	a, err := scanArtwork(r.db.QueryRow(ctx,
		`UPDATE artworks
		 SET title = $2, description = $3, is_published = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+artworkColumns,
		id, title, description, isPublished,
	))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update artwork: %w", err)
	}
	return a, nil
}

// Delete removes the artwork record.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM artworks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collect(rows pgx.Rows) ([]*Artwork, error) {
	var out []*Artwork
	for rows.Next() {
		a, err := scanArtwork(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artwork: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artworks: %w", err)
	}
	return out, nil
}
