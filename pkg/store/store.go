// Package store persists solved layouts for later retrieval.
//
// The HTTP service saves every successful solve and hands the caller an
// ID; the layout can then be fetched again without re-solving. Two
// backends are provided:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "colstack",
//	})
//
// Save and fetch layouts:
//
//	rec := store.NewLayout(doc)
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
//	got, err := st.Get(ctx, rec.ID)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mhartvig/colstack/pkg/errors"
	"github.com/mhartvig/colstack/pkg/render"
)

// Layout is a persisted solve: the full layout document plus storage
// metadata.
type Layout struct {
	ID        string          `json:"id" bson:"_id"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	InputHash string          `json:"input_hash,omitempty" bson:"input_hash,omitempty"`
	Document  render.Document `json:"document" bson:"document"`
}

// NewLayout wraps a layout document in a storable record with a fresh ID.
func NewLayout(doc render.Document) *Layout {
	return &Layout{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Document:  doc,
	}
}

// Store persists layouts. Implementations must be safe for concurrent
// use.
type Store interface {
	// Put saves a layout. An existing record with the same ID is
	// replaced.
	Put(ctx context.Context, rec *Layout) error

	// Get retrieves a layout by ID. Returns a LAYOUT_NOT_FOUND error
	// when no record exists.
	Get(ctx context.Context, id string) (*Layout, error)

	// Delete removes a layout. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the most recent layouts, newest first, up to limit.
	// A limit of zero applies DefaultListLimit.
	List(ctx context.Context, limit int) ([]*Layout, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// DefaultListLimit bounds List when the caller does not.
const DefaultListLimit = 50

func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
}
