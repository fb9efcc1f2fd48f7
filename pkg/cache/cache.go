// Package cache provides result caching for solve and render operations.
//
// Solving a partition is cheap for small item sets but the HTTP service and
// CLI both benefit from skipping repeated solves of identical inputs, and
// rendered artifacts (SVG) are worth reusing outright. The package offers a
// small Cache interface with three backends:
//
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: shared cache for multi-replica service deployments
//   - [NullCache]: disables caching, for tests and one-shot runs
//
// Keys are derived from a fingerprint of the solve input (items, spacing,
// column limit) plus per-solve options, so any change to the input or the
// requested method produces a distinct key.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached value kind. Solve results are pure functions
// of their key so they could live forever; the TTLs just bound disk and
// Redis growth.
const (
	TTLSolve    = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SolveKeyOpts are the per-solve parameters included in a solve cache key.
type SolveKeyOpts struct {
	Method      string  `json:"method"`
	WidthLimit  float64 `json:"width_limit"`
	ColumnLimit int     `json:"column_limit"`
	RowSpace    float64 `json:"row_space"`
	ColumnSpace float64 `json:"column_space"`
}

// ArtifactKeyOpts are the render parameters included in an artifact key.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale"`
}

// Keyer generates cache keys for the different cached value kinds.
type Keyer interface {
	// SolveKey generates a key for a solve result given the fingerprint
	// of the item manifest and the solve options.
	SolveKey(itemsHash string, opts SolveKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact given the
	// fingerprint of the solve result and the render options.
	ArtifactKey(solveHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SolveKey generates a key for a solve result.
func (k *DefaultKeyer) SolveKey(itemsHash string, opts SolveKeyOpts) string {
	return hashKey("solve", itemsHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(solveHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", solveHash, opts)
}
