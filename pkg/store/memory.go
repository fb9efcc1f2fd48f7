package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory layout store for development and testing.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]*Layout
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]*Layout)}
}

// Put saves a copy of the layout, replacing any existing record with
// the same ID.
func (s *MemoryStore) Put(ctx context.Context, rec *Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	s.layouts[rec.ID] = &cp
	return nil
}

// Get fetches a copy of a layout by ID, returning a LAYOUT_NOT_FOUND
// error for unknown IDs.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.layouts[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *rec
	return &cp, nil
}

// Delete removes a layout. Deleting a missing ID is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.layouts, id)
	return nil
}

// List returns up to limit layouts, newest first. A non-positive limit
// falls back to DefaultListLimit.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Layout, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]*Layout, 0, len(s.layouts))
	for _, rec := range s.layouts {
		cp := *rec
		recs = append(recs, &cp)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Close does nothing; the store holds no external resources.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
