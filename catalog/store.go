package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/qyinm/craftshelf/types"
)

// ErrLoadFailed marks a catalog load that failed; the cause is wrapped.
var ErrLoadFailed = errors.New("failed to load products")

// Store performs the session's single catalog fetch and keeps its outcome.
// A failed load is terminal: later calls return the same error without refetching.
type Store struct {
	source types.CatalogSource

	mu      sync.Mutex
	loaded  bool
	catalog Catalog
	err     error
}

// NewStore creates a Store reading from source.
func NewStore(source types.CatalogSource) *Store {
	return &Store{source: source}
}

// Load fetches the catalog on first call and returns the stored outcome afterwards.
func (s *Store) Load(ctx context.Context) (Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.catalog, s.err
	}

	products, err := s.source.FetchProducts(ctx)
	s.loaded = true
	if err != nil {
		s.err = fmt.Errorf("%w: %w", ErrLoadFailed, err)
		return Catalog{}, s.err
	}
	s.catalog = New(products)
	return s.catalog, nil
}

// Snapshot returns the current catalog and load error without fetching.
// Before Load has run it reports an empty catalog and no error.
func (s *Store) Snapshot() (Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog, s.err
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}
