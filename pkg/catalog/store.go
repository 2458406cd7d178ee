package catalog

import (
	"sync"
	"time"
)

// Store holds the current catalog snapshot. A refresh swaps the whole
// snapshot at once - readers always observe either the fully-old or the
// fully-new product set, never a mix.
type Store struct {
	mux         sync.RWMutex
	products    []Product
	refreshedAt time.Time
}

func NewStore() *Store {
	return &Store{
		products: []Product{},
	}
}

// ReplaceAll atomically swaps the snapshot and stamps the refresh time.
// The input is copied so later mutations by the caller cannot leak into
// the live snapshot.
func (s *Store) ReplaceAll(products []Product) {
	snapshot := make([]Product, len(products))
	copy(snapshot, products)

	s.mux.Lock()
	defer s.mux.Unlock()

	s.products = snapshot
	s.refreshedAt = time.Now()
}

// All returns the current snapshot in feed order.
// The returned slice is never mutated by the store.
func (s *Store) All() []Product {
	s.mux.RLock()
	defer s.mux.RUnlock()

	return s.products
}

func (s *Store) Count() int {
	s.mux.RLock()
	defer s.mux.RUnlock()

	return len(s.products)
}

// LastRefreshedAt reports when the snapshot was last replaced.
// ok is false before the first refresh.
func (s *Store) LastRefreshedAt() (time.Time, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	if s.refreshedAt.IsZero() {
		return time.Time{}, false
	}

	return s.refreshedAt, true
}
