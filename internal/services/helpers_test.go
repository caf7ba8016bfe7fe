package services_test

import (
	"context"
	"sync"
	"testing"

	"storefront/internal/repos"
	"storefront/internal/services"
)

// countingStore records writes so tests can assert a read did not rewrite.
type countingStore struct {
	*repos.MemoryStore
	mu     sync.Mutex
	writes int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: repos.NewMemoryStore()}
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *countingStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func newCart(t *testing.T) (*services.CartService, repos.Store) {
	t.Helper()
	store := repos.NewMemoryStore()
	return services.NewCartService(repos.NewCartRepo(store), 9.95), store
}
