package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/larder-io/larder/internal/cache"
	"github.com/larder-io/larder/internal/database/testutil"
)

// countingStore wraps a MemoryStore and records operation counts so tests can
// observe whether a read was served from cache. Setting failing simulates a
// total cache backend outage.
type countingStore struct {
	inner *cache.MemoryStore

	mu             sync.Mutex
	failing        bool
	gets           int
	sets           int
	deletes        int
	patternDeletes int
}

func newCountingStore() *countingStore {
	return &countingStore{inner: cache.NewMemoryStore()}
}

var errStoreDown = errors.New("cache backend down")

func (s *countingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	s.gets++
	failing := s.failing
	s.mu.Unlock()

	if failing {
		return nil, false, errStoreDown
	}
	return s.inner.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	s.sets++
	failing := s.failing
	s.mu.Unlock()

	if failing {
		return errStoreDown
	}
	return s.inner.Set(ctx, key, value, ttl)
}

func (s *countingStore) Delete(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	s.deletes++
	failing := s.failing
	s.mu.Unlock()

	if failing {
		return errStoreDown
	}
	return s.inner.Delete(ctx, keys...)
}

func (s *countingStore) DeletePattern(ctx context.Context, pattern string) error {
	s.mu.Lock()
	s.patternDeletes++
	failing := s.failing
	s.mu.Unlock()

	if failing {
		return errStoreDown
	}
	return s.inner.DeletePattern(ctx, pattern)
}

func (s *countingStore) Ping(ctx context.Context) error { return s.inner.Ping(ctx) }
func (s *countingStore) Close() error                   { return s.inner.Close() }

func (s *countingStore) setFailing(failing bool) {
	s.mu.Lock()
	s.failing = failing
	s.mu.Unlock()
}

func (s *countingStore) counts() (gets, sets, deletes, patternDeletes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.sets, s.deletes, s.patternDeletes
}

// has reports whether a key currently exists in the underlying store.
func (s *countingStore) has(t *testing.T, key string) bool {
	t.Helper()
	_, found, err := s.inner.Get(context.Background(), key)
	require.NoError(t, err)
	return found
}

type serviceEnv struct {
	db    *gorm.DB
	store *countingStore
	cache *cache.Client
}

func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithMigrations())

	store := newCountingStore()
	client, err := cache.NewClient(store, time.Minute)
	require.NoError(t, err)

	return &serviceEnv{db: db, store: store, cache: client}
}

func strptr(s string) *string { return &s }
