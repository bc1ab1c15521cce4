package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "items:1", []byte(`{"id":1}`), time.Minute))

	value, found, err := store.Get(ctx, "items:1")
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `{"id":1}`, string(value))

	_, found, err = store.Get(ctx, "items:2")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "items:1", []byte("x"), time.Minute))

	current = current.Add(2 * time.Minute)

	_, found, err := store.Get(ctx, "items:1")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "items:1", []byte("a"), 0))
	require.NoError(t, store.Set(ctx, "items:2", []byte("b"), 0))

	require.NoError(t, store.Delete(ctx, "items:1", "items:404"))

	_, found, _ := store.Get(ctx, "items:1")
	require.False(t, found)
	_, found, _ = store.Get(ctx, "items:2")
	require.True(t, found)
}

func TestMemoryStoreDeletePattern(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, EntityKey("items", 5), []byte("e"), 0))
	require.NoError(t, store.Set(ctx, ListKey("items", 0, 20), []byte("l1"), 0))
	require.NoError(t, store.Set(ctx, ListKey("items", 20, 20), []byte("l2"), 0))
	require.NoError(t, store.Set(ctx, ListKey("notes", 0, 20), []byte("n"), 0))

	require.NoError(t, store.DeletePattern(ctx, ListPattern("items")))

	_, found, _ := store.Get(ctx, EntityKey("items", 5))
	require.True(t, found, "entity keys survive a list sweep")
	_, found, _ = store.Get(ctx, ListKey("items", 0, 20))
	require.False(t, found)
	_, found, _ = store.Get(ctx, ListKey("items", 20, 20))
	require.False(t, found)
	_, found, _ = store.Get(ctx, ListKey("notes", 0, 20))
	require.True(t, found, "other namespaces stay untouched")
}

func TestMemoryStoreDeletePatternIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, ListKey("items", 0, 20), []byte("l"), 0))

	require.NoError(t, store.DeletePattern(ctx, ListPattern("items")))
	require.NoError(t, store.DeletePattern(ctx, ListPattern("items")))

	require.Zero(t, store.Len())
}

func TestMemoryStoreCleanupExpired(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "items:1", []byte("a"), time.Minute))
	require.NoError(t, store.Set(ctx, "items:2", []byte("b"), time.Hour))

	current = current.Add(10 * time.Minute)

	require.Equal(t, 1, store.CleanupExpired())
	require.Equal(t, 1, store.Len())
}

func TestMemoryStoreRespectsCancelledContext(t *testing.T) {
	store := NewMemoryStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, store.Set(ctx, "items:1", []byte("a"), 0))
	_, _, err := store.Get(ctx, "items:1")
	require.Error(t, err)
}
