package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// failingStore simulates a total cache backend outage: every operation errors.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func (failingStore) Delete(context.Context, ...string) error {
	return errors.New("connection refused")
}

func (failingStore) DeletePattern(context.Context, string) error {
	return errors.New("connection refused")
}

func (failingStore) Ping(context.Context) error { return errors.New("connection refused") }
func (failingStore) Close() error               { return nil }

type payload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestClientRoundTrip(t *testing.T) {
	client, err := NewClient(NewMemoryStore(), time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	client.Set(ctx, "items:1", payload{ID: 1, Name: "bread"}, 0)

	var got payload
	require.True(t, client.Get(ctx, "items:1", &got))
	require.Equal(t, payload{ID: 1, Name: "bread"}, got)
}

func TestClientGetMissOnAbsentKey(t *testing.T) {
	client, err := NewClient(NewMemoryStore(), time.Minute)
	require.NoError(t, err)

	var got payload
	require.False(t, client.Get(context.Background(), "items:404", &got))
}

func TestClientSuppressesStoreFailures(t *testing.T) {
	client, err := NewClient(failingStore{}, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()

	var got payload
	require.False(t, client.Get(ctx, "items:1", &got), "outage reads degrade to a miss")

	// None of these may panic or surface an error.
	client.Set(ctx, "items:1", payload{ID: 1}, 0)
	client.Delete(ctx, "items:1")
	client.DeletePattern(ctx, "items:*")
}

func TestClientGetMissOnCorruptEntry(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "items:1", []byte("{not json"), 0))

	client, err := NewClient(store, time.Minute)
	require.NoError(t, err)

	var got payload
	require.False(t, client.Get(context.Background(), "items:1", &got))
}

func TestClientSetUsesDefaultTTL(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	client, err := NewClient(store, 30*time.Second)
	require.NoError(t, err)

	ctx := context.Background()
	client.Set(ctx, "items:1", payload{ID: 1}, 0)

	current = current.Add(29 * time.Second)
	var got payload
	require.True(t, client.Get(ctx, "items:1", &got))

	current = current.Add(2 * time.Second)
	require.False(t, client.Get(ctx, "items:1", &got))
}

func TestClientCachesEmptyList(t *testing.T) {
	client, err := NewClient(NewMemoryStore(), time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	client.Set(ctx, "items:list:0:20", []payload{}, 0)

	var got []payload
	require.True(t, client.Get(ctx, "items:list:0:20", &got), "an empty list is a hit, not a miss")
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestNewClientRequiresStore(t *testing.T) {
	_, err := NewClient(nil, time.Minute)
	require.Error(t, err)
}

func TestKeyNamespace(t *testing.T) {
	require.Equal(t, "items", keyNamespace("items:5"))
	require.Equal(t, "items", keyNamespace("items:list:0:20"))
	require.Equal(t, "bare", keyNamespace("bare"))
}
