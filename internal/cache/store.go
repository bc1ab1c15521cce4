package cache

import (
	"context"
	"time"
)

// Store is the transport layer beneath the cache client. Implementations return
// errors; uniform failure suppression happens one level up in Client.
type Store interface {
	// Get returns the raw value for key. A missing key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key with the supplied expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the supplied keys, ignoring missing ones.
	Delete(ctx context.Context, keys ...string) error
	// DeletePattern removes every key matching the glob pattern. Implementations
	// must scan incrementally rather than loading the whole key space at once.
	DeletePattern(ctx context.Context, pattern string) error
	// Ping verifies connectivity to the underlying store.
	Ping(ctx context.Context) error
	// Close releases the store's resources.
	Close() error
}
