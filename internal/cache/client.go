package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/larder-io/larder/pkg/logger"
	"github.com/larder-io/larder/pkg/metrics"
)

const defaultTTL = 60 * time.Second

// Client is the cache API the rest of the application sees. Every operation
// succeeds from the caller's perspective: transport, timeout, and codec
// failures are logged at warn level and degrade to a miss or a no-op, never a
// propagating error. The cache is an optimization; the backing store stays the
// source of truth when it is unavailable.
type Client struct {
	store Store
	ttl   time.Duration
	log   *zap.Logger
}

// NewClient wraps a Store with the JSON codec and the default entry TTL.
func NewClient(store Store, ttl time.Duration) (*Client, error) {
	if store == nil {
		return nil, errors.New("cache: store is required")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Client{
		store: store,
		ttl:   ttl,
		log:   logger.WithModule("cache"),
	}, nil
}

// DefaultTTL exposes the configured entry lifetime.
func (c *Client) DefaultTTL() time.Duration {
	return c.ttl
}

// Get looks up key and decodes the stored JSON into dest. It reports false on
// an absent key, a transport error, or a decode error.
func (c *Client) Get(ctx context.Context, key string, dest any) bool {
	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		metrics.CacheFailures.WithLabelValues("get").Inc()
		c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !found {
		metrics.CacheMisses.WithLabelValues(keyNamespace(key)).Inc()
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.CacheFailures.WithLabelValues("get").Inc()
		c.log.Warn("cache entry decode failed", zap.String("key", key), zap.Error(err))
		return false
	}

	metrics.CacheHits.WithLabelValues(keyNamespace(key)).Inc()
	return true
}

// Set serializes value to JSON and stores it under key. A non-positive ttl
// means the configured default. Failures are logged and swallowed.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	raw, err := json.Marshal(value)
	if err != nil {
		metrics.CacheFailures.WithLabelValues("set").Inc()
		c.log.Warn("cache entry encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.store.Set(ctx, key, raw, ttl); err != nil {
		metrics.CacheFailures.WithLabelValues("set").Inc()
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes the supplied keys, best effort.
func (c *Client) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		metrics.CacheFailures.WithLabelValues("delete").Inc()
		c.log.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// DeletePattern removes every key matching the glob pattern, best effort.
// Partial deletion is an acceptable degraded state: whatever survives is
// served as a miss once its TTL lapses.
func (c *Client) DeletePattern(ctx context.Context, pattern string) {
	if err := c.store.DeletePattern(ctx, pattern); err != nil {
		metrics.CacheFailures.WithLabelValues("delete_pattern").Inc()
		c.log.Warn("cache pattern delete failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

// keyNamespace extracts the resource namespace from a derived cache key.
func keyNamespace(key string) string {
	if idx := strings.IndexByte(key, ':'); idx > 0 {
		return key[:idx]
	}
	return key
}
