package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/larder-io/larder/internal/cache"
)

// TracedStore decorates a cache.Store with a client span per operation.
// Purely observational: every call is forwarded unchanged.
type TracedStore struct {
	inner cache.Store
}

// NewTracedStore wraps store with span instrumentation.
func NewTracedStore(store cache.Store) *TracedStore {
	return &TracedStore{inner: store}
}

// Get forwards to the inner store, recording hit/miss on the span.
func (s *TracedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := s.start(ctx, "cache.get", attribute.String("cache.key", key))
	defer span.End()

	value, found, err := s.inner.Get(ctx, key)
	span.SetAttributes(attribute.Bool("cache.hit", found))
	recordError(span, err)
	return value, found, err
}

// Set forwards to the inner store.
func (s *TracedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, span := s.start(ctx, "cache.set",
		attribute.String("cache.key", key),
		attribute.Float64("cache.ttl_seconds", ttl.Seconds()),
	)
	defer span.End()

	err := s.inner.Set(ctx, key, value, ttl)
	recordError(span, err)
	return err
}

// Delete forwards to the inner store.
func (s *TracedStore) Delete(ctx context.Context, keys ...string) error {
	ctx, span := s.start(ctx, "cache.delete", attribute.StringSlice("cache.keys", keys))
	defer span.End()

	err := s.inner.Delete(ctx, keys...)
	recordError(span, err)
	return err
}

// DeletePattern forwards to the inner store.
func (s *TracedStore) DeletePattern(ctx context.Context, pattern string) error {
	ctx, span := s.start(ctx, "cache.delete_pattern", attribute.String("cache.pattern", pattern))
	defer span.End()

	err := s.inner.DeletePattern(ctx, pattern)
	recordError(span, err)
	return err
}

// Ping forwards to the inner store.
func (s *TracedStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close forwards to the inner store.
func (s *TracedStore) Close() error {
	return s.inner.Close()
}

func (s *TracedStore) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer().Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
