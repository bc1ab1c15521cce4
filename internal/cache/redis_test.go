package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRedisStoreRequiresAddress(t *testing.T) {
	_, err := NewRedisStore(RedisConfig{Address: "   "})
	require.Error(t, err)
}

func TestNewRedisStoreFailsFastWhenUnreachable(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping network dial in short mode")
	}

	// Reserved TEST-NET-1 address: the eager ping must fail during construction
	// instead of deferring the error to the first cache operation.
	_, err := NewRedisStore(RedisConfig{Address: "192.0.2.1:6379", Timeout: time.Second})
	require.Error(t, err)
}
