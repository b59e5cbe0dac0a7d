// Package cache stores opaque byte values with an optional TTL.
//
// Three implementations are provided:
//   - NullCache: caching disabled
//   - MemoryCache: in-process, for a single server
//   - RedisCache: shared between server instances
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized values.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
