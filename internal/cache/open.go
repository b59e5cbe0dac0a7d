package cache

import (
	"context"
	"fmt"
)

// Open returns the cache for kind: "", "none", "memory" or "redis".
func Open(ctx context.Context, kind, redisURL string) (Cache, error) {
	switch kind {
	case "", "none":
		return NewNullCache(), nil
	case "memory":
		return NewMemoryCache(), nil
	case "redis":
		return NewRedisCache(ctx, redisURL, "soulcard:")
	default:
		return nil, fmt.Errorf("unknown cache kind %q", kind)
	}
}
