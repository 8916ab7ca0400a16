package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kisanmitra/kisanmitra/pkg/config"
	"github.com/kisanmitra/kisanmitra/pkg/redis"
)

// SchemaVersion prefixes every key. Bump it when a cached payload shape changes
// so stale entries are never decoded into the new shape.
const SchemaVersion = "v1"

// Store is a byte-oriented cache. A miss is reported as (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key joins parts into a versioned cache key.
func Key(parts ...string) string {
	clean := make([]string, 0, len(parts)+1)
	clean = append(clean, SchemaVersion)
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			clean = append(clean, part)
		}
	}
	return strings.Join(clean, ":")
}

// Open builds the store selected by cfg.Cache.Backend. It returns a nil Store
// when caching is disabled. The returned close func is never nil.
func Open(ctx context.Context, cfg config.Config) (Store, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(cfg.Cache.Backend)) {
	case "", config.CacheBackendNone:
		return nil, noop, nil
	case config.CacheBackendMemory:
		return NewMemory(cfg.Cache.Size, cfg.Cache.TTL), noop, nil
	case config.CacheBackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, fmt.Errorf("open redis cache: %w", err)
		}
		return NewRedis(client), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
