package cache

import (
	"context"
	"errors"
	"time"

	"github.com/kisanmitra/kisanmitra/pkg/redis"
)

const redisScope = "api"

type redisClient interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(scope string, parts ...string) string
}

// Redis stores entries in Redis under the client's cache namespace.
type Redis struct {
	client redisClient
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.CacheKey(redisScope, key))
	if errors.Is(err, redis.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.client.CacheKey(redisScope, key), value, ttl)
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.CacheKey(redisScope, key))
}
