package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultCache implements usecase.ResultCache using Redis. Keys are plan
// digests, values are marshaled simulation results.
type ResultCache struct {
	client *redis.Client
	prefix string
}

// NewResultCache creates a new ResultCache.
func NewResultCache(client *redis.Client) *ResultCache {
	return &ResultCache{
		client: client,
		prefix: "result:",
	}
}

// Get retrieves a cached result by plan digest. A miss returns (nil, nil).
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Set stores a result payload under a plan digest with TTL.
func (c *ResultCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, payload, ttl).Err()
}
