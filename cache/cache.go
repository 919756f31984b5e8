// Package cache implements the read-through cache and write-invalidation
// layer in front of the document store. Redis is the backing cache; the
// store remains the source of truth and every read survives a cache outage.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss reports that a key is absent (or expired) in the cache.
var ErrMiss = errors.New("cache: miss")

// Entry TTLs, one constant per namespace.
const (
	PropertyListTTL    = 600 * time.Second
	PropertyTTL        = 600 * time.Second
	FavoritesTTL       = 300 * time.Second
	RecommendationsTTL = 600 * time.Second
	EmailMarkerTTL     = 600 * time.Second
	SessionTTL         = 3600 * time.Second
)

// Cache is the contract the controllers and the invalidation policy depend
// on. The Redis client satisfies it in production; tests substitute fakes.
type Cache interface {
	// Get returns the value at key, or ErrMiss if absent.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value at key with the given expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Del removes the given keys. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error
	// DelPattern removes every key matching a glob pattern.
	DelPattern(ctx context.Context, pattern string) error
}

type redisCache struct {
	client *redis.Client
}

// NewRedis wraps a connected Redis client as a Cache.
func NewRedis(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// DelPattern walks the keyspace with SCAN and deletes matches in one
// pipeline, so namespace eviction never blocks Redis the way KEYS would.
func (c *redisCache) DelPattern(ctx context.Context, pattern string) error {
	const scanCount = 100

	var keys []string
	var cursor uint64
	for {
		batch, next, err := c.client.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	_, err := pipe.Exec(ctx)
	return err
}
