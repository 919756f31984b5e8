package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// GetOrLoad is the read-through path: consult the cache first and, on a hit,
// never touch the store. On a miss the loader runs, and its result is cached
// for the next caller.
//
// The cache is an optimization, not a dependency: a failing Get is treated
// as a miss and a failing Set is logged and dropped, so reads keep working
// through a cache outage. Loader errors are returned as-is and nothing is
// cached for them.
func GetOrLoad[T any](ctx context.Context, c Cache, logger *zap.Logger, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var result T

	cached, err := c.Get(ctx, key)
	if err == nil {
		if uerr := json.Unmarshal([]byte(cached), &result); uerr == nil {
			return result, nil
		}
		// Unreadable entry: evict and fall through to the store.
		logger.Warn("evicting undecodable cache entry", zap.String("key", key))
		if derr := c.Del(ctx, key); derr != nil {
			logger.Warn("cache delete failed", zap.String("key", key), zap.Error(derr))
		}
	} else if !errors.Is(err, ErrMiss) {
		logger.Warn("cache get failed, falling through to store", zap.String("key", key), zap.Error(err))
	}

	result, err = load(ctx)
	if err != nil {
		return result, err
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return result, nil
	}
	if err := c.Set(ctx, key, string(encoded), ttl); err != nil {
		logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return result, nil
}
