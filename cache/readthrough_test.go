package cache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/logabaalan777/property-listing/cache"
	"github.com/logabaalan777/property-listing/cache/cachetest"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetOrLoadMissThenHit(t *testing.T) {
	ctx := context.Background()
	fake := cachetest.New()
	loads := 0
	load := func(ctx context.Context) (payload, error) {
		loads++
		return payload{Name: "first", Count: 7}, nil
	}

	got, err := cache.GetOrLoad(ctx, fake, zap.NewNop(), "test:key", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "first", Count: 7}, got)
	assert.Equal(t, 1, loads)

	// Second read is served from the cache; the loader must not run again.
	got, err = cache.GetOrLoad(ctx, fake, zap.NewNop(), "test:key", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "first", Count: 7}, got)
	assert.Equal(t, 1, loads)
}

func TestGetOrLoadCachesEmptyResults(t *testing.T) {
	ctx := context.Background()
	fake := cachetest.New()
	loads := 0
	load := func(ctx context.Context) ([]payload, error) {
		loads++
		return []payload{}, nil
	}

	_, err := cache.GetOrLoad(ctx, fake, zap.NewNop(), "test:empty", time.Minute, load)
	require.NoError(t, err)
	_, err = cache.GetOrLoad(ctx, fake, zap.NewNop(), "test:empty", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
}

func TestGetOrLoadFallsThroughOnCacheOutage(t *testing.T) {
	ctx := context.Background()
	fake := cachetest.New()
	fake.GetErr = errors.New("connection refused")
	fake.SetErr = errors.New("connection refused")

	got, err := cache.GetOrLoad(ctx, fake, zap.NewNop(), "test:key", time.Minute,
		func(ctx context.Context) (payload, error) {
			return payload{Name: "from-store"}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "from-store", got.Name)
}

func TestGetOrLoadTreatsWrappedMissAsMiss(t *testing.T) {
	ctx := context.Background()
	fake := cachetest.New()
	fake.GetErr = fmt.Errorf("layered cache: %w", cache.ErrMiss)

	core, logged := observer.New(zap.WarnLevel)
	got, err := cache.GetOrLoad(ctx, fake, zap.New(core), "test:key", time.Minute,
		func(ctx context.Context) (payload, error) {
			return payload{Name: "loaded"}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "loaded", got.Name)

	// A miss, even wrapped by a cache implementation, is not an outage and
	// must not be logged as one.
	for _, entry := range logged.All() {
		assert.NotEqual(t, "cache get failed, falling through to store", entry.Message)
	}
}

func TestGetOrLoadPropagatesLoaderErrorUncached(t *testing.T) {
	ctx := context.Background()
	fake := cachetest.New()
	wantErr := errors.New("store: not found")

	_, err := cache.GetOrLoad(ctx, fake, zap.NewNop(), "test:key", time.Minute,
		func(ctx context.Context) (*payload, error) {
			return nil, wantErr
		})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, fake.Len())
}

func TestGetOrLoadEvictsUndecodableEntry(t *testing.T) {
	ctx := context.Background()
	fake := cachetest.New()
	require.NoError(t, fake.Set(ctx, "test:key", "{not json", time.Minute))

	got, err := cache.GetOrLoad(ctx, fake, zap.NewNop(), "test:key", time.Minute,
		func(ctx context.Context) (payload, error) {
			return payload{Name: "reloaded"}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, "reloaded", got.Name)
	assert.True(t, fake.Has("test:key"))
}
