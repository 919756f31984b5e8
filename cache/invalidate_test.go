package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/logabaalan777/property-listing/cache"
	"github.com/logabaalan777/property-listing/cache/cachetest"
)

func seed(t *testing.T, fake *cachetest.Fake, keys ...string) {
	t.Helper()
	for _, key := range keys {
		require.NoError(t, fake.Set(context.Background(), key, `{}`, time.Minute))
	}
}

func TestPropertyCreatedFlushesBothPropertyNamespaces(t *testing.T) {
	fake := cachetest.New()
	seed(t, fake,
		"properties:city=Pune;limit=10;page=1",
		"properties:limit=10;page=2",
		"property:PROP1001",
		"favorites:user1",
		"user:email:a@b.com",
	)

	inv := cache.NewInvalidator(fake, zap.NewNop())
	inv.PropertyCreated(context.Background())

	assert.False(t, fake.Has("properties:city=Pune;limit=10;page=1"))
	assert.False(t, fake.Has("properties:limit=10;page=2"))
	assert.False(t, fake.Has("property:PROP1001"))
	// Unrelated namespaces survive.
	assert.True(t, fake.Has("favorites:user1"))
	assert.True(t, fake.Has("user:email:a@b.com"))
}

func TestPropertyWrittenEvictsDetailAndLists(t *testing.T) {
	fake := cachetest.New()
	seed(t, fake,
		"property:PROP1001",
		"property:PROP2002",
		"properties:limit=10;page=1",
	)

	inv := cache.NewInvalidator(fake, zap.NewNop())
	inv.PropertyWritten(context.Background(), "PROP1001")

	assert.False(t, fake.Has("property:PROP1001"))
	assert.False(t, fake.Has("properties:limit=10;page=1"))
	// The sibling detail entry falls to the namespace flush as well; after a
	// property mutation no property entry may be served as fresh.
	assert.False(t, fake.Has("property:PROP2002"))
	assert.Contains(t, fake.DelCalls, "property:PROP1001")
}

func TestFavoritesChangedEvictsOnlyThatUser(t *testing.T) {
	fake := cachetest.New()
	seed(t, fake, "favorites:user1", "favorites:user2", "properties:limit=10;page=1")

	inv := cache.NewInvalidator(fake, zap.NewNop())
	inv.FavoritesChanged(context.Background(), "user1")

	assert.False(t, fake.Has("favorites:user1"))
	assert.True(t, fake.Has("favorites:user2"))
	assert.True(t, fake.Has("properties:limit=10;page=1"))
	assert.Empty(t, fake.PatternCalls)
}

func TestRecommendationsChangedEvictsOnlyRecipient(t *testing.T) {
	fake := cachetest.New()
	seed(t, fake, "recommendations:user1", "recommendations:user2")

	inv := cache.NewInvalidator(fake, zap.NewNop())
	inv.RecommendationsChanged(context.Background(), "user2")

	assert.True(t, fake.Has("recommendations:user1"))
	assert.False(t, fake.Has("recommendations:user2"))
}
