package cache

import (
	"context"

	"go.uber.org/zap"
)

// Invalidator decides which cache entries a mutation makes stale and evicts
// them. Property writes flush both property namespaces wholesale: the filter
// combinations behind cached list keys are unbounded, so enumerating exactly
// the affected keys is not possible without a predicate index. Favorite and
// recommendation writes touch a single per-user key.
//
// Eviction failures are logged, never returned: a missed eviction leaves an
// entry that still expires at its organic TTL.
type Invalidator struct {
	cache  Cache
	logger *zap.Logger
}

func NewInvalidator(c Cache, logger *zap.Logger) *Invalidator {
	return &Invalidator{cache: c, logger: logger}
}

// PropertyCreated evicts every cached property list and property detail.
func (inv *Invalidator) PropertyCreated(ctx context.Context) {
	inv.flushProperties(ctx)
}

// PropertyWritten evicts the detail entry for propID plus every cached
// property list; an edit can move the property in or out of any filtered
// list.
func (inv *Invalidator) PropertyWritten(ctx context.Context, propID string) {
	if err := inv.cache.Del(ctx, PropertyKey(propID)); err != nil {
		inv.logger.Warn("property cache eviction failed", zap.String("propId", propID), zap.Error(err))
	}
	inv.flushProperties(ctx)
}

// FavoritesChanged evicts the acting user's favorites list. Favorites are
// strictly per-user, so no other entry can be stale.
func (inv *Invalidator) FavoritesChanged(ctx context.Context, userID string) {
	if err := inv.cache.Del(ctx, FavoritesKey(userID)); err != nil {
		inv.logger.Warn("favorites cache eviction failed", zap.String("userId", userID), zap.Error(err))
	}
}

// RecommendationsChanged evicts the recipient's received-recommendations
// list.
func (inv *Invalidator) RecommendationsChanged(ctx context.Context, userID string) {
	if err := inv.cache.Del(ctx, RecommendationsKey(userID)); err != nil {
		inv.logger.Warn("recommendations cache eviction failed", zap.String("userId", userID), zap.Error(err))
	}
}

func (inv *Invalidator) flushProperties(ctx context.Context) {
	for _, pattern := range []string{NamespaceProperties + ":*", NamespaceProperty + ":*"} {
		if err := inv.cache.DelPattern(ctx, pattern); err != nil {
			inv.logger.Warn("property namespace flush failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}
