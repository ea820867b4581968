package ruleset

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/cory-johannsen/isekai/internal/game/stats"
)

const cacheCleanupInterval = 10 * time.Minute

// CachedCatalog memoizes another Catalog's results for a fixed TTL.
// Errors are never cached.
type CachedCatalog struct {
	next  Catalog
	cache *cache.Cache
}

// NewCachedCatalog wraps next with an expiring cache.
//
// Precondition: next must be non-nil; ttl <= 0 keeps entries until Flush.
func NewCachedCatalog(next Catalog, ttl time.Duration) *CachedCatalog {
	if next == nil {
		panic("NewCachedCatalog: precondition violated: next must be non-nil")
	}
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &CachedCatalog{next: next, cache: cache.New(ttl, cacheCleanupInterval)}
}

// UpToTier implements Catalog.
func (c *CachedCatalog) UpToTier(ctx context.Context, maxTier Tier) ([]*Archetype, error) {
	key := fmt.Sprintf("tier:%d", int(maxTier))
	if v, ok := c.cache.Get(key); ok {
		return v.([]*Archetype), nil
	}
	archetypes, err := c.next.UpToTier(ctx, maxTier)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, archetypes)
	return archetypes, nil
}

// Modifier implements Catalog. An absent modifier is cached as nil.
func (c *CachedCatalog) Modifier(ctx context.Context, archetypeID string) (*stats.Modifier, error) {
	key := "modifier:" + archetypeID
	if v, ok := c.cache.Get(key); ok {
		return v.(*stats.Modifier), nil
	}
	mod, err := c.next.Modifier(ctx, archetypeID)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, mod)
	return mod, nil
}

// Flush drops every cached entry.
func (c *CachedCatalog) Flush() {
	c.cache.Flush()
}
