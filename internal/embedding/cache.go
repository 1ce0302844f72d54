package embedding

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of tag vectors kept by a CachedProvider.
const DefaultCacheSize = 4096

// CachedProvider keeps recently used tag vectors in memory in front of a
// slower provider such as RedisStore. Failed lookups are not cached.
type CachedProvider struct {
	next  Provider
	cache *lru.Cache[string, Vector]
}

// NewCachedProvider wraps next with an LRU cache holding up to size vectors.
func NewCachedProvider(next Provider, size int) (*CachedProvider, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, Vector](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector cache: %w", err)
	}
	return &CachedProvider{next: next, cache: cache}, nil
}

// Lookup serves tag from the cache, falling back to the wrapped provider.
func (c *CachedProvider) Lookup(ctx context.Context, tag string) (Vector, error) {
	if vec, ok := c.cache.Get(tag); ok {
		return append(Vector(nil), vec...), nil
	}
	vec, err := c.next.Lookup(ctx, tag)
	if err != nil {
		return nil, err
	}
	c.cache.Add(tag, append(Vector(nil), vec...))
	return vec, nil
}

// Dimension delegates to the wrapped provider.
func (c *CachedProvider) Dimension() int {
	return c.next.Dimension()
}

// Len returns the number of cached vectors.
func (c *CachedProvider) Len() int {
	return c.cache.Len()
}
