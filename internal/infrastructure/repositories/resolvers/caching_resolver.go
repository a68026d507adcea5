package resolvers

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

type cacheEntry struct {
	value    string
	cachedAt time.Time
}

type lookupResult struct {
	value string
	found bool
}

// CachingResolver caches values found by the decorated resolver for a TTL.
// Misses and errors are not cached. Concurrent misses of the same key share
// one lookup.
type CachingResolver struct {
	decorated repositories.Resolver
	ttl       time.Duration
	now       func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	flight  singleflight.Group
}

var (
	_ repositories.Resolver    = (*CachingResolver)(nil)
	_ repositories.Invalidator = (*CachingResolver)(nil)
)

// NewCachingResolver creates a CachingResolver.
func NewCachingResolver(decorated repositories.Resolver, ttl time.Duration) *CachingResolver {
	return &CachingResolver{
		decorated: decorated,
		ttl:       ttl,
		now:       time.Now,
		entries:   make(map[string]cacheEntry),
	}
}

func (c *CachingResolver) Name() string { return c.decorated.Name() }

func (c *CachingResolver) Resolve(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Sub(entry.cachedAt) < c.ttl {
		return entry.value, true, nil
	}

	result, err, _ := c.flight.Do(key, func() (any, error) {
		value, found, err := c.decorated.Resolve(ctx, key)
		if err != nil {
			return nil, err
		}
		if found {
			c.mu.Lock()
			c.entries[key] = cacheEntry{value: value, cachedAt: c.now()}
			c.mu.Unlock()
		}
		return lookupResult{value: value, found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	lookup, _ := result.(lookupResult)
	return lookup.value, lookup.found, nil
}

// Invalidate drops every cached value.
func (c *CachingResolver) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
