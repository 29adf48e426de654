package cache

import (
	"sync"
	"time"
)

// entry is a stored value with its expiry instant and the version tag that
// was current when it was written.
type entry[V any] struct {
	value   V
	expiry  time.Time
	version string
}

// Cache is a generic key-value cache with per-entry TTL and a version tag.
// Expiry is checked lazily on Get; there is no background sweep. The version
// tag is bumped manually by the owner when the cached payload's shape
// changes, which invalidates everything written under the old tag.
//
// The aggregation layer it fronts is pure, but the cache itself is shared
// across requests, so reads and writes are mutex-guarded.
type Cache[V any] struct {
	mu      sync.RWMutex
	version string
	entries map[string]entry[V]
	now     func() time.Time
}

// New creates a cache whose entries are only valid while version matches.
func New[V any](version string) *Cache[V] {
	return &Cache[V]{
		version: version,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value for key, or absent when the key is missing,
// the entry has expired, or the entry was written under a stale version tag.
// Stale entries are dropped on the spot.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if e.version != c.version || !c.now().Before(e.expiry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, expiring ttl from now.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{
		value:   value,
		expiry:  c.now().Add(ttl),
		version: c.version,
	}
}

// Invalidate removes key immediately.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of physically stored entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
