// Package cache provides the in-memory result cache for synthesized
// market data. Entries are immutable once written; repeated identical
// requests are served without recomputation until their TTL elapses.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Store is the cache contract handlers and services depend on. The default
// implementation is in-process; an external store can substitute without
// changing call sites.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
}

// entry wraps a cached value with expiry and insertion order tracking.
type entry struct {
	value     any
	expiry    time.Time
	insertIdx int64
}

// ResultCache is a thread-safe TTL cache keyed by request-shape strings
// (ticker + timeframe + resolved range, search query, symbol + time bucket).
// Expired entries are evicted lazily on the next Get; when at capacity the
// oldest entry by insertion order is evicted.
type ResultCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	defaultTTL time.Duration
	maxEntries int
	nextIdx    int64
}

// New creates a ResultCache with the given default TTL and max entry count.
func New(defaultTTL time.Duration, maxEntries int) *ResultCache {
	return &ResultCache{
		items:      make(map[string]entry),
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
	}
}

// Get returns a cached value if found and not expired.
func (c *ResultCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		// Expired: remove lazily
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && time.Now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores a value with a per-entry TTL. A non-positive ttl uses the cache
// default. Writes to the same key are last-write-wins. Evicts the oldest
// entry if at capacity.
func (c *ResultCache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		value:     value,
		expiry:    time.Now().Add(ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	// If key already exists, update in place (no capacity change)
	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	if c.maxEntries > 0 && len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// Delete removes a single entry.
func (c *ResultCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// InvalidatePrefix removes all entries whose key starts with the given prefix.
func (c *ResultCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Len returns the number of stored entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictOldest removes the entry with the lowest insertIdx. Must be called
// with mu held.
func (c *ResultCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
