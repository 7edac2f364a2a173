package search

import (
	"sync"
	"time"
)

// resultCache memoizes computed result lists per (query, filters, sort)
// key. Entries expire after the configured TTL and are evicted lazily at
// read time; there is no background sweeper. The entry cap is a safe
// generalization over the unbounded browser cache: when full, the oldest
// entry is dropped.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[string]cacheEntry
	now     func() time.Time // swapped out by tests
}

type cacheEntry struct {
	items   []scored
	created time.Time
}

func newResultCache(ttl time.Duration, max int) *resultCache {
	return &resultCache{
		ttl:     ttl,
		max:     max,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *resultCache) get(key string) ([]scored, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.created) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.items, true
}

func (c *resultCache) put(key string, items []scored) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.max > 0 && len(c.entries) >= c.max {
		if _, exists := c.entries[key]; !exists {
			c.evictOldestLocked()
		}
	}
	c.entries[key] = cacheEntry{items: items, created: c.now()}
}

func (c *resultCache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.created.Before(oldest) {
			oldestKey = k
			oldest = e.created
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *resultCache) purge() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
