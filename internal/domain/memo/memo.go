// Package memo provides a bounded, concurrency-safe memo table.
//
// Values are expected to be pure functions of their key over immutable
// input, so entries never need invalidation; the bound only caps memory.
package memo

import (
	"sync"
	"sync/atomic"
)

// node is one entry in the insertion-ordered list.
type node[V any] struct {
	key   string
	value V
	prev  *node[V]
	next  *node[V]
}

// Cache memoizes values by string key.
// For bounded mode (maxSize > 0): evicts the oldest inserted entry first.
// For unbounded mode (maxSize <= 0): entries are never evicted.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*node[V]
	head    *node[V] // most recently inserted
	tail    *node[V] // oldest, evicted first
	maxSize int

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache with configuration options.
func New[V any](opts ...Option) *Cache[V] {
	cfg := options{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache[V]{
		entries: make(map[string]*node[V]),
		maxSize: cfg.maxSize,
	}
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	n, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. The second result reports whether the value came from the cache.
// compute runs without the lock held; concurrent misses for the same key may
// compute more than once, and the first stored value wins.
func (c *Cache[V]) GetOrCompute(key string, compute func() V) (V, bool) {
	if v, ok := c.Get(key); ok {
		c.hits.Add(1)
		return v, true
	}
	c.misses.Add(1)

	v := compute()

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing.value, false
	}
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	n := &node[V]{key: key, value: v, next: c.head}
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
	c.entries[key] = n
	return v, false
}

// evictOldest removes the tail entry. Must be called with c.mu held.
func (c *Cache[V]) evictOldest() {
	old := c.tail
	if old == nil {
		return
	}
	delete(c.entries, old.key)
	c.tail = old.prev
	if c.tail != nil {
		c.tail.next = nil
	} else {
		c.head = nil
	}
	old.prev = nil
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Hits returns the number of lookups served from the cache.
func (c *Cache[V]) Hits() int64 { return c.hits.Load() }

// Misses returns the number of lookups that had to compute.
func (c *Cache[V]) Misses() int64 { return c.misses.Load() }
