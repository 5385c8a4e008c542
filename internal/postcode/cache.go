package postcode

import "sync"

// Cache memoizes parsed pattern sets by their raw configuration text.
// Cached sets are shared between callers and must be treated as read-only.
type Cache struct {
	mu   sync.RWMutex
	max  int
	sets map[string]PatternSet
}

// NewCache returns a cache holding at most max entries. max <= 0 means unbounded.
// A full cache is reset rather than evicted entry by entry; configurations are few.
func NewCache(max int) *Cache {
	return &Cache{max: max, sets: make(map[string]PatternSet)}
}

// Get returns the parsed set for raw, parsing it on first use.
func (c *Cache) Get(raw string) PatternSet {
	c.mu.RLock()
	set, ok := c.sets[raw]
	c.mu.RUnlock()
	if ok {
		return set
	}

	set = Parse(raw)
	c.mu.Lock()
	if c.max > 0 && len(c.sets) >= c.max {
		c.sets = make(map[string]PatternSet)
	}
	c.sets[raw] = set
	c.mu.Unlock()
	return set
}

// Len returns the number of cached configurations.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sets)
}
