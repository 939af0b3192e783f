package search

import "github.com/variantcl/variantcl/anahash"

// Cache is a bounded set of anagram hashes already expanded during
// deletion search, used to short-circuit repeated work when the same
// hash is reached by more than one deletion path. It is not safe for
// concurrent use and is never shared across queries in parallel mode.
type Cache struct {
	visited map[string]struct{}
	maxSize int
}

// NewCache creates a cache that flushes itself once it holds more than
// maxSize entries. maxSize <= 0 disables the flush (unbounded growth).
func NewCache(maxSize int) *Cache {
	return &Cache{
		visited: make(map[string]struct{}),
		maxSize: maxSize,
	}
}

// Visited reports whether v has already been marked.
func (c *Cache) Visited(v anahash.Value) bool {
	_, ok := c.visited[v.String()]
	return ok
}

// Mark records v as visited.
func (c *Cache) Mark(v anahash.Value) {
	c.visited[v.String()] = struct{}{}
}

// Check flushes the cache if it has grown past its configured capacity.
// This is a simple flush policy, not an LRU: callers that want bounded
// memory call Check periodically during a long expansion.
func (c *Cache) Check() {
	if c.maxSize > 0 && len(c.visited) > c.maxSize {
		c.Clear()
	}
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.visited = make(map[string]struct{})
}
