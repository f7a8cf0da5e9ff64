package resolver

import "sync"

// Cache maps identifier-style module ids to resolved paths for the lifetime
// of the process. It is safe for concurrent use; racing writes store the same
// value for the same key.
type Cache struct {
	mu    sync.RWMutex
	paths map[string]string
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{paths: make(map[string]string)}
}

// Get returns the cached path for id.
func (c *Cache) Get(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.paths[id]
	return p, ok
}

// Set stores the resolved path for id.
func (c *Cache) Set(id, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths[id] = path
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.paths)
}
