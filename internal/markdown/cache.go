package markdown

import "sync"

// fifoCache is a bounded map that evicts the oldest inserted key first.
// Reads do not affect eviction order.
type fifoCache struct {
	mu      sync.Mutex
	max     int
	entries map[string]string
	order   []string
}

func newFIFOCache(max int) *fifoCache {
	return &fifoCache{
		max:     max,
		entries: make(map[string]string, max+1),
		order:   make([]string, 0, max+1),
	}
}

func (c *fifoCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *fifoCache) put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = value
		return
	}

	c.entries[key] = value
	c.order = append(c.order, key)

	for len(c.order) > c.max {
		oldest := c.order[0]
		c.order[0] = ""
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *fifoCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *fifoCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string, c.max+1)
	c.order = make([]string, 0, c.max+1)
}
