package handlers

import (
	"sync"
	"time"
)

// cachedResponse is a proxied upstream response held in memory.
type cachedResponse struct {
	status      int
	contentType string
	body        []byte
	expiresAt   time.Time
}

// proxyCache is a TTL cache for proxied responses. Entries are evicted
// lazily on lookup and swept when the cache grows past maxEntries.
type proxyCache struct {
	mu         sync.RWMutex
	entries    map[string]cachedResponse
	ttl        time.Duration
	maxEntries int
}

func newProxyCache(ttl time.Duration, maxEntries int) *proxyCache {
	return &proxyCache{
		entries:    make(map[string]cachedResponse),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *proxyCache) get(key string) (cachedResponse, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return cachedResponse{}, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return cachedResponse{}, false
	}
	return entry, true
}

func (c *proxyCache) put(key string, entry cachedResponse) {
	entry.expiresAt = time.Now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.sweepLocked()
	}
	if len(c.entries) >= c.maxEntries {
		// Still full after dropping expired entries; skip caching
		// rather than grow without bound.
		return
	}
	c.entries[key] = entry
}

// sweepLocked drops expired entries. Must be called with c.mu held.
func (c *proxyCache) sweepLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
