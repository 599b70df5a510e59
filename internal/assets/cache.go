package assets

import (
	"sync"
	"time"
)

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// byteCache memoizes resolved asset bytes by reference with a per-entry TTL,
// so a logo shared by every document in a batch is fetched once. Only
// successful resolutions are cached; misses retry on the next render.
type byteCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]cacheEntry
}

func newByteCache(ttl time.Duration) *byteCache {
	return &byteCache{ttl: ttl, items: make(map[string]cacheEntry)}
}

func (c *byteCache) get(ref string) ([]byte, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.items[ref]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.items, ref)
		c.mu.Unlock()
		return nil, false
	}
	return entry.data, true
}

func (c *byteCache) set(ref string, data []byte) {
	if c == nil || c.ttl <= 0 || len(data) == 0 {
		return
	}
	c.mu.Lock()
	c.items[ref] = cacheEntry{data: data, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}
