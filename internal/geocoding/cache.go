package geocoding

import (
	"sync"
	"time"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

type cacheEntry struct {
	addr    domain.Address
	expires time.Time
}

// Cache is an in-memory TTL cache of geocoding results. A nil *Cache is a
// valid cache that never hits.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCache returns a cache whose entries live for ttl.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{ttl: ttl, now: now, entries: make(map[string]cacheEntry)}
}

// Get returns a live entry.
func (c *Cache) Get(key string) (domain.Address, bool) {
	if c == nil {
		return domain.Address{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expires) {
		return domain.Address{}, false
	}
	return e.addr, true
}

// Put stores addr under key.
func (c *Cache) Put(key string, addr domain.Address) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{addr: addr, expires: c.now().Add(c.ttl)}
}

// PurgeExpired drops expired entries and returns how many were removed.
func (c *Cache) PurgeExpired() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
