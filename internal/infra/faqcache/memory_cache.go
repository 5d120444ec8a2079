package faqcache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache is an in-memory response cache for tests/dev.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryCache constructs a cache backed by process memory.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements faq.ResponseCache. Expired entries are evicted on read.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	record, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.hasExpired(record.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return append([]byte(nil), record.payload...), true, nil
}

// Set stores the payload with optional TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.entries[key] = entry{
		payload:   append([]byte(nil), value...),
		expiresAt: exp,
	}
	return nil
}

// Delete removes the given keys; missing keys are ignored.
func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

// Len reports the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return !ts.After(c.now())
}

var _ faq.ResponseCache = (*MemoryCache)(nil)
