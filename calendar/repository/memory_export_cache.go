package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryWorkbookCache implements export.WorkbookCache with a map.
// Expired entries are dropped lazily on Get and on every Set.
type MemoryWorkbookCache struct {
	mu      sync.Mutex
	entries map[string]workbookEntry
	now     func() time.Time
}

type workbookEntry struct {
	data     []byte
	expireAt time.Time
}

func NewMemoryWorkbookCache() *MemoryWorkbookCache {
	return &MemoryWorkbookCache{
		entries: make(map[string]workbookEntry),
		now:     time.Now,
	}
}

func (c *MemoryWorkbookCache) Name() string { return "memory" }

func (c *MemoryWorkbookCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	if c.now().After(e.expireAt) {
		delete(c.entries, key)
		return nil, nil
	}
	return append([]byte(nil), e.data...), nil
}

func (c *MemoryWorkbookCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expireAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = workbookEntry{
		data:     append([]byte(nil), data...),
		expireAt: now.Add(ttl),
	}
	return nil
}
