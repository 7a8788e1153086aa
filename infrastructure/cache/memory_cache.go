package cache

import (
	"context"
	"time"

	"flickr-embed/domain/model"

	gocache "github.com/patrickmn/go-cache"
)

type memoryEntry struct {
	value    []byte
	deadline time.Time
}

// MemoryPhotoCache is an in-process cache. go-cache's janitor evicts stale
// entries; reads check the deadline against the injected clock and never
// delete, so a concurrent Set is not lost.
type MemoryPhotoCache struct {
	store *gocache.Cache
	now   func() time.Time
}

// NewMemoryPhotoCache creates an in-process cache. now may be nil.
func NewMemoryPhotoCache(cleanupInterval time.Duration, now func() time.Time) *MemoryPhotoCache {
	if now == nil {
		now = time.Now
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	return &MemoryPhotoCache{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
		now:   now,
	}
}

func (c *MemoryPhotoCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, nil
	}
	entry := v.(memoryEntry)
	if !c.now().Before(entry.deadline) {
		return nil, nil
	}
	return entry.value, nil
}

func (c *MemoryPhotoCache) Set(_ context.Context, key string, value []byte, expiry model.Expiry) error {
	now := c.now()
	remaining := expiry.Remaining(now)
	if remaining <= 0 {
		return model.ErrEntryExpired
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	c.store.Set(key, memoryEntry{value: stored, deadline: expiry.Deadline(now)}, remaining)
	return nil
}

func (c *MemoryPhotoCache) Ping(context.Context) error {
	return nil
}

// ItemCount returns the number of stored entries, including ones not yet
// evicted.
func (c *MemoryPhotoCache) ItemCount() int {
	return c.store.ItemCount()
}
