package thumbs

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"

	"photo-bridge/internal/logging"
)

// DefaultMemoryEntries is the memory cache capacity used when none is
// configured.
const DefaultMemoryEntries = 200

// MemoryCache is a bounded LRU cache of decoded thumbnails. Get promotes
// the entry to most-recently-used; Put evicts least-recently-used entries
// once the capacity is exceeded. Safe for concurrent use.
type MemoryCache struct {
	cache *lru.Cache[string, image.Image]
}

// NewMemoryCache creates a memory cache holding at most capacity entries.
// Non-positive capacities fall back to DefaultMemoryEntries.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = DefaultMemoryEntries
	}
	cache, err := lru.New[string, image.Image](capacity)
	if err != nil {
		// lru.New only fails on non-positive sizes, which we just excluded
		logging.Fatal("MemoryCache: %v", err)
	}
	return &MemoryCache{cache: cache}
}

// Get returns the cached thumbnail for key and marks it most-recently-used.
func (c *MemoryCache) Get(key string) (image.Image, bool) {
	return c.cache.Get(key)
}

// Put inserts or overwrites the thumbnail for key as most-recently-used,
// evicting the least-recently-used entries beyond capacity.
func (c *MemoryCache) Put(key string, img image.Image) {
	c.cache.Add(key, img)
}

// Clear drops every cached entry.
func (c *MemoryCache) Clear() {
	c.cache.Purge()
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int {
	return c.cache.Len()
}
