package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/newsproof/newsproof/internal/model"
)

// LayeredCache checks memory first, then disk, promoting disk hits
// into memory.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache builds the standard evidence cache from config.
// An empty dir falls back to ~/.newsproof/cache.
func NewLayeredCache(cfg model.CacheConfig) *LayeredCache {
	dir := cfg.Dir
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".newsproof", "cache")
		} else {
			dir = filepath.Join(os.TempDir(), "newsproof-cache")
		}
	}

	return &LayeredCache{
		memory: NewMemoryCache(cfg.MemoryTTL, 10*time.Minute),
		disk:   NewDiskCache(dir, cfg.DiskTTL),
	}
}

// Get retrieves a value, checking memory before disk
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores a value in both layers
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes a value from both layers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear empties both layers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
