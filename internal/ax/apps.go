package ax

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// appCacheSize bounds how many applications keep resolved metadata around.
// Icon resolution reads the application bundle from disk, so flipping back
// and forth between a handful of apps should not repeat that work.
const appCacheSize = 32

// AppCache memoizes per-pid application metadata.
type AppCache struct {
	entries *lru.Cache[int32, AppInfo]
}

// NewAppCache returns an empty cache. A cache that failed to initialize
// degrades to a pass-through and never blocks lookups.
func NewAppCache() *AppCache {
	entries, err := lru.New[int32, AppInfo](appCacheSize)
	if err != nil {
		return &AppCache{}
	}
	return &AppCache{entries: entries}
}

// Get returns the cached metadata for pid.
func (c *AppCache) Get(pid int32) (AppInfo, bool) {
	if c == nil || c.entries == nil {
		return AppInfo{}, false
	}
	return c.entries.Get(pid)
}

// Put stores metadata under its pid, evicting the least recently used
// application when the cache is full.
func (c *AppCache) Put(info AppInfo) {
	if c == nil || c.entries == nil {
		return
	}
	c.entries.Add(info.PID, info)
}

// Drop forgets one application, used when a pid is reused or its bundle
// moved.
func (c *AppCache) Drop(pid int32) {
	if c == nil || c.entries == nil {
		return
	}
	c.entries.Remove(pid)
}
