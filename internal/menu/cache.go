package menu

import (
	"context"
	"log"
	"sync"

	"github.com/example/gomenu/internal/ax"
)

// Source resolves application state for the cache. *ax.System implements it
// on darwin; tests substitute fakes.
type Source interface {
	// Frontmost identifies the application currently receiving input focus.
	Frontmost() (ax.AppInfo, error)

	// MenuBar returns the root element of the application's menu bar. The
	// caller owns the returned handle.
	MenuBar(pid int32) (ax.Node, error)
}

// CallFunc runs f on the execution context that owns the accessibility API
// and blocks until f has run or ctx ends. dispatch.Call in production.
type CallFunc func(ctx context.Context, f func()) error

// Snapshot is the item list extracted from one application's menu bar.
type Snapshot struct {
	App   ax.AppInfo
	Items []*Item
}

// Cache holds the most recent snapshot, keyed by the owning process.
// A focus change to a different pid replaces the snapshot wholesale; the
// previous one is released only after the swap, so a consumer still holding
// it keeps working, including performing its items.
type Cache struct {
	source           Source
	call             CallFunc
	includeAppleMenu bool

	mu   sync.Mutex
	snap *Snapshot
}

// NewCache returns an empty cache over source. Traversals and releases run
// through call.
func NewCache(source Source, call CallFunc, includeAppleMenu bool) *Cache {
	return &Cache{source: source, call: call, includeAppleMenu: includeAppleMenu}
}

// ItemsFor returns the snapshot items for app, rebuilding when the cached
// snapshot belongs to a different pid. The returned slice is never mutated
// afterwards; callers may hold it across later rebuilds.
func (c *Cache) ItemsFor(ctx context.Context, app ax.AppInfo) []*Item {
	c.mu.Lock()
	if c.snap != nil && c.snap.App.PID == app.PID {
		items := c.snap.Items
		c.mu.Unlock()
		return items
	}
	c.mu.Unlock()

	items, err := c.rebuild(ctx, app)
	if err != nil {
		// The dispatcher wait was abandoned. Keep the previous snapshot so
		// the next query retries instead of caching a guess.
		return nil
	}

	c.mu.Lock()
	if c.snap != nil && c.snap.App.PID == app.PID {
		// A concurrent query rebuilt for the same pid first; keep theirs.
		cached := c.snap.Items
		c.mu.Unlock()
		releaseItems(items)
		return cached
	}
	old := c.snap
	c.snap = &Snapshot{App: app, Items: items}
	c.mu.Unlock()

	if old != nil {
		releaseItems(old.Items)
	}
	return items
}

// Close releases the current snapshot. The cache is unusable afterwards
// only in the sense that the next ItemsFor rebuilds from scratch.
func (c *Cache) Close() {
	c.mu.Lock()
	old := c.snap
	c.snap = nil
	c.mu.Unlock()

	if old != nil {
		releaseItems(old.Items)
	}
}

// rebuild extracts a fresh item list on the dispatcher thread. When the
// wait is abandoned (ctx ended first) the extraction may still run later;
// it then releases its own result instead of handing it over.
func (c *Cache) rebuild(ctx context.Context, app ax.AppInfo) ([]*Item, error) {
	var (
		mu        sync.Mutex
		built     []*Item
		ran       bool
		abandoned bool
	)
	err := c.call(ctx, func() {
		items := c.extract(ctx, app)
		mu.Lock()
		defer mu.Unlock()
		ran = true
		if abandoned {
			releaseItems(items)
			return
		}
		built = items
	})

	mu.Lock()
	defer mu.Unlock()
	if err != nil && !ran {
		abandoned = true
		log.Printf("menu: rebuild for %q (pid %d) abandoned: %v", app.Name, app.PID, err)
		return nil, err
	}
	return built, nil
}

// extract runs on the dispatcher thread.
func (c *Cache) extract(ctx context.Context, app ax.AppInfo) []*Item {
	root, err := c.source.MenuBar(app.PID)
	if err != nil {
		log.Printf("menu: menu bar of %q (pid %d) unavailable: %v", app.Name, app.PID, err)
		return nil
	}
	defer root.Release()

	kids := root.Children()
	if kids.State == ax.Invalid {
		log.Printf("menu: unreadable top-level menus of %q (pid %d)", app.Name, app.PID)
		return nil
	}
	if !kids.Ok() || len(kids.Value) == 0 {
		return nil
	}

	roots := kids.Value
	if !c.includeAppleMenu && len(roots) > 0 {
		// The leading top-level menu is the one every application shares;
		// skip it unless configured in.
		if roots[0] != nil {
			roots[0].Release()
		}
		roots = roots[1:]
	}
	return Walk(ctx, roots, app.Icon)
}
