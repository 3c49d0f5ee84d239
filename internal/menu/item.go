// Package menu extracts actionable entries from an application's menu tree
// and keeps the most recent extraction cached per application.
package menu

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/example/gomenu/internal/ax"
)

// pathSeparator joins breadcrumb segments for display.
const pathSeparator = " > "

// Item is one actionable entry extracted from a menu tree. It owns exactly
// one retained reference to its accessibility node, dropped when the owning
// snapshot is replaced and any in-flight action has finished.
type Item struct {
	path     []string
	shortcut string
	icon     string

	node ax.Node
	refs atomic.Int32
}

func newItem(path []string, shortcut, icon string, node ax.Node) *Item {
	it := &Item{
		path:     append([]string(nil), path...),
		shortcut: shortcut,
		icon:     icon,
		node:     node,
	}
	it.refs.Store(1)
	return it
}

// ID returns the entry's stable identity, the full breadcrumb path. Two
// applications may produce the same ID for equivalent entries; identity is
// only meaningful within one snapshot.
func (it *Item) ID() string {
	return strings.Join(it.path, ">")
}

// Text returns the display title: the deepest resolved menu title on the
// entry's path.
func (it *Item) Text() string {
	if len(it.path) == 0 {
		return ""
	}
	return it.path[len(it.path)-1]
}

// Subtext returns the breadcrumb from the top-level menu to the entry.
func (it *Item) Subtext() string {
	return strings.Join(it.path, pathSeparator)
}

// Path returns a copy of the menu titles from the top-level menu down to
// the entry.
func (it *Item) Path() []string {
	return append([]string(nil), it.path...)
}

// Shortcut returns the composed keyboard shortcut label, empty when the
// entry has none.
func (it *Item) Shortcut() string {
	return it.shortcut
}

// Icon returns the icon reference of the owning application.
func (it *Item) Icon() string {
	return it.icon
}

// Perform triggers the entry's press action on the dispatcher thread. The
// item stays alive for the duration even if its snapshot is replaced
// mid-action. Failure never affects the search flow; it is logged and
// returned for the caller's notification decision.
func (it *Item) Perform(ctx context.Context, call CallFunc) error {
	if !it.acquire() {
		return fmt.Errorf("menu: %q released before the action ran", it.Text())
	}
	defer it.release()

	var perr error
	if err := call(ctx, func() {
		perr = it.node.Perform(ax.ActionPress)
	}); err != nil {
		return fmt.Errorf("menu: press %q not dispatched: %w", it.ID(), err)
	}
	if perr != nil {
		log.Printf("menu: press on %q failed: %v", it.ID(), perr)
		return perr
	}
	return nil
}

// acquire takes a transient reference for the duration of an action. It
// fails once the item has been fully released.
func (it *Item) acquire() bool {
	for {
		n := it.refs.Load()
		if n <= 0 {
			return false
		}
		if it.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release drops one reference and releases the node handle with the last
// one.
func (it *Item) release() {
	if it.refs.Add(-1) > 0 {
		return
	}
	if it.node != nil {
		it.node.Release()
	}
}

func releaseItems(items []*Item) {
	for _, it := range items {
		it.release()
	}
}
