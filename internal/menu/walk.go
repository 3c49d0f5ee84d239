package menu

import (
	"context"
	"strings"

	"github.com/example/gomenu/internal/ax"
	"github.com/example/gomenu/internal/keys"
	"github.com/example/gomenu/internal/logging"
)

// Walk traverses menu trees depth first and returns the enabled, pressable
// leaf entries in pre-order, which matches the on-screen left-to-right,
// top-to-bottom menu layout.
//
// Walk never fails. Every attribute problem is scoped to its element or
// subtree, logged at most once per top-level menu, and skipped. Cancelling
// ctx stops the traversal promptly; entries collected so far are returned
// and stay valid.
//
// Walk takes ownership of every node in roots and every node reachable
// from them: each handle either ends up inside a returned Item or is
// released before Walk returns.
func Walk(ctx context.Context, roots []ax.Node, icon string) []*Item {
	w := &walker{ctx: ctx, icon: icon}
	w.visitAll(roots, nil)
	return w.items
}

type walker struct {
	ctx   context.Context
	icon  string
	items []*Item
}

// visitAll walks one children list. A nil entry means the platform put
// something that is not an element in the slot; that aborts the rest of
// the list, not the traversal.
func (w *walker) visitAll(kids []ax.Node, path []string) {
	for i, kid := range kids {
		if w.ctx.Err() != nil {
			releaseNodes(kids[i:])
			return
		}
		if kid == nil {
			logging.Oncef("walk.badchild."+top(path), "walk: non-element child under %q", joinPath(path))
			releaseNodes(kids[i:])
			return
		}
		w.visit(kid, path)
	}
}

// visit handles one owned node. The node is released here unless it is
// emitted as an Item, which then owns it.
func (w *walker) visit(node ax.Node, path []string) {
	emitted := false
	defer func() {
		if !emitted {
			node.Release()
		}
	}()

	if w.ctx.Err() != nil {
		return
	}

	attrs := node.Attributes()

	// An unreadable or false enabled flag abandons the whole subtree.
	if attrs.Enabled.State == ax.Invalid {
		logging.Oncef("walk.enabled."+top(path), "walk: unreadable enabled flag under %q", joinPath(path))
		return
	}
	if !attrs.Enabled.Ok() || !attrs.Enabled.Value {
		return
	}

	switch attrs.Title.State {
	case ax.Present:
		// Empty and whitespace titles (separators, icon-only items) add no
		// path segment but their subtrees still count.
		if t := strings.TrimSpace(attrs.Title.Value); t != "" {
			// Capped so sibling branches never share backing storage.
			path = append(path[:len(path):len(path)], t)
		}
	case ax.Invalid:
		logging.Oncef("walk.title."+top(path), "walk: unreadable title under %q", joinPath(path))
	}

	kids := node.Children()
	if kids.State == ax.Invalid {
		logging.Oncef("walk.children."+top(path), "walk: unreadable children under %q", joinPath(path))
		return
	}
	if kids.Ok() && len(kids.Value) > 0 {
		w.visitAll(kids.Value, path)
		return
	}

	actions := node.Actions()
	if actions.State == ax.Invalid {
		logging.Oncef("walk.actions."+top(path), "walk: unreadable action list under %q", joinPath(path))
		return
	}
	if !actions.Ok() || !hasPress(actions.Value) {
		return
	}
	if len(path) == 0 {
		// Pressable but untitled all the way up; nothing to show or match.
		return
	}

	w.items = append(w.items, newItem(path, shortcutLabel(attrs), w.icon, node))
	emitted = true
}

func hasPress(actions []string) bool {
	for _, a := range actions {
		if a == ax.ActionPress {
			return true
		}
	}
	return false
}

// shortcutLabel composes the display shortcut from the raw attributes.
// Unreadable modifiers suppress the shortcut entirely; showing a wrong
// chord is worse than showing none.
func shortcutLabel(attrs ax.Attributes) string {
	if attrs.CmdMods.State == ax.Invalid {
		return ""
	}
	var (
		char  string
		glyph int
		bits  int
	)
	if attrs.CmdChar.Ok() {
		char = attrs.CmdChar.Value
	}
	if attrs.CmdGlyph.Ok() {
		glyph = attrs.CmdGlyph.Value
	}
	if attrs.CmdMods.Ok() {
		bits = attrs.CmdMods.Value
	}
	return keys.ShortcutLabel(char, glyph, keys.FromMenuBits(bits))
}

func releaseNodes(nodes []ax.Node) {
	for _, n := range nodes {
		if n != nil {
			n.Release()
		}
	}
}

func joinPath(path []string) string {
	if len(path) == 0 {
		return "menu bar"
	}
	return strings.Join(path, pathSeparator)
}

func top(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return path[0]
}
