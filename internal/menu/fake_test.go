package menu

import (
	"errors"
	"sync/atomic"

	"github.com/example/gomenu/internal/ax"
)

// fakeNode is a scripted ax.Node. Attribute fields default to absent via
// the tree builders; tests tweak individual fields to model damage.
type fakeNode struct {
	enabled  ax.Attr[bool]
	title    ax.Attr[string]
	cmdChar  ax.Attr[string]
	cmdGlyph ax.Attr[int]
	cmdMods  ax.Attr[int]
	children ax.Attr[[]ax.Node]
	actions  ax.Attr[[]string]

	// onAttributes runs before the attribute bundle is returned, letting a
	// test cancel the traversal at a precise point.
	onAttributes func()

	performErr error
	performs   int32
	releases   int32
}

func (n *fakeNode) Attributes() ax.Attributes {
	if n.onAttributes != nil {
		n.onAttributes()
	}
	return ax.Attributes{
		Enabled:  n.enabled,
		Title:    n.title,
		CmdChar:  n.cmdChar,
		CmdGlyph: n.cmdGlyph,
		CmdMods:  n.cmdMods,
	}
}

func (n *fakeNode) Children() ax.Attr[[]ax.Node] { return n.children }

func (n *fakeNode) Actions() ax.Attr[[]string] { return n.actions }

func (n *fakeNode) Perform(action string) error {
	if atomic.LoadInt32(&n.releases) > 0 {
		return errors.New("perform on released node")
	}
	if action != ax.ActionPress {
		return errors.New("unexpected action " + action)
	}
	atomic.AddInt32(&n.performs, 1)
	return n.performErr
}

func (n *fakeNode) Release() {
	atomic.AddInt32(&n.releases, 1)
}

func (n *fakeNode) releaseCount() int32 {
	return atomic.LoadInt32(&n.releases)
}

func (n *fakeNode) performCount() int32 {
	return atomic.LoadInt32(&n.performs)
}

// tree builds fake nodes and remembers every one for release accounting.
type tree struct {
	nodes []*fakeNode
}

func (tr *tree) add(n *fakeNode) *fakeNode {
	tr.nodes = append(tr.nodes, n)
	return n
}

// leaf is an enabled, titled, pressable item with no shortcut.
func (tr *tree) leaf(title string) *fakeNode {
	return tr.add(&fakeNode{
		enabled:  ax.Value(true),
		title:    ax.Value(title),
		cmdChar:  ax.NoValue[string](),
		cmdGlyph: ax.NoValue[int](),
		cmdMods:  ax.NoValue[int](),
		children: ax.NoValue[[]ax.Node](),
		actions:  ax.Value([]string{ax.ActionPress}),
	})
}

// shortcutLeaf is a leaf carrying the raw shortcut attributes.
func (tr *tree) shortcutLeaf(title, char string, glyph, mods int) *fakeNode {
	n := tr.leaf(title)
	if char != "" {
		n.cmdChar = ax.Value(char)
	}
	if glyph != 0 {
		n.cmdGlyph = ax.Value(glyph)
	}
	n.cmdMods = ax.Value(mods)
	return n
}

// submenu is an enabled, titled container. Containers expose no press
// action, like real menu elements.
func (tr *tree) submenu(title string, kids ...ax.Node) *fakeNode {
	return tr.add(&fakeNode{
		enabled:  ax.Value(true),
		title:    ax.Value(title),
		cmdChar:  ax.NoValue[string](),
		cmdGlyph: ax.NoValue[int](),
		cmdMods:  ax.NoValue[int](),
		children: ax.Value(kids),
		actions:  ax.NoValue[[]string](),
	})
}

// bar is a menu bar root. Only its children matter to the cache.
func (tr *tree) bar(menus ...ax.Node) *fakeNode {
	return tr.add(&fakeNode{
		enabled:  ax.Value(true),
		title:    ax.NoValue[string](),
		cmdChar:  ax.NoValue[string](),
		cmdGlyph: ax.NoValue[int](),
		cmdMods:  ax.NoValue[int](),
		children: ax.Value(menus),
		actions:  ax.NoValue[[]string](),
	})
}
