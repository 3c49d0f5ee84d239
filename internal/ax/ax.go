// Package ax wraps the operating system's accessibility query interface.
//
// Everything the rest of the application knows about another process's menu
// tree flows through the Node interface defined here. The darwin
// implementation talks to the macOS accessibility API over cgo; other
// platforms get a stub that reports ErrUnsupported. Attribute reads are
// tri-state values rather than (value, error) pairs because a missing
// attribute is routine tree shape, not a failure.
package ax

import "errors"

// ErrUnsupported is returned by every query on platforms without an
// accessibility backend.
var ErrUnsupported = errors.New("ax: accessibility queries require macOS with cgo enabled")

// ActionPress activates an element the way a mouse click would.
const ActionPress = "AXPress"

// State classifies the outcome of reading a single attribute.
type State uint8

const (
	// Present means the attribute was read and carries a usable value.
	Present State = iota
	// Absent means the element does not expose the attribute. This is
	// ordinary tree shape (a submenu has no shortcut character) and is
	// never logged.
	Absent
	// Invalid means the read failed or produced a value of the wrong type.
	Invalid
)

// Attr is the tri-state result of one attribute read.
type Attr[T any] struct {
	Value T
	State State
}

// Ok reports whether the attribute carries a usable value.
func (a Attr[T]) Ok() bool { return a.State == Present }

// Value wraps a successfully read attribute value.
func Value[T any](v T) Attr[T] { return Attr[T]{Value: v, State: Present} }

// NoValue marks an attribute the element does not expose.
func NoValue[T any]() Attr[T] { return Attr[T]{State: Absent} }

// BadValue marks an attribute whose read failed.
func BadValue[T any]() Attr[T] { return Attr[T]{State: Invalid} }

// Attributes is the bundle of menu-relevant attributes of one element,
// fetched in a single cross-process round trip where the platform supports
// batching. Each field fails independently.
type Attributes struct {
	Enabled  Attr[bool]
	Title    Attr[string]
	CmdChar  Attr[string]
	CmdGlyph Attr[int]
	CmdMods  Attr[int]
}

// Node is an opaque handle to one element of another application's
// accessibility tree. Handles are reference counted by the OS; every Node
// handed out by this package owns one reference, dropped by Release.
type Node interface {
	// Attributes reads the menu-relevant attribute bundle.
	Attributes() Attributes

	// Children returns the element's child elements in on-screen order.
	// The caller takes ownership of every returned handle. A nil entry
	// marks a slot the platform filled with something that is not an
	// element.
	Children() Attr[[]Node]

	// Actions returns the names of the actions the element supports.
	Actions() Attr[[]string]

	// Perform triggers the named action on the element.
	Perform(action string) error

	// Release drops the handle's reference. Call exactly once; the node
	// must not be used afterwards.
	Release()
}

// AppInfo identifies the application a menu snapshot belongs to.
type AppInfo struct {
	PID      int32
	Name     string
	BundleID string

	// Icon is the resolved path of the application's icon file, empty when
	// the bundle does not declare one. Shared by every item extracted from
	// the application.
	Icon string
}
