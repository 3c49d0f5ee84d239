//go:build !darwin || !cgo

package ax

// Stub backend used when the binary is built without the macOS
// accessibility frameworks. Every query reports ErrUnsupported so the rest
// of the application degrades to empty results instead of failing.

// Trusted reports whether the process may read other applications'
// accessibility data. Always false without a backend.
func Trusted() bool { return false }

// RequestTrust asks the OS for accessibility access. No-op without a
// backend.
func RequestTrust() bool { return false }

// System is the accessibility backend stub.
type System struct{}

// NewSystem returns the stub backend.
func NewSystem() *System { return &System{} }

// Frontmost identifies the application currently receiving input focus.
func (s *System) Frontmost() (AppInfo, error) { return AppInfo{}, ErrUnsupported }

// AppFor resolves application metadata for an arbitrary pid.
func (s *System) AppFor(pid int32) (AppInfo, error) { return AppInfo{}, ErrUnsupported }

// MenuBar returns the root element of the application's menu bar.
func (s *System) MenuBar(pid int32) (Node, error) { return nil, ErrUnsupported }
