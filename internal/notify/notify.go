// Package notify covers the two ways the application talks to the user
// outside a search session: desktop toasts and the accessibility
// permission dialog.
package notify

import (
	"github.com/gen2brain/beeep"
	"github.com/ncruces/zenity"

	"github.com/example/gomenu/internal/logging"
)

const appName = "GoMenu"

// Notifier emits desktop notifications. A disabled notifier drops
// everything silently.
type Notifier struct {
	enabled bool
}

// New creates a Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// SetEnabled switches notifications on or off.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// ActionFailed reports that a chosen menu entry could not be pressed.
func (n *Notifier) ActionFailed(title string, err error) {
	msg := err.Error()
	if len(msg) > 120 {
		msg = msg[:120] + "…"
	}
	n.notify("Could not run "+title, msg)
}

// NoMenus reports that the frontmost application exposed nothing to run.
func (n *Notifier) NoMenus(app string) {
	n.notify("No menu items", app+" does not expose any enabled menu items.")
}

// PermissionNeeded reminds the user that accessibility access is missing.
func (n *Notifier) PermissionNeeded() {
	n.notify("Permission required", "Grant accessibility access to search application menus.")
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	// Notification delivery is best effort.
	if err := beeep.Notify(appName+": "+title, message, ""); err != nil {
		logging.Debugf("notify: %v", err)
	}
}

// OpenSettings opens the system's accessibility privacy pane.
func OpenSettings() error {
	return openAccessibilitySettings()
}

// PermissionPrompt explains the missing accessibility permission and offers
// to open the system's privacy settings. Blocks until the user answers.
func PermissionPrompt() {
	err := zenity.Question(
		"GoMenu reads application menus through accessibility.\n\n"+
			"Grant access under Privacy & Security > Accessibility, then search again.",
		zenity.Title(appName+": permission required"),
		zenity.OKLabel("Open System Settings"),
		zenity.CancelLabel("Later"),
	)
	if err != nil {
		// Declined, or no dialog backend on this system.
		return
	}
	if err := openAccessibilitySettings(); err != nil {
		logging.Debugf("notify: open settings: %v", err)
	}
}
