//go:build darwin && cgo

package agent

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit

#import <AppKit/AppKit.h>

// Accessory policy removes the Dock icon and the app switcher entry.
// Only meaningful once the run loop is up.
static void gm_hide_from_dock(void) {
	if ([NSApp isRunning]) {
		[NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
	}
}
*/
import "C"

// hideFromDock demotes the resident agent to a menu bar only process.
func hideFromDock() {
	C.gm_hide_from_dock()
}
