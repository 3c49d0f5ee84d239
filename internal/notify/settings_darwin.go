//go:build darwin

package notify

import "os/exec"

// accessibilityPane deep-links the Accessibility list inside the system's
// Privacy & Security settings.
const accessibilityPane = "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility"

func openAccessibilitySettings() error {
	return exec.Command("open", accessibilityPane).Start()
}
