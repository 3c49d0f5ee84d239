package agent

import (
	_ "embed"
)

// iconPNG is the status item glyph. On darwin it doubles as the template
// image so it follows the menu bar appearance.
//
//go:embed icon.png
var iconPNG []byte

// trayIcon returns the glyph in the container the platform's tray
// implementation expects.
func trayIcon() []byte {
	return platformIcon(iconPNG)
}
