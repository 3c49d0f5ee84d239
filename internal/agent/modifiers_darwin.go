//go:build darwin

package agent

import "golang.design/x/hotkey"

// hotkeyMods maps combo modifier names for macOS.
var hotkeyMods = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"option":  hotkey.ModOption,
	"alt":     hotkey.ModOption,
	"cmd":     hotkey.ModCmd,
	"command": hotkey.ModCmd,
}
