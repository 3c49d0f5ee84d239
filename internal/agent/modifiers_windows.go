//go:build windows

package agent

import "golang.design/x/hotkey"

// hotkeyMods maps combo modifier names for Windows.
var hotkeyMods = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"option":  hotkey.ModAlt,
	"alt":     hotkey.ModAlt,
	"cmd":     hotkey.ModWin,
	"command": hotkey.ModWin,
}
