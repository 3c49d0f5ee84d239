//go:build linux

package agent

import "golang.design/x/hotkey"

// hotkeyMods maps combo modifier names for X11.
var hotkeyMods = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"option":  hotkey.Mod1, // Alt is Mod1 on X11
	"alt":     hotkey.Mod1,
	"cmd":     hotkey.Mod4, // Super is Mod4 on X11
	"command": hotkey.Mod4,
}
