package agent

import (
	"errors"
	"fmt"
	"strings"

	"golang.design/x/hotkey"

	"github.com/example/gomenu/internal/keys"
)

// ErrBadHotkey reports a combo string that cannot be parsed.
var ErrBadHotkey = errors.New("agent: invalid hotkey combination")

// hotkeyKeys maps combo key names to registrable keys. The modifier names
// live in per-platform files next to this one.
var hotkeyKeys = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"tab":    hotkey.KeyTab,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"a":      hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

// parseHotkey splits a combo such as "ctrl+option+m" into its registrable
// parts. The last segment is the key, everything before it a modifier; at
// least one modifier is required.
func parseHotkey(combo string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("%w: %q needs a modifier and a key", ErrBadHotkey, combo)
	}

	key, ok := hotkeyKeys[parts[len(parts)-1]]
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown key %q", ErrBadHotkey, parts[len(parts)-1])
	}

	var mods []hotkey.Modifier
	seen := make(map[string]bool)
	for _, name := range parts[:len(parts)-1] {
		if seen[name] {
			continue
		}
		seen[name] = true
		mod, ok := hotkeyMods[name]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown modifier %q", ErrBadHotkey, name)
		}
		mods = append(mods, mod)
	}
	return mods, key, nil
}

// displayMods folds combo modifier names onto the shared symbol set.
var displayMods = map[string]keys.Mod{
	"ctrl":    keys.ModControl,
	"control": keys.ModControl,
	"option":  keys.ModOption,
	"alt":     keys.ModOption,
	"shift":   keys.ModShift,
	"cmd":     keys.ModCommand,
	"command": keys.ModCommand,
}

// keyNames overrides the upper-cased key display for named keys.
var keyNames = map[string]string{
	"space":  "Space",
	"tab":    "Tab",
	"return": "Return",
	"enter":  "Return",
}

// FormatHotkey renders a combo for menus and dialogs: "ctrl+option+m"
// becomes "⌃⌥M". A combo that is not parseable renders as given.
func FormatHotkey(combo string) string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	if len(parts) < 2 {
		return combo
	}
	var mods keys.Mod
	for _, name := range parts[:len(parts)-1] {
		m, ok := displayMods[name]
		if !ok {
			return combo
		}
		mods |= m
	}
	key := parts[len(parts)-1]
	if name, ok := keyNames[key]; ok {
		key = name
	} else {
		key = strings.ToUpper(key)
	}
	return mods.Symbols() + key
}
