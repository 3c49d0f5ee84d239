package keys

import "strings"

// Mod is a normalized set of shortcut modifier keys, independent of how the
// platform encoded them.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModOption
	ModControl
	ModCommand
)

// Menu items encode their shortcut modifiers in a compact form: three low
// bits flag Shift, Option and Control, and bit 3 flags that Command is NOT
// part of the shortcut. Command is implied by the bit's absence. The
// inversion is platform behavior and is preserved here, not corrected.
const (
	menuShiftBit     = 1 << 0
	menuOptionBit    = 1 << 1
	menuControlBit   = 1 << 2
	menuNoCommandBit = 1 << 3
)

// Live keyboard events carry device-independent modifier flags in a
// different register, with no inverted bits.
const (
	eventShiftBit   = 1 << 17
	eventControlBit = 1 << 18
	eventOptionBit  = 1 << 19
	eventCommandBit = 1 << 20
)

// FromMenuBits decodes the menu-item modifier encoding.
func FromMenuBits(bits int) Mod {
	var m Mod
	if bits&menuShiftBit != 0 {
		m |= ModShift
	}
	if bits&menuOptionBit != 0 {
		m |= ModOption
	}
	if bits&menuControlBit != 0 {
		m |= ModControl
	}
	if bits&menuNoCommandBit == 0 {
		m |= ModCommand
	}
	return m
}

// FromEventBits decodes the keyboard-event modifier encoding.
func FromEventBits(bits uint64) Mod {
	var m Mod
	if bits&eventShiftBit != 0 {
		m |= ModShift
	}
	if bits&eventControlBit != 0 {
		m |= ModControl
	}
	if bits&eventOptionBit != 0 {
		m |= ModOption
	}
	if bits&eventCommandBit != 0 {
		m |= ModCommand
	}
	return m
}

// Symbols renders the modifier set in the platform's display order:
// Control, Option, Shift, Command.
func (m Mod) Symbols() string {
	var b strings.Builder
	if m&ModControl != 0 {
		b.WriteString("⌃")
	}
	if m&ModOption != 0 {
		b.WriteString("⌥")
	}
	if m&ModShift != 0 {
		b.WriteString("⇧")
	}
	if m&ModCommand != 0 {
		b.WriteString("⌘")
	}
	return b.String()
}

// ShortcutLabel composes the display label for a menu shortcut from its raw
// parts: the shortcut character, the glyph code, and the decoded modifier
// set. A known glyph symbol wins over the character; when neither resolves
// the label is empty regardless of modifiers.
func ShortcutLabel(char string, glyph int, mods Mod) string {
	key := strings.TrimSpace(char)
	if sym, ok := Glyph(glyph); ok {
		key = sym
	}
	if key == "" {
		return ""
	}
	return mods.Symbols() + key
}
