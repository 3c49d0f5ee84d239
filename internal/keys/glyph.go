// Package keys translates the raw shortcut data carried by menu elements,
// glyph codes and modifier bitmasks, into the display form macOS users
// expect (for example ⇧⌘N).
package keys

// glyphSymbols maps the classic Menus.h glyph codes to display symbols.
// Menu items carry these codes when the shortcut key has no useful
// character representation (arrows, function keys, escape). The range is
// sparse; unlisted codes fall back to the item's shortcut character.
var glyphSymbols = map[int]string{
	0x02: "⇥", // tab right
	0x03: "⇤", // tab left
	0x04: "⌤", // enter
	0x05: "⇧", // shift
	0x06: "⌃", // control
	0x07: "⌥", // option
	0x09: "␣", // space
	0x0A: "⌦", // delete right
	0x0B: "↩", // return
	0x0C: "↩", // return, right to left
	0x0D: "↩", // nonmarking return
	0x0F: "✎", // pencil
	0x10: "⇣", // dashed down arrow
	0x11: "⌘", // command
	0x12: "✓", // checkmark
	0x13: "◇", // diamond
	0x14: "", // apple logo, filled
	0x15: "¶", // paragraph
	0x17: "⌫", // delete left
	0x18: "⇠", // dashed left arrow
	0x19: "⇡", // dashed up arrow
	0x1A: "⇢", // dashed right arrow
	0x1B: "⎋", // escape
	0x1C: "⌧", // clear
	0x1D: "『", // left double quotes, japanese
	0x1E: "』", // right double quotes, japanese
	0x1F: "™", // trademark, japanese
	0x61: "␢", // blank
	0x62: "⇞", // page up
	0x63: "⇪", // caps lock
	0x64: "←", // left arrow
	0x65: "→", // right arrow
	0x66: "↖", // northwest arrow
	0x67: "?", // help
	0x68: "↑", // up arrow
	0x69: "↘", // southeast arrow
	0x6A: "↓", // down arrow
	0x6B: "⇟", // page down
	0x6C: "", // apple logo, outline
	0x6D: "▤", // contextual menu
	0x6E: "⏻", // power
	0x6F: "F1",
	0x70: "F2",
	0x71: "F3",
	0x72: "F4",
	0x73: "F5",
	0x74: "F6",
	0x75: "F7",
	0x76: "F8",
	0x77: "F9",
	0x78: "F10",
	0x79: "F11",
	0x7A: "F12",
	0x87: "F13",
	0x88: "F14",
	0x89: "F15",
	0x8A: "⌃", // control, ISO layout
	0x8C: "⏏", // eject
	0x8D: "英数", // eisu
	0x8E: "かな", // kana
	0x8F: "F16",
	0x90: "F17",
	0x91: "F18",
	0x92: "F19",
}

// Glyph translates a shortcut glyph code to its display symbol. The second
// return is false for codes outside the known set, including zero, which
// menu items carry when no glyph applies.
func Glyph(code int) (string, bool) {
	s, ok := glyphSymbols[code]
	return s, ok
}
