package keys

import "testing"

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
		ok   bool
	}{
		{name: "command", code: 0x11, want: "⌘", ok: true},
		{name: "escape", code: 0x1B, want: "⎋", ok: true},
		{name: "delete left", code: 0x17, want: "⌫", ok: true},
		{name: "page down", code: 0x6B, want: "⇟", ok: true},
		{name: "first function key", code: 0x6F, want: "F1", ok: true},
		{name: "last function key", code: 0x92, want: "F19", ok: true},
		{name: "eject", code: 0x8C, want: "⏏", ok: true},
		{name: "null glyph", code: 0x00, want: "", ok: false},
		{name: "gap in range", code: 0x8B, want: "", ok: false},
		{name: "out of range", code: 0x1000, want: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Glyph(tt.code)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("Glyph(%#x) = %q, %v; want %q, %v", tt.code, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFromMenuBits(t *testing.T) {
	tests := []struct {
		name string
		bits int
		want Mod
	}{
		// Bit 3 flags the ABSENCE of Command, so zero means Command alone.
		{name: "zero implies command", bits: 0, want: ModCommand},
		{name: "shift keeps command", bits: menuShiftBit, want: ModShift | ModCommand},
		{name: "no command alone", bits: menuNoCommandBit, want: 0},
		{name: "control without command", bits: menuControlBit | menuNoCommandBit, want: ModControl},
		{name: "all three with command", bits: menuShiftBit | menuOptionBit | menuControlBit, want: ModShift | ModOption | ModControl | ModCommand},
		{name: "all three without command", bits: menuShiftBit | menuOptionBit | menuControlBit | menuNoCommandBit, want: ModShift | ModOption | ModControl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromMenuBits(tt.bits); got != tt.want {
				t.Fatalf("FromMenuBits(%#b) = %v, want %v", tt.bits, got, tt.want)
			}
		})
	}
}

func TestFromEventBits(t *testing.T) {
	tests := []struct {
		name string
		bits uint64
		want Mod
	}{
		{name: "none", bits: 0, want: 0},
		{name: "command", bits: eventCommandBit, want: ModCommand},
		{name: "shift option", bits: eventShiftBit | eventOptionBit, want: ModShift | ModOption},
		{name: "all four", bits: eventShiftBit | eventControlBit | eventOptionBit | eventCommandBit, want: ModShift | ModOption | ModControl | ModCommand},
		{name: "unrelated bits ignored", bits: 1<<16 | 1<<23, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromEventBits(tt.bits); got != tt.want {
				t.Fatalf("FromEventBits(%#x) = %v, want %v", tt.bits, got, tt.want)
			}
		})
	}
}

// The two encodings agree once normalized: the same physical chord decodes
// to the same Mod set from either source.
func TestEncodingsAgree(t *testing.T) {
	tests := []struct {
		name      string
		menuBits  int
		eventBits uint64
	}{
		{name: "command", menuBits: 0, eventBits: eventCommandBit},
		{name: "shift command", menuBits: menuShiftBit, eventBits: eventShiftBit | eventCommandBit},
		{name: "control option", menuBits: menuControlBit | menuOptionBit | menuNoCommandBit, eventBits: eventControlBit | eventOptionBit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := FromMenuBits(tt.menuBits)
			event := FromEventBits(tt.eventBits)
			if menu != event {
				t.Fatalf("menu encoding %v != event encoding %v", menu, event)
			}
		})
	}
}

func TestSymbolsOrder(t *testing.T) {
	all := ModShift | ModOption | ModControl | ModCommand
	if got := all.Symbols(); got != "⌃⌥⇧⌘" {
		t.Fatalf("Symbols() = %q, want %q", got, "⌃⌥⇧⌘")
	}
	if got := (ModShift | ModCommand).Symbols(); got != "⇧⌘" {
		t.Fatalf("Symbols() = %q, want %q", got, "⇧⌘")
	}
	if got := Mod(0).Symbols(); got != "" {
		t.Fatalf("Symbols() = %q, want empty", got)
	}
}

func TestShortcutLabel(t *testing.T) {
	tests := []struct {
		name  string
		char  string
		glyph int
		mods  Mod
		want  string
	}{
		{name: "plain character", char: "N", glyph: 0, mods: ModCommand, want: "⌘N"},
		{name: "glyph wins over character", char: "N", glyph: 0x6F, mods: ModCommand, want: "⌘F1"},
		{name: "unknown glyph falls back to character", char: "S", glyph: 0x1000, mods: ModShift | ModCommand, want: "⇧⌘S"},
		{name: "whitespace character is no key", char: " ", glyph: 0, mods: ModCommand, want: ""},
		{name: "no key no label", char: "", glyph: 0, mods: ModShift | ModOption | ModCommand, want: ""},
		{name: "glyph without character", char: "", glyph: 0x1B, mods: ModCommand, want: "⌘⎋"},
		{name: "no modifiers", char: "", glyph: 0x8C, mods: 0, want: "⏏"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortcutLabel(tt.char, tt.glyph, tt.mods); got != tt.want {
				t.Fatalf("ShortcutLabel(%q, %#x, %v) = %q, want %q", tt.char, tt.glyph, tt.mods, got, tt.want)
			}
		})
	}
}
