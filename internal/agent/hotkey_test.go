package agent

import (
	"errors"
	"testing"

	"golang.design/x/hotkey"
)

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		combo string
		key   hotkey.Key
		mods  int
	}{
		{"ctrl+option+m", hotkey.KeyM, 2},
		{"CMD+Shift+P", hotkey.KeyP, 2},
		{" ctrl+space ", hotkey.KeySpace, 1},
		{"ctrl+ctrl+x", hotkey.KeyX, 1},
		{"shift+cmd+f5", hotkey.KeyF5, 2},
		{"ctrl+enter", hotkey.KeyReturn, 1},
	}
	for _, tt := range tests {
		mods, key, err := parseHotkey(tt.combo)
		if err != nil {
			t.Fatalf("parseHotkey(%q) error: %v", tt.combo, err)
		}
		if key != tt.key {
			t.Errorf("parseHotkey(%q) key = %v, want %v", tt.combo, key, tt.key)
		}
		if len(mods) != tt.mods {
			t.Errorf("parseHotkey(%q) has %d modifiers, want %d", tt.combo, len(mods), tt.mods)
		}
	}
}

func TestParseHotkeyKeepsModifierOrder(t *testing.T) {
	mods, _, err := parseHotkey("ctrl+shift+a")
	if err != nil {
		t.Fatalf("parseHotkey error: %v", err)
	}
	if mods[0] != hotkey.ModCtrl || mods[1] != hotkey.ModShift {
		t.Fatalf("mods = %v, want [ModCtrl ModShift]", mods)
	}
}

func TestParseHotkeyRejectsBadCombos(t *testing.T) {
	for _, combo := range []string{"", "m", "ctrl+banana", "banana+m", "+", "ctrl+"} {
		if _, _, err := parseHotkey(combo); !errors.Is(err, ErrBadHotkey) {
			t.Errorf("parseHotkey(%q) = %v, want ErrBadHotkey", combo, err)
		}
	}
}

func TestFormatHotkey(t *testing.T) {
	tests := []struct {
		combo string
		want  string
	}{
		{"ctrl+option+m", "⌃⌥M"},
		{"option+ctrl+m", "⌃⌥M"}, // canonical symbol order regardless of input
		{"cmd+shift+p", "⇧⌘P"},
		{"ctrl+space", "⌃Space"},
		{"ctrl+enter", "⌃Return"},
		{"shift+f5", "⇧F5"},
		{"m", "m"},
	}
	for _, tt := range tests {
		if got := FormatHotkey(tt.combo); got != tt.want {
			t.Errorf("FormatHotkey(%q) = %q, want %q", tt.combo, got, tt.want)
		}
	}
}
