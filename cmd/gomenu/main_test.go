package main

import "testing"

func TestParseGlobalFlagsExtractsDebug(t *testing.T) {
	args := []string{"search", "--debug", "save", "as"}
	filtered, debug, err := parseGlobalFlags(args)
	if err != nil {
		t.Fatalf("parseGlobalFlags returned error: %v", err)
	}
	if !debug {
		t.Fatalf("expected debug flag to be enabled")
	}
	want := []string{"search", "save", "as"}
	if len(filtered) != len(want) {
		t.Fatalf("unexpected filtered args: %#v", filtered)
	}
	for i, w := range want {
		if filtered[i] != w {
			t.Fatalf("unexpected filtered args: %#v", filtered)
		}
	}
}

func TestParseGlobalFlagsKeepsPositionalDebugWord(t *testing.T) {
	// A bare query word must never be mistaken for a flag.
	filtered, debug, err := parseGlobalFlags([]string{"search", "debug"})
	if err != nil {
		t.Fatalf("parseGlobalFlags returned error: %v", err)
	}
	if debug {
		t.Fatalf("debug flag should not be set")
	}
	if len(filtered) != 2 || filtered[1] != "debug" {
		t.Fatalf("unexpected filtered args: %#v", filtered)
	}
}

func TestParseGlobalFlagsHandlesExplicitValue(t *testing.T) {
	_, debug, err := parseGlobalFlags([]string{"-debug=false", "list"})
	if err != nil {
		t.Fatalf("parseGlobalFlags returned error: %v", err)
	}
	if debug {
		t.Fatalf("debug flag should respect an explicit false")
	}

	if _, _, err := parseGlobalFlags([]string{"-debug=banana"}); err == nil {
		t.Fatalf("expected an error for a malformed value")
	}
}

func TestNormalizeCommand(t *testing.T) {
	tests := map[string]string{
		"list":    "list",
		"--List":  "list",
		"/SEARCH": "search",
		"-agent":  "agent",
	}
	for arg, want := range tests {
		if got := normalizeCommand(arg); got != want {
			t.Errorf("normalizeCommand(%q) = %q, want %q", arg, got, want)
		}
	}
}
