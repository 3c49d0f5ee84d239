package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestOncefCollapsesRepeats(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	Oncef("test.collapse", "walk: unreadable title under %q", "File")
	Oncef("test.collapse", "walk: unreadable title under %q", "Edit")
	Oncef("test.other", "walk: unreadable children under %q", "View")

	out := buf.String()
	if got := strings.Count(out, "unreadable title"); got != 1 {
		t.Fatalf("repeated key logged %d times, want 1\n%s", got, out)
	}
	if !strings.Contains(out, "unreadable children") {
		t.Fatalf("distinct key suppressed\n%s", out)
	}
	if strings.Contains(out, "Edit") {
		t.Fatalf("second message for the same key leaked through\n%s", out)
	}
}

func TestDebugfGate(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	debugEnabled.Store(false)
	Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("Debugf wrote while disabled: %q", buf.String())
	}

	debugEnabled.Store(true)
	defer debugEnabled.Store(false)
	Debugf("shown %d", 2)
	if !strings.Contains(buf.String(), "[DEBUG] shown 2") {
		t.Fatalf("Debugf output missing: %q", buf.String())
	}
}
