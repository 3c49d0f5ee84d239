package menu

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/example/gomenu/internal/ax"
)

func TestItemAccessors(t *testing.T) {
	tr := &tree{}
	node := tr.leaf("New Window")
	it := newItem([]string{"File", "New Window"}, "⇧⌘N", "/icons/demo.icns", node)

	if it.ID() != "File>New Window" {
		t.Errorf("ID = %q", it.ID())
	}
	if it.Text() != "New Window" {
		t.Errorf("Text = %q", it.Text())
	}
	if it.Subtext() != "File > New Window" {
		t.Errorf("Subtext = %q", it.Subtext())
	}
	if it.Shortcut() != "⇧⌘N" || it.Icon() != "/icons/demo.icns" {
		t.Errorf("Shortcut/Icon = %q / %q", it.Shortcut(), it.Icon())
	}

	// Path returns a copy; mutating it does not corrupt the item.
	p := it.Path()
	p[0] = "Mangled"
	if it.Subtext() != "File > New Window" {
		t.Errorf("Subtext after mutating Path copy = %q", it.Subtext())
	}
	it.release()
}

func TestItemPerformDispatchFailure(t *testing.T) {
	tr := &tree{}
	node := tr.leaf("Save")
	it := newItem([]string{"File", "Save"}, "", "", node)

	dispatchErr := errors.New("dispatcher gone")
	failCall := func(ctx context.Context, f func()) error { return dispatchErr }

	err := it.Perform(context.Background(), failCall)
	if !errors.Is(err, dispatchErr) {
		t.Fatalf("Perform error = %v, want wrapped %v", err, dispatchErr)
	}
	if node.performCount() != 0 {
		t.Fatalf("press ran despite dispatch failure")
	}

	// The transient reference was returned; the item still works.
	if err := it.Perform(context.Background(), syncCall); err != nil {
		t.Fatalf("Perform after dispatch failure: %v", err)
	}
	it.release()
	if node.releaseCount() != 1 {
		t.Fatalf("node released %d times, want 1", node.releaseCount())
	}
}

func TestItemPerformSurfacesActionError(t *testing.T) {
	tr := &tree{}
	node := tr.leaf("Print…")
	node.performErr = errors.New("cannot complete (-25204)")
	it := newItem([]string{"File", "Print…"}, "", "", node)

	err := it.Perform(context.Background(), syncCall)
	if err == nil || !strings.Contains(err.Error(), "cannot complete") {
		t.Fatalf("Perform error = %v, want the action failure", err)
	}
	it.release()
}

func TestItemConcurrentPerformSingleRelease(t *testing.T) {
	tr := &tree{}
	node := tr.leaf("Close Tab")
	it := newItem([]string{"File", "Close Tab"}, "", "", node)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = it.Perform(context.Background(), syncCall)
		}()
	}
	wg.Wait()
	it.release()

	if node.releaseCount() != 1 {
		t.Fatalf("node released %d times, want exactly 1", node.releaseCount())
	}
	if node.performCount() != 8 {
		t.Fatalf("press ran %d times, want 8", node.performCount())
	}
}
