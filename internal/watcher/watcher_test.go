package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/CageChen/assetindex/internal/config"
	"github.com/fsnotify/fsnotify"
)

func newTestWatcher(t *testing.T, root string) *Watcher {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Locations = []config.Location{
		{Name: "files", Path: root},
		{Name: "themes", Path: filepath.Join(root, "theme")},
		{Name: "repo", Path: root, GitRef: "main"},
	}
	cfg.FileTypes = []string{"pdf"}
	cfg.ImageTypes = []string{"png"}
	cfg.Exclude = []string{"node_modules"}

	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = w.watcher.Close() })
	return w
}

func collect(w *Watcher) *[]Event {
	var events []Event
	w.OnChange(func(e Event) { events = append(events, e) })
	return &events
}

func TestHandleEvent_Filters(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)
	events := collect(w)

	for _, name := range []string{
		"a.png",
		"notes.txt",
		".hidden.png",
		"node_modules/x.png",
		"a/b/c.pdf",
		"a/b/c/d.png",
	} {
		w.handleEvent(fsnotify.Event{Name: filepath.Join(root, filepath.FromSlash(name)), Op: fsnotify.Write})
	}
	w.handleEvent(fsnotify.Event{Name: filepath.Join(root, "old.txt"), Op: fsnotify.Remove})
	w.handleEvent(fsnotify.Event{Name: filepath.Join(root, "gone-dir"), Op: fsnotify.Remove})
	w.handleEvent(fsnotify.Event{Name: filepath.Join(filepath.Dir(root), "elsewhere.png"), Op: fsnotify.Write})

	want := []Event{
		{Type: EventWrite, Location: "files", Path: "a.png"},
		{Type: EventWrite, Location: "files", Path: "a/b/c.pdf"},
		{Type: EventRemove, Location: "files", Path: "gone-dir"},
	}
	if len(*events) != len(want) {
		t.Fatalf("expected %d events, got %d: %+v", len(want), len(*events), *events)
	}
	for i := range want {
		if (*events)[i] != want[i] {
			t.Errorf("event %d: got %+v, want %+v", i, (*events)[i], want[i])
		}
	}
}

func TestHandleEvent_NestedLocationWins(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)
	events := collect(w)

	w.handleEvent(fsnotify.Event{Name: filepath.Join(root, "theme", "logo.png"), Op: fsnotify.Create})

	if len(*events) != 1 {
		t.Fatalf("expected 1 event, got %+v", *events)
	}
	if got := (*events)[0]; got.Location != "themes" || got.Path != "logo.png" || got.Type != EventCreate {
		t.Errorf("unexpected event %+v", got)
	}
}

func TestGitLocationsAreNotWatched(t *testing.T) {
	w := newTestWatcher(t, t.TempDir())
	for _, r := range w.roots {
		if r.name == "repo" {
			t.Error("expected git-backed location to be skipped")
		}
	}
}

func TestWatcher_ReportsNewFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	w := newTestWatcher(t, root)
	got := make(chan Event, 16)
	w.OnChange(func(e Event) { got <- e })
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = w.Stop() }()

	if err := os.WriteFile(filepath.Join(root, "sub", "photo.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case e := <-got:
			if e.Path == "sub/photo.png" && e.Location == "files" {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for change event")
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if EventWrite.String() != "update" || EventRename.String() != "rename" {
		t.Error("unexpected event type names")
	}
}
