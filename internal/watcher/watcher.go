// Package watcher monitors asset locations and reports changes to listed files via callbacks.
package watcher

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/CageChen/assetindex/internal/config"
	"github.com/CageChen/assetindex/internal/indexer"
	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of file system event
type EventType int

// File system event types.
const (
	EventCreate EventType = iota
	EventWrite
	EventRemove
	EventRename
)

func (t EventType) String() string {
	switch t {
	case EventCreate:
		return "create"
	case EventWrite:
		return "update"
	case EventRemove:
		return "remove"
	case EventRename:
		return "rename"
	}
	return "unknown"
}

// Event represents a change inside a location
type Event struct {
	Type     EventType
	Location string
	// Path is relative to the location root and slash separated.
	Path string
}

// Callback is a function called when file changes occur
type Callback func(Event)

type watchedRoot struct {
	name string
	path string
}

// Watcher monitors the local locations down to the indexer's depth bound. It only
// notifies; listings are always rebuilt from disk by the indexer.
type Watcher struct {
	watcher   *fsnotify.Watcher
	roots     []watchedRoot
	accept    indexer.ExtensionSet
	excluded  func(name string) bool
	maxDepth  int
	callbacks []Callback
	mu        sync.RWMutex
	done      chan struct{}
}

// New creates a watcher for every configured location that is not backed by a git ref
func New(cfg *config.Config) (*Watcher, error) {
	accept, err := indexer.NewExtensionSet(append(slices.Clone(cfg.GetImageTypes()), cfg.GetFileTypes()...)...)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	var roots []watchedRoot
	for _, loc := range cfg.Locations {
		if loc.GitRef != "" {
			continue
		}
		roots = append(roots, watchedRoot{name: loc.Name, path: filepath.Clean(loc.Path)})
	}
	// Longest path first so nested locations win when resolving an event.
	slices.SortFunc(roots, func(a, b watchedRoot) int { return len(b.path) - len(a.path) })

	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = indexer.DefaultMaxDepth
	}

	return &Watcher{
		watcher:  w,
		roots:    roots,
		accept:   accept,
		excluded: cfg.IsExcluded,
		maxDepth: maxDepth,
		done:     make(chan struct{}),
	}, nil
}

// OnChange registers a callback for file change events
func (w *Watcher) OnChange(cb Callback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// Start begins watching all configured locations
func (w *Watcher) Start() error {
	for _, root := range w.roots {
		w.watchTree(root, root.path)
	}

	go w.eventLoop()
	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}

// watchTree adds dir and its subdirectories whose children still fall inside the depth bound
func (w *Watcher) watchTree(root watchedRoot, dir string) {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root.path {
			rel, ok := w.relative(root, path)
			if !ok || w.skipped(rel) || childDepth(rel) >= w.maxDepth {
				return filepath.SkipDir
			}
		}
		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: cannot watch %s: %v", path, err)
		}
		return nil
	})
	if err != nil {
		log.Printf("Warning: failed to walk location %s: %v", root.name, err)
	}
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	root, ok := w.locate(event.Name)
	if !ok {
		return
	}
	rel, ok := w.relative(root, event.Name)
	if !ok || w.skipped(rel) || entryDepth(rel) >= w.maxDepth {
		return
	}

	dir := isDir(event.Name)

	var eventType EventType
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		eventType = EventCreate
		if dir {
			w.watchTree(root, event.Name)
		}
	case event.Op&fsnotify.Write == fsnotify.Write:
		eventType = EventWrite
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		eventType = EventRemove
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		eventType = EventRename
	default:
		return
	}

	// Removed or renamed entries can no longer be inspected and may have been directories.
	gone := eventType == EventRemove || eventType == EventRename
	if !dir && !gone && !w.accept.Match(filepath.Base(event.Name)) {
		return
	}
	if gone && filepath.Ext(event.Name) != "" && !w.accept.Match(filepath.Base(event.Name)) {
		return
	}

	e := Event{
		Type:     eventType,
		Location: root.name,
		Path:     rel,
	}

	w.mu.RLock()
	callbacks := make([]Callback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		cb(e)
	}
}

func (w *Watcher) locate(path string) (watchedRoot, bool) {
	path = filepath.Clean(path)
	for _, root := range w.roots {
		if path == root.path || strings.HasPrefix(path, root.path+string(filepath.Separator)) {
			return root, true
		}
	}
	return watchedRoot{}, false
}

// relative returns path relative to the root in slash form; the root itself is not a valid entry
func (w *Watcher) relative(root watchedRoot, path string) (string, bool) {
	rel, err := filepath.Rel(root.path, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// skipped reports whether any segment of rel is hidden or excluded, mirroring the walker
func (w *Watcher) skipped(rel string) bool {
	for _, segment := range strings.Split(rel, "/") {
		if strings.HasPrefix(segment, ".") || w.excluded(segment) {
			return true
		}
	}
	return false
}

// entryDepth is the walker depth of rel: 0 for the root's direct children.
func entryDepth(rel string) int {
	return strings.Count(rel, "/")
}

// childDepth is the depth of the entries inside directory rel.
func childDepth(rel string) int {
	return entryDepth(rel) + 1
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
