package indexer

import (
	"context"
	"iter"
	"log"
	"path/filepath"
	"slices"
	"strings"

	"github.com/CageChen/assetindex/internal/config"
	"github.com/CageChen/assetindex/internal/fs"
)

// DefaultMaxDepth limits traversal to the root's children and two levels of subdirectories.
const DefaultMaxDepth = 3

// FileEntry is a regular file found during a walk.
type FileEntry struct {
	// RelPath is relative to the root and slash separated.
	RelPath string
	AbsPath string
	Size    int64
	// Depth is 0 for the root's direct children.
	Depth int
}

// Walker performs bounded-depth traversals. The zero value is ready to use; a Walker
// holds no traversal state and may be shared between goroutines.
type Walker struct {
	// Exclude holds glob patterns matched against entry names; matches are neither
	// yielded nor descended into.
	Exclude []string
}

// Entries returns a lazy sequence of the regular files under root whose depth is less
// than maxDepth, in byte-wise lexical order of their relative paths. Every iteration
// re-reads the filesystem. Hidden and excluded entries are skipped.
//
// If the root cannot be listed the sequence yields a single *WalkError. Failures below
// the root are logged and the affected entry is skipped. Cancelling ctx stops the walk
// with ctx.Err().
func (w *Walker) Entries(ctx context.Context, root *Root, maxDepth int) iter.Seq2[FileEntry, error] {
	return func(yield func(FileEntry, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(FileEntry{}, err)
			return
		}
		children, err := root.FS.ReadDir("")
		if err != nil {
			yield(FileEntry{}, &WalkError{Path: root.Path, Err: err})
			return
		}
		w.walkDir(ctx, root, "", 0, maxDepth, children, yield)
	}
}

// Walk materializes Entries. On error no entries are returned.
func (w *Walker) Walk(ctx context.Context, root *Root, maxDepth int) ([]FileEntry, error) {
	var entries []FileEntry
	for e, err := range w.Entries(ctx, root, maxDepth) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (w *Walker) walkDir(
	ctx context.Context, root *Root, dir string, depth, maxDepth int, children []fs.DirEntry,
	yield func(FileEntry, error) bool,
) bool {
	if depth >= maxDepth {
		return true
	}

	// A directory's contents all share the prefix "name/", so ordering directories by
	// that key keeps the flattened output in lexical path order.
	slices.SortFunc(children, func(a, b fs.DirEntry) int {
		return strings.Compare(sortKey(a), sortKey(b))
	})

	for _, child := range children {
		if err := ctx.Err(); err != nil {
			yield(FileEntry{}, err)
			return false
		}
		if w.skip(child.Name) {
			continue
		}

		relPath := child.Name
		if dir != "" {
			relPath = dir + "/" + child.Name
		}

		if child.IsDir {
			if depth+1 >= maxDepth {
				continue
			}
			sub, err := root.FS.ReadDir(relPath)
			if err != nil {
				log.Printf("indexer: skipping directory %s in %s: %v", relPath, root.Name, err)
				continue
			}
			if !w.walkDir(ctx, root, relPath, depth+1, maxDepth, sub, yield) {
				return false
			}
			continue
		}

		if !child.Regular {
			continue
		}

		entry := FileEntry{
			RelPath: relPath,
			AbsPath: filepath.Join(root.Path, filepath.FromSlash(relPath)),
			Size:    child.Size,
			Depth:   depth,
		}
		if !yield(entry, nil) {
			return false
		}
	}
	return true
}

func (w *Walker) skip(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return config.MatchesExclude(w.Exclude, name)
}

func sortKey(e fs.DirEntry) string {
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}
