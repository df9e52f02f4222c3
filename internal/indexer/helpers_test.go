package indexer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/CageChen/assetindex/internal/fs"
)

func write(t *testing.T, root, rel string, size int) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func localRoot(dir string) *Root {
	return &Root{Name: "files", Path: dir, FS: fs.NewLocalFS(dir)}
}

func relPaths(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.RelPath
	}
	return out
}

type recordingThumbs struct {
	calls []string
}

func (r *recordingThumbs) ThumbnailPath(relPath string, width, height int, cropX, cropY, fit string) string {
	r.calls = append(r.calls, fmt.Sprintf("%s|%d|%d|%s|%s|%s", relPath, width, height, cropX, cropY, fit))
	return fmt.Sprintf("/thumb/%s|%d|%d|%s", relPath, width, height, fit)
}

// brokenDirFS fails to list one directory and otherwise delegates.
type brokenDirFS struct {
	fs.FileSystem
	broken string
}

func (b brokenDirFS) ReadDir(path string) ([]fs.DirEntry, error) {
	if path == b.broken {
		return nil, os.ErrPermission
	}
	return b.FileSystem.ReadDir(path)
}

// removeBeforeListFS deletes a file just before dir is listed, after its parent was read.
type removeBeforeListFS struct {
	fs.FileSystem
	dir    string
	remove string
}

func (r removeBeforeListFS) ReadDir(path string) ([]fs.DirEntry, error) {
	if path == r.dir {
		_ = os.Remove(r.remove)
	}
	return r.FileSystem.ReadDir(path)
}

// countingFS records how often the filesystem was touched.
type countingFS struct {
	fs.FileSystem
	calls *int
}

func (c countingFS) Stat(path string) (fs.FileInfo, error) {
	*c.calls++
	return c.FileSystem.Stat(path)
}

func (c countingFS) ReadDir(path string) ([]fs.DirEntry, error) {
	*c.calls++
	return c.FileSystem.ReadDir(path)
}
