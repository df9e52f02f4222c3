package fs

import (
	"errors"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// LocalFS implements FileSystem on the local disk. All paths are resolved inside the root;
// ".." components and symlinks pointing outside the root are scoped back into it.
type LocalFS struct {
	root string
	fs   billy.Filesystem
}

// NewLocalFS creates a LocalFS bound to the given directory.
func NewLocalFS(root string) *LocalFS {
	return &LocalFS{
		root: root,
		fs:   osfs.New(root, osfs.WithBoundOS()),
	}
}

// Root returns the directory the filesystem is bound to.
func (l *LocalFS) Root() string {
	return l.root
}

func rel(path string) string {
	if path == "" || path == "." {
		return ""
	}
	return filepath.FromSlash(path)
}

// ReadFile reads the contents of the file at the given path relative to the root.
func (l *LocalFS) ReadFile(path string) ([]byte, error) {
	return util.ReadFile(l.fs, rel(path))
}

// Stat returns metadata for the file or directory at the given path relative to the root.
// Symlinks are not followed.
func (l *LocalFS) Stat(path string) (FileInfo, error) {
	var (
		info os.FileInfo
		err  error
	)
	if p := rel(path); p == "" {
		// The configured root itself may be a symlink.
		info, err = os.Stat(l.root)
	} else {
		info, err = l.fs.Lstat(p)
	}
	if err != nil {
		return FileInfo{}, err
	}
	return fileInfo(info), nil
}

// ReadDir lists the immediate children of the directory at the given path relative to the root.
// Children removed between reading the directory and inspecting them are left out.
func (l *LocalFS) ReadDir(path string) ([]DirEntry, error) {
	dir, err := securejoin.SecureJoin(l.root, rel(path))
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return dirEntries(entries)
}

func dirEntries(entries []os.DirEntry) ([]DirEntry, error) {
	result := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, DirEntry{
			Name:    info.Name(),
			IsDir:   info.IsDir(),
			Regular: info.Mode().IsRegular(),
			Size:    info.Size(),
		})
	}
	return result, nil
}

func fileInfo(info os.FileInfo) FileInfo {
	return FileInfo{
		Name:    info.Name(),
		IsDir:   info.IsDir(),
		Regular: info.Mode().IsRegular(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
