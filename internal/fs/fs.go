// Package fs provides filesystem abstractions for reading location roots from local disk or git refs.
package fs

import "time"

// FileInfo holds file metadata.
type FileInfo struct {
	Name    string
	IsDir   bool
	Regular bool
	Size    int64
	ModTime time.Time
}

// DirEntry represents a single directory entry. Size is only meaningful for regular files.
type DirEntry struct {
	Name    string
	IsDir   bool
	Regular bool
	Size    int64
}

// FileSystem abstracts read-only access to a location root so callers can work with either
// the local filesystem or a git object database. Paths are slash separated and relative to
// the root; "" names the root itself.
type FileSystem interface {
	// Root returns the absolute directory this filesystem is bound to.
	Root() string
	ReadFile(path string) ([]byte, error)
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]DirEntry, error)
}
