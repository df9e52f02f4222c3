package indexer

import (
	"fmt"

	"github.com/CageChen/assetindex/internal/config"
	"github.com/CageChen/assetindex/internal/fs"
)

// Root is a resolved location: an existing directory and the filesystem bound to it.
type Root struct {
	Name string
	Path string
	FS   fs.FileSystem
}

// LocationLookup is the configuration lookup a Resolver needs.
type LocationLookup interface {
	GetPath(name string) (config.Location, bool)
}

// Opener returns the filesystem for a configured location.
type Opener func(loc config.Location) fs.FileSystem

// OpenLocation returns a git-backed filesystem for locations with a git ref and a
// sandboxed local filesystem otherwise.
func OpenLocation(loc config.Location) fs.FileSystem {
	if loc.GitRef != "" {
		return fs.NewGitFS(loc.Path, loc.GitRef)
	}
	return fs.NewLocalFS(loc.Path)
}

// Resolver maps location names to roots. The name is only ever used as a lookup key;
// the configured mapping alone determines the directory.
type Resolver struct {
	locations LocationLookup
	open      Opener
}

// NewResolver creates a resolver over the configured locations. A nil opener uses OpenLocation.
func NewResolver(locations LocationLookup, open Opener) *Resolver {
	if open == nil {
		open = OpenLocation
	}
	return &Resolver{locations: locations, open: open}
}

// Resolve returns the root for name. It fails with ErrUnknownLocation, before touching
// the filesystem, when name is not configured, and with ErrPathNotFound when the
// configured directory is missing or is not a directory.
func (r *Resolver) Resolve(name string) (*Root, error) {
	loc, ok := r.locations.GetPath(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}

	fsys := r.open(loc)
	info, err := fsys.Stat("")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPathNotFound, name, err)
	}
	if !info.IsDir {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, name)
	}

	return &Root{Name: name, Path: fsys.Root(), FS: fsys}, nil
}
