// Package indexer lists the media and document assets of a configured location: it
// resolves the location to a sandboxed root, walks it to a bounded depth, filters files
// by extension and maps each match to a descriptor for the asset picker.
package indexer

import (
	"context"
	"fmt"
)

// Indexer ties the resolver, walker and mapper together. It keeps no state between calls.
type Indexer struct {
	resolver *Resolver
	walker   *Walker
	maxDepth int
}

// New creates an Indexer. A maxDepth <= 0 uses DefaultMaxDepth.
func New(resolver *Resolver, walker *Walker, maxDepth int) *Indexer {
	if walker == nil {
		walker = &Walker{}
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Indexer{resolver: resolver, walker: walker, maxDepth: maxDepth}
}

// MaxDepth returns the traversal bound.
func (ix *Indexer) MaxDepth() int {
	return ix.maxDepth
}

// Resolve exposes the resolver for callers that need the root itself.
func (ix *Indexer) Resolve(location string) (*Root, error) {
	return ix.resolver.Resolve(location)
}

// Index resolves location, walks it and maps the files matching exts with strategy.
func (ix *Indexer) Index(ctx context.Context, location string, exts ExtensionSet, strategy Strategy) ([]Descriptor, error) {
	if exts.Len() == 0 {
		return nil, ErrInvalidExtensionFilter
	}
	root, err := ix.resolver.Resolve(location)
	if err != nil {
		return nil, err
	}
	entries, err := ix.walker.Walk(ctx, root, ix.maxDepth)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", location, err)
	}
	return Map(entries, exts, strategy)
}
