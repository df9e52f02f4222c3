package indexer

import (
	"fmt"
	"strings"
)

// ExtensionSet is an ordered set of lowercase file extensions without the leading dot.
type ExtensionSet struct {
	exts    []string
	allowed map[string]struct{}
}

// ImageTypes returns the extensions accepted for image listings.
func ImageTypes() []string {
	return []string{"gif", "png", "jpg", "jpeg", "svg", "avif", "webp"}
}

// NewExtensionSet builds a set from exts. Extensions are case-insensitive and may be
// given with or without a leading dot; duplicates keep their first position. Empty
// input, blank entries and entries containing separators or glob syntax are rejected.
func NewExtensionSet(exts ...string) (ExtensionSet, error) {
	set := ExtensionSet{allowed: make(map[string]struct{}, len(exts))}
	for _, raw := range exts {
		ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "."))
		if ext == "" || strings.HasPrefix(ext, ".") || strings.HasSuffix(ext, ".") ||
			strings.ContainsAny(ext, "/\\*?[]{},! \t") {
			return ExtensionSet{}, fmt.Errorf("%w: %q", ErrInvalidExtensionFilter, raw)
		}
		if _, dup := set.allowed[ext]; dup {
			continue
		}
		set.allowed[ext] = struct{}{}
		set.exts = append(set.exts, ext)
	}
	if len(set.exts) == 0 {
		return ExtensionSet{}, fmt.Errorf("%w: no extensions", ErrInvalidExtensionFilter)
	}
	return set, nil
}

// Extensions returns the set members in insertion order.
func (s ExtensionSet) Extensions() []string {
	return append([]string(nil), s.exts...)
}

// Len returns the number of extensions in the set.
func (s ExtensionSet) Len() int {
	return len(s.exts)
}

// Match reports whether name ends in a dot followed by a member of the set, with at
// least one character before that dot. "a.png" and "Photo.PNG" match {png}, "png" does
// not. Multi-part members such as "tar.gz" are matched against every dotted suffix.
func (s ExtensionSet) Match(name string) bool {
	if len(s.allowed) == 0 {
		return false
	}
	lower := strings.ToLower(name)
	for i := 1; i < len(lower)-1; i++ {
		if lower[i] != '.' {
			continue
		}
		if _, ok := s.allowed[lower[i+1:]]; ok {
			return true
		}
	}
	return false
}
