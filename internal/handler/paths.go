package handler

import (
	"path"
	"strings"

	"github.com/CageChen/assetindex/internal/indexer"
)

// cleanAssetPath validates a path taken from a request against the same rules the
// walker applies: relative, no "." or ".." segments, no hidden segments, and inside
// the depth bound. It returns the slash-separated path and whether it is acceptable.
func cleanAssetPath(p string, maxDepth int) (string, bool) {
	p = strings.TrimPrefix(p, "/")
	if p == "" || strings.Contains(p, "\\") {
		return "", false
	}
	segments := strings.Split(p, "/")
	if len(segments) > maxDepth {
		return "", false
	}
	for _, s := range segments {
		if s == "" || s == "." || s == ".." || strings.HasPrefix(s, ".") {
			return "", false
		}
	}
	return path.Join(segments...), true
}

// acceptedPath reports whether the file name of p is in exts.
func acceptedPath(p string, exts indexer.ExtensionSet) bool {
	return exts.Match(path.Base(p))
}
