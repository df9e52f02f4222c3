package indexer

import "path"

// Map keeps the entries whose name matches exts and converts each with strategy,
// preserving entry order. An empty extension set is an error rather than an empty result.
func Map(entries []FileEntry, exts ExtensionSet, strategy Strategy) ([]Descriptor, error) {
	if exts.Len() == 0 {
		return nil, ErrInvalidExtensionFilter
	}
	out := make([]Descriptor, 0, len(entries))
	for _, e := range entries {
		if !exts.Match(path.Base(e.RelPath)) {
			continue
		}
		out = append(out, strategy.Describe(e))
	}
	return out, nil
}
