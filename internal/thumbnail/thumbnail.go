// Package thumbnail builds thumbnail URLs. It never reads or resizes images; a separate
// thumbnail service answers the URLs it produces.
package thumbnail

import (
	"cmp"
	"strconv"
	"strings"
)

// Placeholder is returned for an empty file name.
const Placeholder = "/assets/images/placeholder.png"

// Default geometry used when a request gives neither width nor height.
const (
	DefaultWidth  = 320
	DefaultHeight = 240
)

// Helper builds paths of the form {Base}/{width}×{height}×{fit}[×{cropX}×{cropY}]/{path}.
type Helper struct {
	Base string
}

// NewHelper returns a Helper rooted at base, e.g. "/thumbs".
func NewHelper(base string) *Helper {
	return &Helper{Base: strings.TrimSuffix(base, "/")}
}

// ThumbnailPath returns the thumbnail URL for relPath. A zero width or height is left
// for the thumbnail service to derive from the aspect ratio; when both are zero the
// defaults apply. An empty fit is omitted. The crop focal point is only written when
// cropX or cropY is set; the other coordinate then defaults to "center".
func (h *Helper) ThumbnailPath(relPath string, width, height int, cropX, cropY, fit string) string {
	relPath = strings.TrimPrefix(relPath, "/")
	if relPath == "" {
		return Placeholder
	}
	if width <= 0 && height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}

	params := strconv.Itoa(max(width, 0)) + "×" + strconv.Itoa(max(height, 0))
	if fit != "" {
		params += "×" + fit
	}
	if cropX != "" || cropY != "" {
		params += "×" + cmp.Or(cropX, "center") + "×" + cmp.Or(cropY, "center")
	}
	return h.Base + "/" + params + "/" + relPath
}
