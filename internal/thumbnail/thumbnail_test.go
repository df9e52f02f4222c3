package thumbnail

import "testing"

func TestThumbnailPath(t *testing.T) {
	h := NewHelper("/thumbs/")

	tests := []struct {
		name   string
		path   string
		width  int
		height int
		cropX  string
		cropY  string
		fit    string
		want   string
	}{
		{"crop", "sub/b.jpg", 400, 300, "", "", "crop", "/thumbs/400×300×crop/sub/b.jpg"},
		{"no fit", "a.png", 100, 50, "", "", "", "/thumbs/100×50/a.png"},
		{"defaults", "a.png", 0, 0, "", "", "", "/thumbs/320×240/a.png"},
		{"width only", "a.png", 200, 0, "", "", "max", "/thumbs/200×0×max/a.png"},
		{"focal point", "a.png", 400, 300, "left", "top", "crop", "/thumbs/400×300×crop×left×top/a.png"},
		{"focal x only", "a.png", 400, 300, "right", "", "crop", "/thumbs/400×300×crop×right×center/a.png"},
		{"leading slash", "/a.png", 400, 300, "", "", "crop", "/thumbs/400×300×crop/a.png"},
		{"empty", "", 400, 300, "", "", "crop", Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.ThumbnailPath(tt.path, tt.width, tt.height, tt.cropX, tt.cropY, tt.fit); got != tt.want {
				t.Errorf("ThumbnailPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
