package indexer

// Thumbnail geometry requested for image descriptors.
const (
	ThumbnailWidth  = 400
	ThumbnailHeight = 300
	ThumbnailFit    = "crop"
)

// Descriptor is the serializable summary of one matched file: an ImageDescriptor or a
// FileDescriptor.
type Descriptor interface {
	descriptor()
}

// ImageDescriptor describes an image for the picker.
type ImageDescriptor struct {
	Thumb string `json:"thumb"`
	URL   string `json:"url"`
}

// FileDescriptor describes a generic downloadable file.
type FileDescriptor struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Size  string `json:"size"`
}

func (ImageDescriptor) descriptor() {}
func (FileDescriptor) descriptor()  {}

// ThumbnailPather builds the path of a thumbnail for a file relative to a location.
// cropX and cropY name the crop focal point; empty values leave it to the thumbnail
// service. Implementations only construct URLs; they never generate images.
type ThumbnailPather interface {
	ThumbnailPath(relPath string, width, height int, cropX, cropY, fit string) string
}

// Strategy converts a matched entry into a descriptor.
type Strategy interface {
	Describe(e FileEntry) Descriptor
}

// ImageStrategy produces ImageDescriptors.
type ImageStrategy struct {
	Thumbnails ThumbnailPather
	// URLPrefix is joined with the relative path to form the full image URL.
	URLPrefix string
}

// Describe implements Strategy.
func (s ImageStrategy) Describe(e FileEntry) Descriptor {
	return ImageDescriptor{
		Thumb: s.Thumbnails.ThumbnailPath(e.RelPath, ThumbnailWidth, ThumbnailHeight, "", "", ThumbnailFit),
		URL:   s.URLPrefix + "/" + e.RelPath,
	}
}

// FileStrategy produces FileDescriptors.
type FileStrategy struct {
	// URLPrefix defaults to "/files".
	URLPrefix string
}

// Describe implements Strategy.
func (s FileStrategy) Describe(e FileEntry) Descriptor {
	prefix := s.URLPrefix
	if prefix == "" {
		prefix = "/files"
	}
	return FileDescriptor{
		Title: e.RelPath,
		URL:   prefix + "/" + e.RelPath,
		Size:  FormatBytes(e.Size, 1),
	}
}
