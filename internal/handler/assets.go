package handler

import (
	"net/http"
	"slices"

	"github.com/CageChen/assetindex/internal/config"
	"github.com/CageChen/assetindex/internal/indexer"
	"github.com/CageChen/assetindex/internal/thumbnail"
	"github.com/gin-gonic/gin"
)

// AssetHandler serves the asset listings used by the article picker
type AssetHandler struct {
	cfg     *config.Config
	indexer *indexer.Indexer
	thumbs  *thumbnail.Helper
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(cfg *config.Config, ix *indexer.Indexer) *AssetHandler {
	return &AssetHandler{
		cfg:     cfg,
		indexer: ix,
		thumbs:  thumbnail.NewHelper(cfg.Thumbnails.Base),
	}
}

// ListImages returns the image descriptors of a location
func (h *AssetHandler) ListImages(c *gin.Context) {
	location := c.DefaultQuery("location", config.DefaultLocation)

	exts, err := indexer.NewExtensionSet(h.cfg.GetImageTypes()...)
	if err != nil {
		writeIndexError(c, location, err)
		return
	}
	strategy := indexer.ImageStrategy{
		Thumbnails: h.thumbs,
		URLPrefix:  h.cfg.ThumbnailURLPrefix(),
	}

	h.list(c, location, exts, strategy)
}

// ListFiles returns the file descriptors of a location
func (h *AssetHandler) ListFiles(c *gin.Context) {
	location := c.DefaultQuery("location", config.DefaultLocation)

	exts, err := indexer.NewExtensionSet(h.cfg.GetFileTypes()...)
	if err != nil {
		writeIndexError(c, location, err)
		return
	}

	h.list(c, location, exts, indexer.FileStrategy{URLPrefix: fileURLPrefix})
}

func (h *AssetHandler) list(c *gin.Context, location string, exts indexer.ExtensionSet, strategy indexer.Strategy) {
	descriptors, err := h.indexer.Index(c.Request.Context(), location, exts, strategy)
	if err != nil {
		writeIndexError(c, location, err)
		return
	}
	c.JSON(http.StatusOK, descriptors)
}

// LocationInfo is the public view of a configured location
type LocationInfo struct {
	Name    string `json:"name"`
	GitRef  string `json:"git_ref,omitempty"`
	Default bool   `json:"default"`
}

// GetLocations returns the configured locations without their directories
func (h *AssetHandler) GetLocations(c *gin.Context) {
	locations := make([]LocationInfo, 0, len(h.cfg.Locations))
	for _, l := range h.cfg.Locations {
		locations = append(locations, LocationInfo{
			Name:    l.Name,
			GitRef:  l.GitRef,
			Default: l.Name == config.DefaultLocation,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"locations":   locations,
		"file_types":  slices.Clone(h.cfg.GetFileTypes()),
		"image_types": slices.Clone(h.cfg.GetImageTypes()),
	})
}
