package handler

import (
	"net/http"
	"slices"

	"github.com/CageChen/assetindex/internal/config"
	"github.com/CageChen/assetindex/internal/indexer"
	"github.com/CageChen/assetindex/internal/preview"
	"github.com/gin-gonic/gin"
)

// PreviewHandler renders markdown documents of a location
type PreviewHandler struct {
	cfg      *config.Config
	indexer  *indexer.Indexer
	renderer *preview.Renderer
}

// NewPreviewHandler creates a new preview handler
func NewPreviewHandler(cfg *config.Config, ix *indexer.Indexer) *PreviewHandler {
	return &PreviewHandler{
		cfg:      cfg,
		indexer:  ix,
		renderer: preview.NewRenderer(),
	}
}

// GetPreview renders the document named by the location and path query parameters
func (h *PreviewHandler) GetPreview(c *gin.Context) {
	location := c.DefaultQuery("location", config.DefaultLocation)

	exts, err := h.documentTypes()
	if err != nil {
		abortWithError(c, http.StatusNotFound, "no previewable file types configured")
		return
	}

	relPath, ok := cleanAssetPath(c.Query("path"), h.indexer.MaxDepth())
	if !ok || !acceptedPath(relPath, exts) {
		abortWithError(c, http.StatusBadRequest, "invalid document path")
		return
	}

	root, err := h.indexer.Resolve(location)
	if err != nil {
		writeIndexError(c, location, err)
		return
	}

	info, err := root.FS.Stat(relPath)
	if err != nil || !info.Regular {
		abortWithError(c, http.StatusNotFound, "document not found")
		return
	}

	source, err := root.FS.ReadFile(relPath)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "document not found")
		return
	}

	doc, err := h.renderer.Render(source)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to render document")
		return
	}
	if doc.Title == "" {
		doc.Title = relPath
	}

	c.JSON(http.StatusOK, gin.H{
		"location": location,
		"path":     relPath,
		"title":    doc.Title,
		"html":     doc.HTML,
		"outline":  doc.Outline,
		"modified": info.ModTime,
	})
}

// documentTypes is the intersection of the configured file types and the renderer's extensions.
func (h *PreviewHandler) documentTypes() (indexer.ExtensionSet, error) {
	var types []string
	for _, ext := range preview.Extensions {
		if slices.Contains(h.cfg.GetFileTypes(), ext) {
			types = append(types, ext)
		}
	}
	return indexer.NewExtensionSet(types...)
}
