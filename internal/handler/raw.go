package handler

import (
	"mime"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/CageChen/assetindex/internal/config"
	"github.com/CageChen/assetindex/internal/indexer"
	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"
)

// fileURLPrefix is the route FileDescriptor URLs point at.
const fileURLPrefix = "/files"

func init() {
	filetype.AddType("jpeg", "image/jpeg")
	filetype.AddType("svg", "image/svg+xml")
	filetype.AddType("md", "text/markdown")
}

// RawHandler serves the files of the default location so descriptor URLs resolve
type RawHandler struct {
	cfg     *config.Config
	indexer *indexer.Indexer
}

// NewRawHandler creates a new raw file handler
func NewRawHandler(cfg *config.Config, ix *indexer.Indexer) *RawHandler {
	return &RawHandler{cfg: cfg, indexer: ix}
}

// GetRaw serves a single file. Only extensions that appear in a listing are served.
func (h *RawHandler) GetRaw(c *gin.Context) {
	exts, err := indexer.NewExtensionSet(h.servedTypes()...)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "file not found")
		return
	}

	relPath, ok := cleanAssetPath(c.Param("path"), h.indexer.MaxDepth())
	if !ok || !acceptedPath(relPath, exts) {
		abortWithError(c, http.StatusNotFound, "file not found")
		return
	}

	root, err := h.indexer.Resolve(config.DefaultLocation)
	if err != nil {
		writeIndexError(c, config.DefaultLocation, err)
		return
	}

	info, err := root.FS.Stat(relPath)
	if err != nil || !info.Regular {
		abortWithError(c, http.StatusNotFound, "file not found")
		return
	}

	data, err := root.FS.ReadFile(relPath)
	if err != nil {
		abortWithError(c, http.StatusNotFound, "file not found")
		return
	}

	c.Header("Last-Modified", info.ModTime.UTC().Format(http.TimeFormat))
	c.Data(http.StatusOK, contentType(relPath, data), data)
}

func (h *RawHandler) servedTypes() []string {
	types := slices.Clone(h.cfg.GetFileTypes())
	for _, ext := range h.cfg.GetImageTypes() {
		if !slices.Contains(types, ext) {
			types = append(types, ext)
		}
	}
	return types
}

// contentType picks the media type by extension, then by content, then falls back
// to the mime package.
func contentType(name string, data []byte) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext != "" {
		if t := filetype.GetType(ext); t != filetype.Unknown && t.MIME.Value != "" {
			return t.MIME.Value
		}
	}
	if t, err := filetype.Match(data); err == nil && t != filetype.Unknown {
		return t.MIME.Value
	}
	if ext != "" {
		if t := mime.TypeByExtension("." + ext); t != "" {
			return t
		}
	}
	return "application/octet-stream"
}
