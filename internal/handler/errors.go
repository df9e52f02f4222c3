package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/CageChen/assetindex/internal/indexer"
	"github.com/gin-gonic/gin"
)

// abortWithError writes the API error payload and stops the handler chain.
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":   true,
		"message": message,
	})
}

// writeIndexError maps indexer failures to responses. Filesystem details are logged,
// never sent to the client.
func writeIndexError(c *gin.Context, location string, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		c.Abort()
	case errors.Is(err, indexer.ErrUnknownLocation):
		abortWithError(c, http.StatusNotFound, "unknown location: "+location)
	case errors.Is(err, indexer.ErrPathNotFound):
		log.Printf("handler: %v", err)
		abortWithError(c, http.StatusNotFound, "location directory not found: "+location)
	case errors.Is(err, indexer.ErrInvalidExtensionFilter):
		log.Printf("handler: %v", err)
		abortWithError(c, http.StatusInternalServerError, "invalid file type configuration")
	default:
		log.Printf("handler: indexing %s failed: %v", location, err)
		abortWithError(c, http.StatusInternalServerError, "failed to index location: "+location)
	}
}
