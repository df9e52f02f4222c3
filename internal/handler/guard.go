package handler

import (
	"net/http"

	"github.com/CageChen/assetindex/internal/guard"
	"github.com/gin-gonic/gin"
)

const (
	// PermissionListFiles is required for every listing endpoint.
	PermissionListFiles = "list_files:files"
	// CSRFTokenID is the token id the picker requests tokens for.
	CSRFTokenID = "bolt_article"
)

// RequirePermission rejects requests the authorizer does not grant permission to.
func RequirePermission(a guard.Authorizer, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Allowed(c.Request, permission) {
			abortWithError(c, http.StatusForbidden, "Access denied")
			return
		}
		c.Next()
	}
}

// RequireCSRF rejects requests without a valid token for id, taken from the
// X-CSRF-Token header or the _csrf_token query parameter.
func RequireCSRF(m *guard.TokenManager, id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-CSRF-Token")
		if token == "" {
			token = c.Query("_csrf_token")
		}
		if !m.Valid(id, token) {
			abortWithError(c, http.StatusForbidden, "Invalid CSRF token")
			return
		}
		c.Next()
	}
}

// CSRFHandler hands out CSRF tokens
type CSRFHandler struct {
	tokens *guard.TokenManager
}

// NewCSRFHandler creates a new CSRF token handler
func NewCSRFHandler(tokens *guard.TokenManager) *CSRFHandler {
	return &CSRFHandler{tokens: tokens}
}

// GetToken returns a fresh token for the picker's token id
func (h *CSRFHandler) GetToken(c *gin.Context) {
	token, err := h.tokens.Generate(CSRFTokenID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    CSRFTokenID,
		"token": token,
	})
}
