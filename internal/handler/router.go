package handler

import (
	"net/http"

	"github.com/CageChen/assetindex/internal/config"
	"github.com/CageChen/assetindex/internal/guard"
	"github.com/CageChen/assetindex/internal/indexer"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the routes are built from
type Dependencies struct {
	Config     *config.Config
	Indexer    *indexer.Indexer
	Tokens     *guard.TokenManager
	Authorizer guard.Authorizer
	// WS is optional; without it /api/ws is not registered.
	WS *WSHandler
}

// NewRouter registers every route on a new gin engine
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	assets := NewAssetHandler(deps.Config, deps.Indexer)
	previews := NewPreviewHandler(deps.Config, deps.Indexer)
	raw := NewRawHandler(deps.Config, deps.Indexer)
	csrf := NewCSRFHandler(deps.Tokens)

	api := r.Group("/api")
	{
		// Both checks run before any location is resolved.
		listing := api.Group("",
			RequirePermission(deps.Authorizer, PermissionListFiles),
			RequireCSRF(deps.Tokens, CSRFTokenID),
		)
		listing.GET("/article_images", assets.ListImages)
		listing.GET("/article_files", assets.ListFiles)
		listing.GET("/article_files/preview", previews.GetPreview)

		authorized := api.Group("", RequirePermission(deps.Authorizer, PermissionListFiles))
		authorized.GET("/locations", assets.GetLocations)
		authorized.GET("/csrf-token", csrf.GetToken)

		if deps.WS != nil {
			authorized.GET("/ws", deps.WS.HandleWS)
		}
	}

	r.GET(fileURLPrefix+"/*path", raw.GetRaw)

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-CSRF-Token")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
