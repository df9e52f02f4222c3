// Package main is the entry point for the asset index server.
package main

import (
	"fmt"
	"log"
	"os/exec"
	"runtime"
	"strings"

	"github.com/CageChen/assetindex/internal/config"
	"github.com/CageChen/assetindex/internal/guard"
	"github.com/CageChen/assetindex/internal/handler"
	"github.com/CageChen/assetindex/internal/indexer"
	"github.com/CageChen/assetindex/internal/watcher"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Asset index server")
	log.Printf("Config file: %s", cfg.GetConfigFilePath())
	log.Printf("Serving %d location(s), depth %d:", len(cfg.Locations), cfg.MaxDepth)
	for i, l := range cfg.Locations {
		if l.GitRef != "" {
			log.Printf("  [%d] %s -> %s (git ref: %s)", i, l.Name, l.Path, l.GitRef)
		} else {
			log.Printf("  [%d] %s -> %s", i, l.Name, l.Path)
		}
	}
	log.Printf("Locations: %s (default %q)", strings.Join(cfg.LocationNames(), ", "), config.DefaultLocation)
	log.Printf("Server starting at: http://localhost:%d", cfg.Port)

	ix := indexer.New(
		indexer.NewResolver(cfg, indexer.OpenLocation),
		&indexer.Walker{Exclude: cfg.Exclude},
		cfg.MaxDepth,
	)
	wsHandler := handler.NewWSHandler()

	// Setup file watcher if enabled
	if cfg.Watch {
		w, err := watcher.New(cfg)
		if err != nil {
			log.Printf("Warning: failed to create file watcher: %v", err)
		} else {
			w.OnChange(wsHandler.OnAssetChange)
			if err := w.Start(); err != nil {
				log.Printf("Warning: failed to start file watcher: %v", err)
			}
			defer func() { _ = w.Stop() }()
			log.Printf("File watcher enabled")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	r := handler.NewRouter(handler.Dependencies{
		Config:     cfg,
		Indexer:    ix,
		Tokens:     guard.NewTokenManager(cfg.CSRF.Secret),
		Authorizer: guard.NewTokenAuthorizer(cfg.Auth.Tokens),
		WS:         wsHandler,
	})

	// Open browser if requested
	if cfg.Open {
		go openBrowser(fmt.Sprintf("http://localhost:%d/api/locations", cfg.Port))
	}

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default: // linux, etc.
		cmd = "xdg-open"
		args = []string{url}
	}

	_ = exec.Command(cmd, args...).Start()
}
