// Command assetindex prints the image or file listing of a location as JSON.
//
//	assetindex [--config file] [--path dir] images|files [--location name]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/CageChen/assetindex/internal/config"
	"github.com/CageChen/assetindex/internal/indexer"
	"github.com/CageChen/assetindex/internal/thumbnail"
)

func main() {
	log.SetFlags(0)

	fset := flag.NewFlagSet("assetindex", flag.ExitOnError)
	cfg, err := config.LoadArgs(fset, os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, fset.Args(), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: assetindex images|files [--location name]")
	}

	sub := flag.NewFlagSet(args[0], flag.ContinueOnError)
	location := sub.String("location", config.DefaultLocation, "Location to list")
	if err := sub.Parse(args[1:]); err != nil {
		return err
	}

	var (
		types    []string
		strategy indexer.Strategy
	)
	switch args[0] {
	case "images":
		types = cfg.GetImageTypes()
		strategy = indexer.ImageStrategy{
			Thumbnails: thumbnail.NewHelper(cfg.Thumbnails.Base),
			URLPrefix:  cfg.ThumbnailURLPrefix(),
		}
	case "files":
		types = cfg.GetFileTypes()
		strategy = indexer.FileStrategy{}
	default:
		return fmt.Errorf("unknown listing %q, want images or files", args[0])
	}

	exts, err := indexer.NewExtensionSet(types...)
	if err != nil {
		return err
	}

	ix := indexer.New(indexer.NewResolver(cfg, nil), &indexer.Walker{Exclude: cfg.Exclude}, cfg.MaxDepth)
	descriptors, err := ix.Index(ctx, *location, exts, strategy)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(descriptors)
}
