package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tsawler/techdeck/internal/config"
	"github.com/tsawler/techdeck/internal/logger"
	"github.com/tsawler/techdeck/model"
	"github.com/tsawler/techdeck/preview"
	"github.com/tsawler/techdeck/pptx"
	"github.com/tsawler/techdeck/restyle"
	"github.com/tsawler/techdeck/techbiz"
)

func ensureOutputDir(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}

// runPreview writes the preview image and the screenshot placeholder.
func runPreview(ctx context.Context, cfg *config.Config) error {
	if err := ensureOutputDir(cfg); err != nil {
		return err
	}

	opts := preview.Options{
		BoldFonts:      cfg.Preview.BoldFonts,
		RegularFonts:   cfg.Preview.RegularFonts,
		ThumbnailWidth: cfg.Preview.ThumbnailWidth,
		ThumbnailPath:  cfg.Path(cfg.Preview.Thumbnail),
	}

	logger.Info(ctx, "generating preview images")
	if err := preview.Preview(ctx, cfg.Path(cfg.Output.Preview), opts); err != nil {
		return err
	}
	return preview.Placeholder(ctx, cfg.Path(cfg.Output.Screenshot), opts)
}

// runTemplate writes the six-slide compact template.
func runTemplate(ctx context.Context, cfg *config.Config) error {
	if err := ensureOutputDir(cfg); err != nil {
		return err
	}
	return saveDeck(ctx, cfg.Path(cfg.Output.Template), techbiz.Template())
}

// runMaster writes the four-slide widescreen master deck.
func runMaster(ctx context.Context, cfg *config.Config) error {
	if err := ensureOutputDir(cfg); err != nil {
		return err
	}
	return saveDeck(ctx, cfg.Path(cfg.Output.Master), techbiz.Master())
}

// runTransform restyles the input deck, or creates the master deck in its
// place when the input is missing, then always writes the master deck.
func runTransform(ctx context.Context, cfg *config.Config) error {
	if err := ensureOutputDir(cfg); err != nil {
		return err
	}

	out := cfg.Path(cfg.Output.Template)
	report, err := restyle.TransformOrCreate(ctx, cfg.Input, out, restyle.DefaultOptions())
	if err != nil {
		return err
	}

	if report.Created {
		logger.Info(ctx, "new template created", zap.String("path", out))
	} else {
		logger.Info(ctx, "transformed presentation saved",
			zap.String("path", out),
			zap.Int("slides", report.Slides),
			zap.Int("titles", report.Titles),
			zap.Int("bullets", report.Bullets),
			zap.Int("bodies", report.Bodies),
		)
	}

	return runMaster(ctx, cfg)
}

func saveDeck(ctx context.Context, path string, deck *model.Deck) error {
	logger.Info(ctx, "creating presentation", zap.String("path", path), zap.Int("slides", deck.SlideCount()))
	if err := pptx.Save(path, deck); err != nil {
		return err
	}
	logger.Info(ctx, "presentation saved", zap.String("path", path))
	return nil
}
