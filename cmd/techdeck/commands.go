package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/techdeck/format"
	"github.com/tsawler/techdeck/internal/config"
	"github.com/tsawler/techdeck/internal/logger"
	"github.com/tsawler/techdeck/ocr"
	"github.com/tsawler/techdeck/pptx"
	"github.com/tsawler/techdeck/preview"
	"github.com/tsawler/techdeck/render"
)

// ErrVerificationFailed is returned by verify when expected text is missing.
var ErrVerificationFailed = errors.New("expected text not found in image")

// previewCommand constructs the 'preview' subcommand that draws the preview
// image and the screenshot placeholder.
func previewCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Generates the preview and placeholder screenshot images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), cfg)
		},
	}
}

// templateCommand constructs the 'template' subcommand.
func templateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Creates the six-slide tech-business template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplate(cmd.Context(), cfg)
		},
	}
}

// transformCommand constructs the 'transform' subcommand that restyles the
// input deck and writes the master template.
func transformCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "transform",
		Short: "Restyles the input deck and creates the master template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd.Context(), cfg)
		},
	}
}

// masterCommand constructs the 'master' subcommand.
func masterCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "master",
		Short: "Creates the widescreen master template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaster(cmd.Context(), cfg)
		},
	}
}

// allCommand constructs the 'all' subcommand that runs preview, template and
// transform in that order.
func allCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Runs preview, template and transform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := runPreview(ctx, cfg); err != nil {
				return err
			}
			if err := runTemplate(ctx, cfg); err != nil {
				return err
			}
			return runTransform(ctx, cfg)
		},
	}
}

// renderCommand constructs the 'render' subcommand that rasterizes slides
// of any presentation.
func renderCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <deck.pptx>",
		Short: "Renders slides of a presentation to images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slide, _ := cmd.Flags().GetInt("slide")
			width, _ := cmd.Flags().GetInt("width")
			output, _ := cmd.Flags().GetString("output")

			if err := checkFormat(args[0], format.PPTX); err != nil {
				return err
			}

			opts := render.Options{Width: cfg.Render.Width, FontDirs: cfg.Render.FontDirs}
			if width > 0 {
				opts.Width = width
			}

			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			if slide == 0 {
				pattern := output
				if pattern == "" {
					pattern = cfg.Path(base + "-slide%02d.png")
				}
				paths, err := render.RenderAll(cmd.Context(), args[0], pattern, opts)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}

			if output == "" {
				output = cfg.Path(fmt.Sprintf("%s-slide%02d.png", base, slide))
			}
			if err := render.RenderSlide(cmd.Context(), args[0], slide-1, output, opts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().Int("slide", 0, "1-based slide number; 0 renders every slide")
	cmd.Flags().Int("width", 0, "Image width in pixels (default from config)")
	cmd.Flags().StringP("output", "o", "", "Output file; a %d pattern when rendering every slide")

	return cmd
}

// inspectCommand constructs the 'inspect' subcommand that prints the
// structure and text of a presentation.
func inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <deck.pptx>",
		Short: "Prints slide titles, text and metadata of a presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markdown, _ := cmd.Flags().GetBool("markdown")

			if err := checkFormat(args[0], format.PPTX); err != nil {
				return err
			}

			r, err := pptx.Open(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if markdown {
				fmt.Fprintln(out, r.Markdown())
				return nil
			}

			w, h := r.SlideSize()
			meta := r.Metadata()
			fmt.Fprintf(out, "File:   %s\n", args[0])
			fmt.Fprintf(out, "Title:  %s\n", meta.Title)
			fmt.Fprintf(out, "Size:   %.3fin x %.3fin\n", w.Inches(), h.Inches())
			fmt.Fprintf(out, "Slides: %d\n", r.SlideCount())

			for _, s := range r.Slides() {
				fmt.Fprintf(out, "\n[%d] %s\n", s.Index+1, s.Title)
				for _, run := range s.Runs() {
					fmt.Fprintf(out, "    %-40s %5.1fpt %-6s %s\n",
						truncate(run.Text, 40), float64(run.FontSize)/100, run.Color, run.Typeface)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("markdown", false, "Print slide text as Markdown")

	return cmd
}

// verifyCommand constructs the 'verify' subcommand that checks a rendered
// image for its expected text with OCR.
func verifyCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <image>",
		Short: "Checks that an image shows the expected text (requires -tags ocr)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, _ := cmd.Flags().GetStringSlice("expect")
			if len(expected) == 0 {
				expected = []string{preview.Subtitle}
			}

			if err := checkImage(args[0]); err != nil {
				return err
			}

			client, err := ocr.New(cfg.OCR.Languages...)
			if err != nil {
				return err
			}
			defer client.Close()

			res, err := ocr.VerifyFile(cmd.Context(), client, args[0], expected...)
			if err != nil {
				return err
			}
			if !res.OK() {
				logger.Debug(cmd.Context(), "recognized text", zap.String("text", res.Text))
				return fmt.Errorf("%w: %s", ErrVerificationFailed, strings.Join(res.Missing, ", "))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d/%d strings found\n", len(res.Found), len(expected))
			return nil
		},
	}

	cmd.Flags().StringSlice("expect", nil, "Text that must appear in the image (default: preview subtitle)")

	return cmd
}

// checkFormat rejects files whose content is not one of the wanted formats.
func checkFormat(path string, want ...format.Format) error {
	got, err := format.DetectFile(path)
	if err != nil {
		return err
	}
	for _, f := range want {
		if got == f {
			return nil
		}
	}
	return fmt.Errorf("%s: unsupported format %s", path, got)
}

// checkImage rejects files whose content is not a raster image.
func checkImage(path string) error {
	got, err := format.DetectFile(path)
	if err != nil {
		return err
	}
	if !got.IsImage() {
		return fmt.Errorf("%s: unsupported format %s", path, got)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
