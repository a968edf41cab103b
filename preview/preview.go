// Package preview draws the static preview images of the tech-business
// template: a picture of the title slide and a placeholder for the
// screenshot of the original deck.
package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/tsawler/techdeck/fonts"
	"github.com/tsawler/techdeck/internal/logger"
)

// Canvas size of both images.
const (
	Width  = 1920
	Height = 1080
)

// Text drawn on the images.
const (
	Title           = "科技商业演示模板"
	Subtitle        = "Tech-Business Presentation Template"
	PlaceholderText = "原始截图占位符\nOriginal Screenshot Placeholder"
	PlaceholderNote = "注：实际截图由用户提供 | Note: Actual screenshot provided by user"
)

// lineSpacing is the extra gap between lines of multi-line text.
const lineSpacing = 4

type rgb struct{ R, G, B int }

var (
	background  = rgb{245, 247, 250}
	accent      = rgb{12, 170, 170}
	titleColor  = rgb{11, 59, 113}
	textColor   = rgb{51, 51, 51}
	white       = rgb{255, 255, 255}
	borderColor = rgb{200, 200, 200}
	labelColor  = rgb{150, 150, 150}
	noteColor   = rgb{180, 180, 180}
)

// Options selects fonts and the optional thumbnail.
type Options struct {
	BoldFonts    []string
	RegularFonts []string

	// ThumbnailWidth, when positive, also writes a scaled copy of the
	// preview to ThumbnailPath.
	ThumbnailWidth int
	ThumbnailPath  string
}

// DefaultOptions uses the system font locations and no thumbnail.
func DefaultOptions() Options {
	return Options{
		BoldFonts:    fonts.DefaultBold,
		RegularFonts: fonts.DefaultRegular,
	}
}

// Preview draws the title slide picture: a light gray canvas, a cyan accent
// bar on the left edge, the title and the subtitle.
func Preview(ctx context.Context, path string, opts Options) error {
	dc := gg.NewContext(Width, Height)
	setColor(dc, background)
	dc.Clear()

	// The bar spans x 0 through 40 inclusive.
	setColor(dc, accent)
	dc.DrawRectangle(0, 0, 41, Height)
	dc.Fill()

	titleFace := fonts.Load(ctx, 120, opts.BoldFonts...)
	subtitleFace := fonts.Load(ctx, 48, opts.RegularFonts...)

	drawText(dc, titleFace, Title, 150, 300, titleColor)
	drawText(dc, subtitleFace, Subtitle, 150, 500, textColor)

	if err := save(ctx, dc, path); err != nil {
		return err
	}

	if opts.ThumbnailWidth > 0 && opts.ThumbnailPath != "" {
		if err := Thumbnail(dc, opts.ThumbnailPath, opts.ThumbnailWidth); err != nil {
			return err
		}
		logger.Info(ctx, "thumbnail saved", zap.String("path", opts.ThumbnailPath), zap.Int("width", opts.ThumbnailWidth))
	}

	return nil
}

// Placeholder draws the stand-in for the original screenshot: a white
// canvas with a gray border, a centered two-line label and a note below it.
func Placeholder(ctx context.Context, path string, opts Options) error {
	dc := gg.NewContext(Width, Height)
	setColor(dc, white)
	dc.Clear()

	// A 5px outline drawn inside the box from (10,10) to (1910,1070).
	setColor(dc, borderColor)
	dc.DrawRectangle(10, 10, Width-19, Height-19)
	dc.Fill()
	setColor(dc, white)
	dc.DrawRectangle(15, 15, Width-29, Height-29)
	dc.Fill()

	labelFace := fonts.Load(ctx, 40, opts.RegularFonts...)
	w, h := textSize(labelFace, PlaceholderText)
	x := (Width - w) / 2
	y := (Height - h) / 2
	drawText(dc, labelFace, PlaceholderText, x, y, labelColor)

	noteFace := fonts.Load(ctx, 24, opts.RegularFonts...)
	noteWidth, _ := textSize(noteFace, PlaceholderNote)
	drawText(dc, noteFace, PlaceholderNote, (Width-noteWidth)/2, y+100, noteColor)

	return save(ctx, dc, path)
}

// Thumbnail writes a copy of the drawing scaled to width, keeping the
// aspect ratio.
func Thumbnail(dc *gg.Context, path string, width int) error {
	thumb := imaging.Resize(dc.Image(), width, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, path); err != nil {
		return fmt.Errorf("saving thumbnail %s: %w", path, err)
	}
	return nil
}

func save(ctx context.Context, dc *gg.Context, path string) error {
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	logger.Info(ctx, "image saved", zap.String("path", path))
	return nil
}

func setColor(dc *gg.Context, c rgb) {
	dc.SetRGB255(c.R, c.G, c.B)
}

// drawText draws text with its top-left corner at (x, y). Lines are
// separated by the ascent plus a small gap.
func drawText(dc *gg.Context, face fonts.Face, text string, x, y int, c rgb) {
	dc.SetFontFace(face)
	setColor(dc, c)

	ascent := float64(face.Metrics().Ascent.Ceil())
	for i, line := range strings.Split(text, "\n") {
		baseline := float64(y) + ascent + float64(i)*lineAdvance(face)
		dc.DrawString(line, float64(x), baseline)
	}
}

// textSize is the pixel extent of text: the widest line, and the distance
// from the top of the first line to the bottom of the last.
func textSize(face fonts.Face, text string) (width, height int) {
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		w := font.MeasureString(face, line).Ceil()
		if w > width {
			width = w
		}
	}

	m := face.Metrics()
	height = int(float64(len(lines)-1)*lineAdvance(face)) + m.Ascent.Ceil() + m.Descent.Ceil()
	return width, height
}

func lineAdvance(face fonts.Face) float64 {
	return float64(face.Metrics().Ascent.Ceil() + lineSpacing)
}
