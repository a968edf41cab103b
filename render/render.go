// Package render rasterizes slides of any PowerPoint file to images.
//
// Shapes are read with the pptx package and painted with gg: solid
// backgrounds, filled and outlined rectangles, rounded rectangles and
// ellipses, and the text they carry laid out inside their insets.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"github.com/tsawler/techdeck/format"
	"github.com/tsawler/techdeck/internal/logger"
	"github.com/tsawler/techdeck/model"
	"github.com/tsawler/techdeck/pptx"
)

// ErrSlideRange is returned for a slide index outside the presentation.
var ErrSlideRange = errors.New("slide index out of range")

// JPEG output quality.
const jpegQuality = 92

// Options configures rasterization.
type Options struct {
	// Width of the output image in pixels; the height follows the slide
	// aspect ratio.
	Width int

	// FontDirs are searched in addition to the system font directories.
	FontDirs []string

	// Background overrides the slide background when set.
	Background *color.RGBA
}

// DefaultOptions renders full HD images.
func DefaultOptions() Options {
	return Options{Width: 1920}
}

// Document is a presentation loaded for rendering.
type Document struct {
	path   string
	reader *pptx.Reader
	width  model.EMU
	height model.EMU
}

// Open loads the presentation at path.
func Open(path string) (*Document, error) {
	r, err := pptx.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	w, h := r.SlideSize()
	if w <= 0 || h <= 0 {
		// PowerPoint's 4:3 default
		w, h = model.Inches(10), model.Inches(7.5)
	}
	return &Document{path: path, reader: r, width: w, height: h}, nil
}

// SlideCount returns the number of slides.
func (d *Document) SlideCount() int {
	return d.reader.SlideCount()
}

func (d *Document) check(index int) error {
	if index < 0 || index >= d.SlideCount() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrSlideRange, index, d.SlideCount())
	}
	return nil
}

// Image renders the slide at index (0-based).
func (d *Document) Image(index int, opts Options) (image.Image, error) {
	return d.image(context.Background(), index, opts)
}

func (d *Document) image(ctx context.Context, index int, opts Options) (image.Image, error) {
	if err := d.check(index); err != nil {
		return nil, err
	}
	slide, err := d.reader.Slide(index)
	if err != nil {
		return nil, fmt.Errorf("rendering slide %d: %w", index+1, err)
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultOptions().Width
	}
	scale := float64(width) / float64(d.width)
	height := int(math.Round(float64(d.height) * scale))

	p := newPainter(ctx, gg.NewContext(width, height), scale, opts.FontDirs)
	p.background(slide.Background, opts.Background)
	for _, sh := range slide.Shapes {
		p.shape(sh)
	}
	return p.dc.Image(), nil
}

// Save renders the slide at index (0-based) to an image file. A .jpg or
// .jpeg extension selects JPEG; anything else is written as PNG.
func (d *Document) Save(ctx context.Context, index int, out string, opts Options) error {
	img, err := d.image(ctx, index, opts)
	if err != nil {
		return err
	}

	f := imaging.PNG
	if format.Detect(out) == format.JPEG {
		f = imaging.JPEG
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := imaging.Encode(file, img, f, imaging.JPEGQuality(jpegQuality)); err != nil {
		file.Close()
		return fmt.Errorf("encoding slide %d: %w", index+1, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}

	logger.Info(ctx, "slide rendered", zap.String("input", d.path), zap.Int("slide", index+1), zap.String("path", out))
	return nil
}

// RenderSlide renders one slide of the presentation at in to out.
func RenderSlide(ctx context.Context, in string, index int, out string, opts Options) error {
	doc, err := Open(in)
	if err != nil {
		return err
	}
	return doc.Save(ctx, index, out, opts)
}

// RenderAll renders every slide. The pattern must contain one %d verb,
// replaced with the 1-based slide number.
func RenderAll(ctx context.Context, in, pattern string, opts Options) ([]string, error) {
	doc, err := Open(in)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, doc.SlideCount())
	for i := 0; i < doc.SlideCount(); i++ {
		out := fmt.Sprintf(pattern, i+1)
		if err := doc.Save(ctx, i, out, opts); err != nil {
			return nil, err
		}
		paths = append(paths, out)
	}
	return paths, nil
}

// SlideCount returns the number of slides of the presentation at path.
func SlideCount(path string) (int, error) {
	doc, err := Open(path)
	if err != nil {
		return 0, err
	}
	return doc.SlideCount(), nil
}
