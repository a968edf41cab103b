package techdeck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/techdeck/format"
	"github.com/tsawler/techdeck/pptx"
	"github.com/tsawler/techdeck/render"
	"github.com/tsawler/techdeck/restyle"
)

// ErrNoFile is returned by operations that need a file on disk when the
// Deck was created from a reader.
var ErrNoFile = errors.New("deck has no file")

// Deck provides a fluent interface over a presentation.
// Each configuration method returns a new Deck instance, making it
// safe for concurrent use and allowing method chaining.
type Deck struct {
	// Source
	filename string
	reader   *pptx.Reader

	// Configuration
	options DeckOptions
}

// clone creates a shallow copy of the Deck with a deep copy of options.
func (d *Deck) clone() *Deck {
	return &Deck{
		filename: d.filename,
		reader:   d.reader,
		options:  d.options.clone(),
	}
}

// ensureReader parses the file if not already done.
func (d *Deck) ensureReader() error {
	if d.reader != nil {
		return nil
	}
	if d.filename == "" {
		return fmt.Errorf("no filename specified")
	}
	if f := format.Detect(d.filename); f != format.PPTX {
		return fmt.Errorf("unsupported file format: %s", f)
	}

	r, err := pptx.Open(d.filename)
	if err != nil {
		return fmt.Errorf("failed to open PPTX: %w", err)
	}
	d.reader = r
	return nil
}

// ============================================================================
// Configuration Methods (return new Deck instance)
// ============================================================================

// Slides selects which slides Text, Markdown, Titles and Render use
// (1-indexed). Multiple calls are cumulative.
//
// Example:
//
//	text, err := techdeck.Open("deck.pptx").Slides(1, 3).Text()
func (d *Deck) Slides(slides ...int) *Deck {
	newDeck := d.clone()
	newDeck.options.slides = append(newDeck.options.slides, slides...)
	return newDeck
}

// SlideRange selects a range of slides (1-indexed, inclusive).
func (d *Deck) SlideRange(start, end int) *Deck {
	newDeck := d.clone()
	for i := start; i <= end; i++ {
		newDeck.options.slides = append(newDeck.options.slides, i)
	}
	return newDeck
}

// Keywords replaces the words that mark a text shape as a title when
// restyling.
func (d *Deck) Keywords(keywords ...string) *Deck {
	newDeck := d.clone()
	newDeck.options.restyle.Keywords = append([]string(nil), keywords...)
	return newDeck
}

// Width sets the pixel width of rendered images.
func (d *Deck) Width(px int) *Deck {
	newDeck := d.clone()
	newDeck.options.render.Width = px
	return newDeck
}

// FontDirs adds directories searched for fonts when rendering.
func (d *Deck) FontDirs(dirs ...string) *Deck {
	newDeck := d.clone()
	newDeck.options.render.FontDirs = append(newDeck.options.render.FontDirs, dirs...)
	return newDeck
}

// ============================================================================
// Terminal Operations
// ============================================================================

// SlideCount returns the number of slides in the presentation.
func (d *Deck) SlideCount() (int, error) {
	if err := d.ensureReader(); err != nil {
		return 0, err
	}
	return d.reader.SlideCount(), nil
}

// Text returns the plain text of the selected slides, separated by blank lines.
func (d *Deck) Text() (string, error) {
	slides, err := d.selected()
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(slides))
	for _, s := range slides {
		if text := s.GetText(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

// Markdown returns the selected slides as Markdown separated by rules.
func (d *Deck) Markdown() (string, error) {
	slides, err := d.selected()
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(slides))
	for _, s := range slides {
		parts = append(parts, s.GetMarkdown())
	}
	return strings.Join(parts, "\n\n---\n\n"), nil
}

// Titles returns the title of each selected slide; empty when a slide has none.
func (d *Deck) Titles() ([]string, error) {
	slides, err := d.selected()
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(slides))
	for i, s := range slides {
		titles[i] = s.Title
	}
	return titles, nil
}

// Restyle applies the tech-business style to every slide and saves the
// result to out. The source file is not modified.
func (d *Deck) Restyle(ctx context.Context, out string) (*restyle.Report, error) {
	if d.filename != "" && d.reader == nil {
		return restyle.File(ctx, d.filename, out, d.options.restyle)
	}
	if err := d.ensureReader(); err != nil {
		return nil, err
	}

	// Work on a copy so the reader's package is left untouched.
	data, err := d.reader.Package().Bytes()
	if err != nil {
		return nil, err
	}
	pkg, err := pptx.ReadPackage(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	report, err := restyle.Apply(ctx, pkg, d.options.restyle)
	if err != nil {
		return nil, err
	}
	if err := pkg.Save(out); err != nil {
		return nil, err
	}
	return report, nil
}

// Render rasterizes the selected slides. The pattern must contain one %d
// verb, replaced with the 1-based slide number.
func (d *Deck) Render(ctx context.Context, pattern string) ([]string, error) {
	if d.filename == "" {
		return nil, ErrNoFile
	}

	indexes, err := d.resolveSlides()
	if err != nil {
		return nil, err
	}

	doc, err := render.Open(d.filename)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(indexes))
	for _, i := range indexes {
		out := fmt.Sprintf(pattern, i+1)
		if err := doc.Save(ctx, i, out, d.options.render); err != nil {
			return nil, err
		}
		paths = append(paths, out)
	}
	return paths, nil
}

// resolveSlides returns the 0-based indexes of the selected slides.
func (d *Deck) resolveSlides() ([]int, error) {
	if err := d.ensureReader(); err != nil {
		return nil, err
	}

	count := d.reader.SlideCount()
	if len(d.options.slides) == 0 {
		indexes := make([]int, count)
		for i := range indexes {
			indexes[i] = i
		}
		return indexes, nil
	}

	indexes := make([]int, 0, len(d.options.slides))
	for _, n := range d.options.slides {
		if n < 1 || n > count {
			return nil, fmt.Errorf("%w: slide %d (deck has %d)", render.ErrSlideRange, n, count)
		}
		indexes = append(indexes, n-1)
	}
	return indexes, nil
}

func (d *Deck) selected() ([]*pptx.Slide, error) {
	indexes, err := d.resolveSlides()
	if err != nil {
		return nil, err
	}

	slides := make([]*pptx.Slide, 0, len(indexes))
	for _, i := range indexes {
		s, err := d.reader.Slide(i)
		if err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return slides, nil
}
