package model

import "time"

// Deck represents a complete slide deck
type Deck struct {
	Metadata Metadata
	Width    EMU
	Height   EMU
	Slides   []*Slide
}

// Metadata contains deck-level document properties
type Metadata struct {
	Title    string
	Subject  string
	Creator  string
	Keywords []string
	Created  time.Time
}

// NewDeck creates an empty deck with the given slide size
func NewDeck(width, height EMU) *Deck {
	return &Deck{
		Width:  width,
		Height: height,
		Slides: make([]*Slide, 0),
	}
}

// AddSlide appends an empty slide and returns it
func (d *Deck) AddSlide() *Slide {
	s := &Slide{
		Number: len(d.Slides) + 1,
		Shapes: make([]*Shape, 0),
	}
	d.Slides = append(d.Slides, s)
	return s
}

// GetSlide returns a slide by number (1-indexed)
func (d *Deck) GetSlide(number int) *Slide {
	if number < 1 || number > len(d.Slides) {
		return nil
	}
	return d.Slides[number-1]
}

// SlideCount returns the number of slides
func (d *Deck) SlideCount() int {
	return len(d.Slides)
}

// Bounds returns the full slide rectangle
func (d *Deck) Bounds() Rect {
	return NewRect(0, 0, d.Width, d.Height)
}

// Slide is an ordered collection of shapes. Shapes added later are drawn on top.
type Slide struct {
	Number     int
	Background *Color // nil inherits the master background
	Shapes     []*Shape
}

// AddShape appends a shape of the given kind
func (s *Slide) AddShape(kind ShapeKind, frame Rect) *Shape {
	sh := &Shape{Kind: kind, Frame: frame}
	s.Shapes = append(s.Shapes, sh)
	return sh
}

// AddTextBox appends a text box with an empty text frame
func (s *Slide) AddTextBox(frame Rect) *Shape {
	sh := s.AddShape(ShapeTextBox, frame)
	sh.Text = NewTextFrame()
	return sh
}

// Title returns the text of the first title placeholder, or ""
func (s *Slide) Title() string {
	for _, sh := range s.Shapes {
		if sh.Text == nil {
			continue
		}
		if sh.Placeholder == PlaceholderTitle || sh.Placeholder == PlaceholderCtrTitle {
			return sh.Text.Text()
		}
	}
	return ""
}

// Texts returns the text of every shape that has a text frame, in z-order
func (s *Slide) Texts() []string {
	var texts []string
	for _, sh := range s.Shapes {
		if sh.Text != nil {
			texts = append(texts, sh.Text.Text())
		}
	}
	return texts
}
