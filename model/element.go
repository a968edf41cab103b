package model

import "strings"

// ShapeKind represents the geometry of a shape
type ShapeKind int

const (
	ShapeTextBox ShapeKind = iota
	ShapeRectangle
	ShapeRoundedRectangle
	ShapeOval
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeTextBox:
		return "TextBox"
	case ShapeRectangle:
		return "Rectangle"
	case ShapeRoundedRectangle:
		return "RoundedRectangle"
	case ShapeOval:
		return "Oval"
	default:
		return "Unknown"
	}
}

// PlaceholderType marks a shape as a title, subtitle or body so readers can
// recognize its role. The zero value means the shape is not a placeholder.
type PlaceholderType string

const (
	PlaceholderNone     PlaceholderType = ""
	PlaceholderTitle    PlaceholderType = "title"
	PlaceholderCtrTitle PlaceholderType = "ctrTitle"
	PlaceholderSubTitle PlaceholderType = "subTitle"
	PlaceholderBody     PlaceholderType = "body"
)

// Align is the horizontal alignment of a paragraph
type Align int

const (
	AlignInherit Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Anchor is the vertical anchoring of text within its frame
type Anchor int

const (
	AnchorInherit Anchor = iota
	AnchorTop
	AnchorMiddle
	AnchorBottom
)

// Shape is a positioned visual element on a slide
type Shape struct {
	Kind        ShapeKind
	Name        string
	Frame       Rect
	Fill        *Color // nil means no fill
	Line        *Color // nil means the default outline unless NoLine is set
	NoLine      bool
	Placeholder PlaceholderType
	Text        *TextFrame
}

// TextFrame returns the shape's text frame, creating an empty one if needed
func (s *Shape) TextFrame() *TextFrame {
	if s.Text == nil {
		s.Text = NewTextFrame()
	}
	return s.Text
}

// SetSolid fills the shape and strokes its outline with the same color
func (s *Shape) SetSolid(c Color) *Shape {
	s.Fill = c.Ptr()
	s.Line = c.Ptr()
	s.NoLine = false
	return s
}

// Insets are the internal margins of a text frame
type Insets struct {
	Left, Right, Top, Bottom EMU
}

// TextFrame holds the paragraphs of a shape. It always has at least one paragraph.
type TextFrame struct {
	WordWrap   bool
	Anchor     Anchor
	Insets     *Insets
	Paragraphs []*Paragraph
}

// NewTextFrame creates a text frame with a single empty paragraph
func NewTextFrame() *TextFrame {
	return &TextFrame{Paragraphs: []*Paragraph{{}}}
}

// Paragraph returns the paragraph at index i, or nil if out of range
func (tf *TextFrame) Paragraph(i int) *Paragraph {
	if i < 0 || i >= len(tf.Paragraphs) {
		return nil
	}
	return tf.Paragraphs[i]
}

// AddParagraph appends an empty paragraph and returns it
func (tf *TextFrame) AddParagraph() *Paragraph {
	p := &Paragraph{}
	tf.Paragraphs = append(tf.Paragraphs, p)
	return p
}

// Clear removes all paragraphs except a single empty one
func (tf *TextFrame) Clear() {
	tf.Paragraphs = []*Paragraph{{}}
}

// Text returns the text of all paragraphs joined by newlines
func (tf *TextFrame) Text() string {
	parts := make([]string, len(tf.Paragraphs))
	for i, p := range tf.Paragraphs {
		parts[i] = p.Text
	}
	return strings.Join(parts, "\n")
}

// Paragraph is a run of uniformly formatted text. A newline inside Text is a
// line break within the paragraph, not a new paragraph.
type Paragraph struct {
	Text        string
	Align       Align
	Level       int
	LineSpacing float64 // multiple of single spacing; 0 inherits
	SpaceBefore float64 // points; 0 inherits
	SpaceAfter  float64 // points; 0 inherits
	Font        Font
}

// Lines returns the paragraph text split at line breaks
func (p *Paragraph) Lines() []string {
	return strings.Split(p.Text, "\n")
}

// Font describes character formatting. Zero values inherit from the theme.
type Font struct {
	Name  string
	Size  float64 // points
	Bold  *bool
	Color *Color
}

// IsBold reports whether bold is explicitly on
func (f Font) IsBold() bool {
	return f.Bold != nil && *f.Bold
}

// Bool returns a pointer to b, for optional boolean fields
func Bool(b bool) *bool {
	return &b
}
