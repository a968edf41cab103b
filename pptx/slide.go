package pptx

import "strings"

// Slide represents a parsed slide.
type Slide struct {
	Index      int         // 0-indexed slide number
	Path       string      // Part name, e.g. ppt/slides/slide1.xml
	Title      string      // Slide title (from title placeholder)
	Background string      // Solid background color as RRGGBB, if set on the slide
	Content    []TextBlock // Text content in z-order
	Shapes     []TextBlock // Every shape in z-order, with or without text
}

// TextBlock represents a shape and the text it carries, if any.
type TextBlock struct {
	Name        string
	Text        string
	Paragraphs  []Paragraph
	IsTitle     bool   // Is this the slide title?
	IsSubtitle  bool   // Is this a subtitle?
	IsTextBox   bool   // Created as a text box rather than an autoshape
	Placeholder string // Placeholder type (title, body, etc.)
	Geometry    string // Preset geometry: rect, roundRect, ellipse
	Fill        string // Solid fill as RRGGBB
	Line        string // Solid outline as RRGGBB
	NoLine      bool   // Outline explicitly removed
	Anchor      string // t, ctr, b
	WordWrap    bool
	Insets      []int64 // left, top, right, bottom in EMUs; nil when inherited
	X, Y        int64   // Position in EMUs
	Width       int64   // Width in EMUs
	Height      int64   // Height in EMUs
}

// Paragraph represents a paragraph within a text block.
type Paragraph struct {
	Text        string
	Level       int    // Bullet/indent level (0 = top level)
	IsBullet    bool   // Has bullet point
	IsNumbered  bool   // Is numbered list
	BulletChar  string // Bullet character (if custom)
	Alignment   string // l, ctr, r, just
	LineSpacing int    // Percentage in thousandths (120000 = 1.2 lines); 0 when inherited
	SpaceBefore int    // Hundredths of a point; 0 when inherited
	SpaceAfter  int    // Hundredths of a point; 0 when inherited
	Runs        []Run  // Text runs with formatting
}

// Run represents a text run with consistent formatting.
type Run struct {
	Text     string
	Bold     bool
	Italic   bool
	FontSize int    // In hundredths of a point
	Typeface string // Latin typeface
	Color    string // Solid color as RRGGBB
}

// GetText returns all text from the slide as a single string.
func (s *Slide) GetText() string {
	var b strings.Builder

	if s.Title != "" {
		b.WriteString(s.Title)
		b.WriteString("\n\n")
	}

	for _, block := range s.Content {
		if block.IsTitle {
			continue
		}
		for _, para := range block.Paragraphs {
			if para.Text == "" {
				continue
			}
			if para.IsBullet || para.IsNumbered {
				b.WriteString(strings.Repeat("  ", para.Level))
				if para.BulletChar != "" && !para.IsNumbered {
					b.WriteString(para.BulletChar + " ")
				} else {
					b.WriteString("• ")
				}
			}
			b.WriteString(para.Text)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// GetMarkdown returns the slide content as markdown.
func (s *Slide) GetMarkdown() string {
	var b strings.Builder

	if s.Title != "" {
		b.WriteString("# " + s.Title + "\n\n")
	}

	for _, block := range s.Content {
		if block.IsTitle {
			continue
		}
		for _, para := range block.Paragraphs {
			if para.Text == "" {
				continue
			}
			if para.IsBullet || para.IsNumbered {
				indent := strings.Repeat("  ", para.Level)
				if para.IsNumbered {
					b.WriteString(indent + "1. " + para.Text + "\n")
				} else {
					b.WriteString(indent + "- " + para.Text + "\n")
				}
			} else {
				b.WriteString(para.Text + "\n\n")
			}
		}
	}

	return b.String()
}

// Runs returns every run on the slide in order.
func (s *Slide) Runs() []Run {
	var runs []Run
	for _, block := range s.Content {
		for _, para := range block.Paragraphs {
			runs = append(runs, para.Runs...)
		}
	}
	return runs
}

// Block returns the first text block whose text contains substr.
func (s *Slide) Block(substr string) (TextBlock, bool) {
	for _, block := range s.Content {
		if strings.Contains(block.Text, substr) {
			return block, true
		}
	}
	return TextBlock{}, false
}
