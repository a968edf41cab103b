// Package techbiz builds slides in the tech-business visual style: a title
// slide, an agenda, bullet content, two columns and a closing slide.
package techbiz

import (
	"strconv"

	"github.com/tsawler/techdeck/model"
	"github.com/tsawler/techdeck/theme"
)

// Builder appends styled slides to a deck laid out with a fixed geometry.
type Builder struct {
	Deck     *model.Deck
	Geometry theme.Geometry
}

// NewBuilder creates a builder over an empty deck of the given geometry.
func NewBuilder(g theme.Geometry) *Builder {
	return &Builder{Deck: g.NewDeck(), Geometry: g}
}

// AddTitleSlide adds the opening slide: gray background, a cyan bar on the
// left edge, a large title and a subtitle.
func (b *Builder) AddTitleSlide(title, subtitle string) *model.Slide {
	g := b.Geometry
	s := b.Deck.AddSlide()

	b.fillBackground(s, theme.BackgroundGray)
	s.AddShape(model.ShapeRectangle, model.NewRect(0, 0, model.Inches(0.2), g.Height)).SetSolid(theme.CyanGreen)

	left := g.MarginLeft + model.Inches(0.3)
	width := g.ContentWidth() - model.Inches(0.3)

	tb := s.AddTextBox(model.NewRect(left, model.Inches(1.5), width, model.Inches(1.5)))
	tb.Placeholder = model.PlaceholderCtrTitle
	tb.Text.WordWrap = true
	setText(tb.Text.Paragraph(0), title, model.AlignLeft, font(60, true, theme.DeepTechBlue))

	sub := s.AddTextBox(model.NewRect(left, model.Inches(3.2), width, model.Inches(1.0)))
	sub.Placeholder = model.PlaceholderSubTitle
	setText(sub.Text.Paragraph(0), subtitle, model.AlignLeft, font(24, false, theme.DarkText))

	return s
}

// AddAgendaSlide adds a numbered agenda. Each item gets a blue numbered
// circle with the item text beside it.
func (b *Builder) AddAgendaSlide(title string, items []string) *model.Slide {
	g := b.Geometry
	s := b.Deck.AddSlide()
	b.addHeader(s, title, model.AlignInherit)

	top := g.MarginTop + model.Inches(1.3)
	itemHeight := model.Inches(0.6)

	for i, item := range items {
		y := top + model.EMU(i)*itemHeight

		circle := s.AddShape(model.ShapeOval, model.NewRect(g.MarginLeft, y, model.Inches(0.4), model.Inches(0.4)))
		circle.SetSolid(theme.DeepTechBlue)
		tf := circle.TextFrame()
		tf.Anchor = model.AnchorMiddle
		setText(tf.Paragraph(0), strconv.Itoa(i+1), model.AlignCenter, font(18, true, theme.White))

		box := s.AddTextBox(model.NewRect(g.MarginLeft+model.Inches(0.6), y, g.ContentWidth()-model.Inches(0.6), itemHeight))
		box.Text.Anchor = model.AnchorMiddle
		setText(box.Text.Paragraph(0), item, model.AlignInherit, font(24, false, theme.DarkText))
	}

	return s
}

// AddContentSlide adds a titled slide with one bullet paragraph per item.
func (b *Builder) AddContentSlide(title string, items []string) *model.Slide {
	g := b.Geometry
	s := b.Deck.AddSlide()
	b.addHeader(s, title, model.AlignLeft)

	top := g.MarginTop + model.Inches(1.2)
	box := s.AddTextBox(model.NewRect(
		g.MarginLeft+model.Inches(0.2),
		top,
		g.ContentWidth()-model.Inches(0.2),
		g.Height-top-g.MarginBottom,
	))
	box.Placeholder = model.PlaceholderBody
	box.Text.WordWrap = true
	addBullets(box.Text, items, 24, 10)

	return s
}

// AddTwoColumnSlide adds a titled slide with two bullet columns separated
// by a 0.3in gutter.
func (b *Builder) AddTwoColumnSlide(title string, left, right []string) *model.Slide {
	g := b.Geometry
	s := b.Deck.AddSlide()
	b.addHeader(s, title, model.AlignInherit)

	gutter := model.Inches(0.3)
	top := g.MarginTop + model.Inches(1.2)
	width := (g.ContentWidth() - gutter) / 2
	height := g.Height - top - g.MarginBottom

	for i, items := range [][]string{left, right} {
		x := g.MarginLeft + model.EMU(i)*(width+gutter)
		col := s.AddTextBox(model.NewRect(x, top, width, height))
		col.Text.WordWrap = true
		addBullets(col.Text, items, 20, 8)
	}

	return s
}

// AddConclusionSlide adds the closing slide: blue background, a cyan
// rounded panel on the right and white text.
func (b *Builder) AddConclusionSlide(title, text string) *model.Slide {
	g := b.Geometry
	s := b.Deck.AddSlide()

	b.fillBackground(s, theme.DeepTechBlue)

	panel := s.AddShape(model.ShapeRoundedRectangle, model.NewRect(
		g.Width-model.Inches(3.5), model.Inches(1.0), model.Inches(3.0), model.Inches(3.5),
	))
	panel.Fill = theme.CyanGreen.Ptr()
	panel.NoLine = true

	width := g.Width - model.Inches(4.0)

	tb := s.AddTextBox(model.NewRect(g.MarginLeft, model.Inches(1.5), width, model.Inches(1.2)))
	tb.Placeholder = model.PlaceholderTitle
	setText(tb.Text.Paragraph(0), title, model.AlignInherit, font(56, true, theme.White))

	body := s.AddTextBox(model.NewRect(g.MarginLeft, model.Inches(3.0), width, model.Inches(2.0)))
	body.Text.WordWrap = true
	setText(body.Text.Paragraph(0), text, model.AlignInherit, font(24, false, theme.White))

	return s
}

// fillBackground covers the slide with a rectangle outlined in its own color.
func (b *Builder) fillBackground(s *model.Slide, c model.Color) {
	s.AddShape(model.ShapeRectangle, b.Deck.Bounds()).SetSolid(c)
}

// addHeader draws the white background, the top accent bar and the slide
// title shared by agenda, content and two-column slides.
func (b *Builder) addHeader(s *model.Slide, title string, align model.Align) {
	g := b.Geometry
	b.fillBackground(s, theme.White)
	s.AddShape(model.ShapeRectangle, model.NewRect(0, 0, g.Width, model.Inches(0.15))).SetSolid(theme.CyanGreen)

	tb := s.AddTextBox(model.NewRect(g.MarginLeft, g.MarginTop+model.Inches(0.2), g.ContentWidth(), model.Inches(0.8)))
	tb.Placeholder = model.PlaceholderTitle
	setText(tb.Text.Paragraph(0), title, align, font(40, true, theme.DeepTechBlue))
}

func addBullets(tf *model.TextFrame, items []string, size, spacing float64) {
	for i, item := range items {
		p := tf.Paragraph(i)
		if p == nil {
			p = tf.AddParagraph()
		}
		setText(p, "• "+item, model.AlignInherit, font(size, false, theme.DarkText))
		p.SpaceBefore = spacing
		p.SpaceAfter = spacing
	}
}

func setText(p *model.Paragraph, text string, align model.Align, f model.Font) {
	p.Text = text
	p.Align = align
	p.Font = f
}

// font builds a run font. Bold is only written when set, matching text
// that inherits weight from the theme.
func font(size float64, bold bool, c model.Color) model.Font {
	f := model.Font{Size: size, Color: c.Ptr()}
	if bold {
		f.Bold = model.Bool(true)
	}
	return f
}
