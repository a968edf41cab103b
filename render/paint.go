package render

import (
	"context"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/tsawler/techdeck/fonts"
	"github.com/tsawler/techdeck/model"
	"github.com/tsawler/techdeck/pptx"
)

// DrawingML defaults for text frames that do not set their own.
const (
	defaultInsetX   = 91440
	defaultInsetY   = 45720
	defaultFontSize = 1800 // hundredths of a point
	defaultOutline  = 9525
	roundRectRadius = 0.16667 // of the shorter side
)

type faceKey struct {
	bold bool
	size float64
}

// painter draws the shapes of one slide onto a gg context scaled from EMU
// to pixels.
type painter struct {
	ctx     context.Context
	dc      *gg.Context
	scale   float64
	bold    []string
	regular []string
	faces   map[faceKey]fonts.Face
}

func newPainter(ctx context.Context, dc *gg.Context, scale float64, fontDirs []string) *painter {
	bold, regular := fontCandidates(fontDirs)
	return &painter{
		ctx:     ctx,
		dc:      dc,
		scale:   scale,
		bold:    bold,
		regular: regular,
		faces:   make(map[faceKey]fonts.Face),
	}
}

// fontCandidates lists the font files in dirs ahead of the system faces.
// Files with "bold" in the name lead the bold list.
func fontCandidates(dirs []string) (bold, regular []string) {
	var dirBold, dirRegular []string
	for _, dir := range dirs {
		for _, pattern := range []string{"*.ttf", "*.otf", "*.ttc"} {
			matches, _ := filepath.Glob(filepath.Join(dir, pattern))
			for _, m := range matches {
				if strings.Contains(strings.ToLower(filepath.Base(m)), "bold") {
					dirBold = append(dirBold, m)
				} else {
					dirRegular = append(dirRegular, m)
				}
			}
		}
	}

	bold = append(bold, dirBold...)
	bold = append(bold, fonts.DefaultBold...)
	bold = append(bold, dirRegular...)
	bold = append(bold, fonts.DefaultRegular...)

	regular = append(regular, dirRegular...)
	regular = append(regular, fonts.DefaultRegular...)
	regular = append(regular, dirBold...)
	return bold, regular
}

func (p *painter) px(v int64) float64 {
	return float64(v) * p.scale
}

func parseColor(hex string) (color.RGBA, bool) {
	if hex == "" {
		return color.RGBA{}, false
	}
	c, err := model.ParseHex(hex)
	if err != nil {
		return color.RGBA{}, false
	}
	return c.ToRGBA(), true
}

func (p *painter) background(hex string, override *color.RGBA) {
	var c color.Color = color.White
	if bg, ok := parseColor(hex); ok {
		c = bg
	}
	if override != nil {
		c = *override
	}
	p.dc.SetColor(c)
	p.dc.Clear()
}

func (p *painter) shape(sh pptx.TextBlock) {
	x, y, w, h := p.px(sh.X), p.px(sh.Y), p.px(sh.Width), p.px(sh.Height)
	if w <= 0 || h <= 0 {
		return
	}

	if c, ok := parseColor(sh.Fill); ok {
		p.path(sh.Geometry, x, y, w, h)
		p.dc.SetColor(c)
		p.dc.Fill()
	}
	if c, ok := parseColor(sh.Line); ok && !sh.NoLine {
		p.path(sh.Geometry, x, y, w, h)
		p.dc.SetColor(c)
		p.dc.SetLineWidth(math.Max(1, p.px(defaultOutline)))
		p.dc.Stroke()
	}
	if sh.Text != "" {
		p.text(sh, x, y, w, h)
	}
}

func (p *painter) path(geometry string, x, y, w, h float64) {
	switch geometry {
	case "ellipse":
		p.dc.DrawEllipse(x+w/2, y+h/2, w/2, h/2)
	case "roundRect":
		p.dc.DrawRoundedRectangle(x, y, w, h, math.Min(w, h)*roundRectRadius)
	default:
		p.dc.DrawRectangle(x, y, w, h)
	}
}

// textLine is one laid out line of a paragraph.
type textLine struct {
	text   string
	face   fonts.Face
	color  color.RGBA
	align  string
	ascent float64
	height float64
	before float64
	after  float64
}

func (p *painter) text(sh pptx.TextBlock, x, y, w, h float64) {
	l, t, r, b := int64(defaultInsetX), int64(defaultInsetY), int64(defaultInsetX), int64(defaultInsetY)
	if len(sh.Insets) == 4 {
		l, t, r, b = sh.Insets[0], sh.Insets[1], sh.Insets[2], sh.Insets[3]
	}
	x += p.px(l)
	y += p.px(t)
	w -= p.px(l + r)
	h -= p.px(t + b)
	if w <= 0 {
		return
	}

	var lines []textLine
	for _, para := range sh.Paragraphs {
		lines = append(lines, p.layout(para, w, sh.WordWrap)...)
	}

	total := 0.0
	for _, ln := range lines {
		total += ln.before + ln.height + ln.after
	}
	switch sh.Anchor {
	case "ctr":
		y += (h - total) / 2
	case "b":
		y += h - total
	}

	for _, ln := range lines {
		y += ln.before
		ax, anchor := x, 0.0
		switch ln.align {
		case "ctr":
			ax, anchor = x+w/2, 0.5
		case "r":
			ax, anchor = x+w, 1
		}
		p.dc.SetFontFace(ln.face)
		p.dc.SetColor(ln.color)
		p.dc.DrawStringAnchored(ln.text, ax, y+ln.ascent, anchor, 0)
		y += ln.height + ln.after
	}
}

// layout breaks a paragraph into lines. The first run sets the face and
// color of the whole paragraph.
func (p *painter) layout(para pptx.Paragraph, width float64, wrap bool) []textLine {
	size, bold, c := defaultFontSize, false, color.RGBA{A: 0xff}
	if len(para.Runs) > 0 {
		run := para.Runs[0]
		if run.FontSize > 0 {
			size = run.FontSize
		}
		bold = run.Bold
		if rc, ok := parseColor(run.Color); ok {
			c = rc
		}
	}

	// hundredths of a point to EMU
	face := p.face(bold, p.px(int64(size)*127))
	p.dc.SetFontFace(face)
	m := face.Metrics()

	spacing := 1.0
	if para.LineSpacing > 0 {
		spacing = float64(para.LineSpacing) / 100000
	}

	var texts []string
	for _, line := range strings.Split(para.Text, "\n") {
		if !wrap || line == "" {
			texts = append(texts, line)
			continue
		}
		for _, wrapped := range p.dc.WordWrap(line, width) {
			texts = append(texts, p.breakRunes(wrapped, width)...)
		}
	}

	lines := make([]textLine, len(texts))
	for i, s := range texts {
		lines[i] = textLine{
			text:   s,
			face:   face,
			color:  c,
			align:  para.Alignment,
			ascent: float64(m.Ascent) / 64,
			height: float64(m.Height) / 64 * spacing,
		}
	}
	if len(lines) > 0 {
		lines[0].before = p.px(int64(para.SpaceBefore) * 127)
		lines[len(lines)-1].after = p.px(int64(para.SpaceAfter) * 127)
	}
	return lines
}

// breakRunes splits s wherever it overflows width. Scripts without spaces
// between words get no break opportunities from WordWrap.
func (p *painter) breakRunes(s string, width float64) []string {
	if w, _ := p.dc.MeasureString(s); w <= width {
		return []string{s}
	}

	var out []string
	var cur []rune
	for _, r := range s {
		next := append(cur, r)
		if w, _ := p.dc.MeasureString(string(next)); w > width && len(cur) > 0 {
			out = append(out, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

func (p *painter) face(bold bool, size float64) fonts.Face {
	size = math.Max(1, math.Round(size*2)/2)
	key := faceKey{bold: bold, size: size}
	if f, ok := p.faces[key]; ok {
		return f
	}

	candidates := p.regular
	if bold {
		candidates = p.bold
	}
	f := fonts.Load(p.ctx, size, candidates...)
	p.faces[key] = f
	return f
}
