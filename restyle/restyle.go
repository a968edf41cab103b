// Package restyle rewrites an existing presentation in the tech-business
// style. Slides are resized to 16:9, backgrounds are replaced and every text
// shape is classified as a title, a bullet list or body text by inspecting
// its content, then its runs and paragraphs are reformatted to match. Shapes
// without text get an empty text frame and are restyled as body text.
//
// Only the touched XML elements change. Every other part of the package,
// including media and layouts, is written back byte-for-byte.
package restyle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/techdeck/internal/logger"
	"github.com/tsawler/techdeck/model"
	"github.com/tsawler/techdeck/pptx"
	"github.com/tsawler/techdeck/techbiz"
	"github.com/tsawler/techdeck/theme"
)

// ErrMalformedSlide is returned for a slide part without common slide data.
var ErrMalformedSlide = errors.New("malformed slide: missing cSld")

// Class is the role a text shape is given by classification.
type Class int

const (
	ClassBody Class = iota
	ClassBullet
	ClassTitle
)

func (c Class) String() string {
	switch c {
	case ClassTitle:
		return "title"
	case ClassBullet:
		return "bullet"
	default:
		return "body"
	}
}

// Style is the character formatting applied to every run of a shape.
type Style struct {
	Size  float64 // points
	Bold  bool
	Color model.Color
}

// Options controls how a deck is restyled.
type Options struct {
	Width, Height model.EMU
	Background    model.Color
	Typeface      string

	// Classification
	Keywords       []string
	MinTitleLength int // runes; a title must be strictly longer
	BulletMarkers  []string

	Styles map[Class]Style

	Insets      model.Insets
	LineSpacing float64 // multiple of single spacing
	SpaceBefore float64 // points
	SpaceAfter  float64 // points
}

// DefaultOptions returns the tech-business restyle settings.
func DefaultOptions() Options {
	return Options{
		Width:          theme.Widescreen().Width,
		Height:         theme.Widescreen().Height,
		Background:     theme.BackgroundGray,
		Typeface:       theme.LatinFont,
		Keywords:       []string{"挑战", "方案", "强磁场", "科学", "工程"},
		MinTitleLength: 10,
		BulletMarkers:  []string{"•", "-", "·"},
		Styles: map[Class]Style{
			ClassTitle:  {Size: 48, Bold: true, Color: theme.Primary},
			ClassBullet: {Size: 22, Color: theme.DarkText},
			ClassBody:   {Size: 24, Color: theme.DarkText},
		},
		Insets: model.Insets{
			Left:   model.Inches(0.1),
			Right:  model.Inches(0.1),
			Top:    model.Inches(0.05),
			Bottom: model.Inches(0.05),
		},
		LineSpacing: 1.2,
		SpaceBefore: 6,
		SpaceAfter:  6,
	}
}

// Report summarizes a restyle run.
type Report struct {
	Slides  int
	Titles  int
	Bullets int
	Bodies  int

	// Created is set when the input was missing and the master deck was
	// written instead.
	Created bool
}

// Shapes returns the number of text shapes restyled.
func (r *Report) Shapes() int {
	return r.Titles + r.Bullets + r.Bodies
}

func (r *Report) count(c Class) {
	switch c {
	case ClassTitle:
		r.Titles++
	case ClassBullet:
		r.Bullets++
	default:
		r.Bodies++
	}
}

// TextParagraph is the classification input for one paragraph.
type TextParagraph struct {
	Text  string
	Level int
}

// Classify decides the role of a shape from its paragraphs.
//
// A shape is a title when its text is longer than MinTitleLength runes and
// contains a keyword. Otherwise it is a bullet list when any paragraph is
// indented or starts with a bullet marker, and body text when not.
// The length is counted on the text as written. Keyword and marker matching
// is done on NFKC-normalized text so full-width variants match their ASCII
// forms.
func Classify(paragraphs []TextParagraph, opts Options) Class {
	texts := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		texts[i] = p.Text
	}
	text := strings.Join(texts, "\n")

	if utf8.RuneCountInString(text) > opts.MinTitleLength {
		normalized := norm.NFKC.String(text)
		for _, kw := range opts.Keywords {
			if strings.Contains(normalized, norm.NFKC.String(kw)) {
				return ClassTitle
			}
		}
	}

	for _, p := range paragraphs {
		if p.Level > 0 {
			return ClassBullet
		}
		trimmed := strings.TrimSpace(norm.NFKC.String(p.Text))
		for _, marker := range opts.BulletMarkers {
			if strings.HasPrefix(trimmed, norm.NFKC.String(marker)) {
				return ClassBullet
			}
		}
	}

	return ClassBody
}

// File restyles the deck at in and saves the result to out.
func File(ctx context.Context, in, out string, opts Options) (*Report, error) {
	logger.Info(ctx, "loading presentation", zap.String("path", in))

	pkg, err := pptx.OpenPackage(in)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", in, err)
	}

	report, err := Apply(ctx, pkg, opts)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "saving transformed presentation", zap.String("path", out))
	if err := pkg.Save(out); err != nil {
		return nil, fmt.Errorf("saving %s: %w", out, err)
	}

	return report, nil
}

// TransformOrCreate restyles in into out when in exists. When it does not,
// the widescreen master deck is written to out instead.
func TransformOrCreate(ctx context.Context, in, out string, opts Options) (*Report, error) {
	_, err := os.Stat(in)
	if err == nil {
		return File(ctx, in, out, opts)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking input %s: %w", in, err)
	}

	logger.Warn(ctx, "input not found, creating new template", zap.String("input", in), zap.String("path", out))

	deck := techbiz.Master()
	if err := pptx.Save(out, deck); err != nil {
		return nil, err
	}

	return &Report{Slides: deck.SlideCount(), Created: true}, nil
}

// Apply restyles every slide of pkg in place.
func Apply(ctx context.Context, pkg *pptx.Package, opts Options) (*Report, error) {
	if err := pkg.SetSlideSize(int64(opts.Width), int64(opts.Height)); err != nil {
		return nil, fmt.Errorf("setting slide size: %w", err)
	}

	paths, err := pkg.SlidePaths()
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "processing slides", zap.Int("count", len(paths)))

	report := &Report{}
	for i, path := range paths {
		logger.Info(ctx, "processing slide", zap.Int("slide", i+1), zap.String("part", path))

		doc, err := pkg.Document(path)
		if err != nil {
			return nil, err
		}
		if err := restyleSlide(ctx, doc, opts, report); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		if err := pkg.SetDocument(path, doc); err != nil {
			return nil, err
		}
		report.Slides++
	}

	return report, nil
}

func restyleSlide(ctx context.Context, doc *etree.Document, opts Options, report *Report) error {
	root := doc.Root()
	if root == nil {
		return ErrMalformedSlide
	}
	cSld := root.SelectElement("cSld")
	if cSld == nil {
		return ErrMalformedSlide
	}

	if bg := cSld.SelectElement("bg"); bg != nil {
		cSld.RemoveChild(bg)
	}
	cSld.InsertChildAt(0, pptx.BackgroundElement(opts.Background))

	tree := cSld.SelectElement("spTree")
	if tree == nil {
		return nil
	}

	for _, sp := range tree.SelectElements("sp") {
		txBody := sp.SelectElement("txBody")
		if txBody == nil {
			txBody = addTextBody(sp)
		}

		class := Classify(paragraphsOf(txBody), opts)
		report.count(class)
		logger.Debug(ctx, "restyling shape", zap.String("class", class.String()))

		restyleTextBody(txBody, opts.Styles[class], opts)
	}

	return nil
}

// addTextBody gives a shape without text an empty text frame so it is
// restyled like any other shape. The frame follows spPr and p:style.
func addTextBody(sp *etree.Element) *etree.Element {
	tag := "txBody"
	if sp.Space != "" {
		tag = sp.Space + ":" + tag
	}
	body := etree.NewElement(tag)
	body.CreateElement("a:bodyPr")
	body.CreateElement("a:lstStyle")
	body.CreateElement("a:p")

	after := sp.SelectElement("style")
	if after == nil {
		after = sp.SelectElement("spPr")
	}
	if after == nil {
		sp.AddChild(body)
	} else {
		sp.InsertChildAt(after.Index()+1, body)
	}
	return body
}

func paragraphsOf(txBody *etree.Element) []TextParagraph {
	var paras []TextParagraph
	for _, p := range txBody.SelectElements("p") {
		para := TextParagraph{}
		if pPr := p.SelectElement("pPr"); pPr != nil {
			para.Level, _ = strconv.Atoi(pPr.SelectAttrValue("lvl", "0"))
		}

		var sb strings.Builder
		for _, child := range p.ChildElements() {
			switch child.Tag {
			case "r", "fld":
				if t := child.SelectElement("t"); t != nil {
					sb.WriteString(t.Text())
				}
			case "br":
				sb.WriteString("\v")
			}
		}
		para.Text = sb.String()
		paras = append(paras, para)
	}
	return paras
}

func restyleTextBody(txBody *etree.Element, st Style, opts Options) {
	bodyPr := txBody.SelectElement("bodyPr")
	if bodyPr == nil {
		bodyPr = etree.NewElement("a:bodyPr")
		txBody.InsertChildAt(0, bodyPr)
	}
	bodyPr.CreateAttr("lIns", emu(opts.Insets.Left))
	bodyPr.CreateAttr("tIns", emu(opts.Insets.Top))
	bodyPr.CreateAttr("rIns", emu(opts.Insets.Right))
	bodyPr.CreateAttr("bIns", emu(opts.Insets.Bottom))

	for _, p := range txBody.SelectElements("p") {
		for _, r := range p.SelectElements("r") {
			restyleRun(r, st, opts.Typeface)
		}
		restyleSpacing(p, opts)
	}
}

// Child order of a:rPr. Tags in one group are alternatives.
var runPropertyOrder = rank(
	[]string{"ln"},
	[]string{"noFill", "solidFill", "gradFill", "blipFill", "pattFill", "grpFill"},
	[]string{"effectLst", "effectDag"},
	[]string{"highlight"},
	[]string{"uLnTx", "uLn"},
	[]string{"uFillTx", "uFill"},
	[]string{"latin"},
	[]string{"ea"},
	[]string{"cs"},
	[]string{"sym"},
	[]string{"hlinkClick"},
	[]string{"hlinkMouseOver"},
	[]string{"rtl"},
	[]string{"extLst"},
)

// Child order of a:pPr.
var paragraphPropertyOrder = rank(
	[]string{"lnSpc"},
	[]string{"spcBef"},
	[]string{"spcAft"},
	[]string{"buClrTx", "buClr"},
	[]string{"buSzTx", "buSzPct", "buSzPts"},
	[]string{"buFontTx", "buFont"},
	[]string{"buNone", "buAutoNum", "buChar", "buBlip"},
	[]string{"tabLst"},
	[]string{"defRPr"},
	[]string{"extLst"},
)

var fillTags = []string{"noFill", "solidFill", "gradFill", "blipFill", "pattFill", "grpFill"}

func restyleRun(r *etree.Element, st Style, typeface string) {
	rPr := r.SelectElement("rPr")
	if rPr == nil {
		rPr = etree.NewElement("a:rPr")
		r.InsertChildAt(0, rPr)
	}

	rPr.CreateAttr("sz", strconv.Itoa(int(math.Round(st.Size*100))))
	if st.Bold {
		rPr.CreateAttr("b", "1")
	} else {
		rPr.CreateAttr("b", "0")
	}

	for _, tag := range fillTags {
		if fill := rPr.SelectElement(tag); fill != nil {
			rPr.RemoveChild(fill)
		}
	}
	insertOrdered(rPr, pptx.SolidFillElement(st.Color), runPropertyOrder)

	latin := rPr.SelectElement("latin")
	if latin == nil {
		latin = etree.NewElement("a:latin")
		insertOrdered(rPr, latin, runPropertyOrder)
	}
	latin.CreateAttr("typeface", typeface)
}

func restyleSpacing(p *etree.Element, opts Options) {
	pPr := p.SelectElement("pPr")
	if pPr == nil {
		pPr = etree.NewElement("a:pPr")
		p.InsertChildAt(0, pPr)
	}

	for _, tag := range []string{"lnSpc", "spcBef", "spcAft"} {
		if old := pPr.SelectElement(tag); old != nil {
			pPr.RemoveChild(old)
		}
	}

	insertOrdered(pPr, detach(pptx.LineSpacingElement(pPr, opts.LineSpacing)), paragraphPropertyOrder)
	insertOrdered(pPr, detach(pptx.SpacingElement(pPr, "a:spcBef", opts.SpaceBefore)), paragraphPropertyOrder)
	insertOrdered(pPr, detach(pptx.SpacingElement(pPr, "a:spcAft", opts.SpaceAfter)), paragraphPropertyOrder)
}

// insertOrdered places child before the first sibling that must follow it.
// Unknown siblings are treated as trailing.
func insertOrdered(parent, child *etree.Element, order map[string]int) {
	want := order[child.Tag]
	for _, el := range parent.ChildElements() {
		pos, ok := order[el.Tag]
		if !ok || pos > want {
			parent.InsertChildAt(el.Index(), child)
			return
		}
	}
	parent.AddChild(child)
}

func detach(el *etree.Element) *etree.Element {
	if parent := el.Parent(); parent != nil {
		parent.RemoveChild(el)
	}
	return el
}

func rank(groups ...[]string) map[string]int {
	m := make(map[string]int)
	for i, group := range groups {
		for _, tag := range group {
			m[tag] = i
		}
	}
	return m
}

func emu(v model.EMU) string {
	return strconv.FormatInt(int64(v), 10)
}
