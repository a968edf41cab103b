package pptx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/beevik/etree"

	"github.com/tsawler/techdeck/model"
)

// ErrInvalidSize is returned when a deck has a non-positive slide size.
var ErrInvalidSize = errors.New("slide size must be positive")

// application is recorded in docProps/app.xml of every generated file.
const application = "techdeck"

// default outline width for shapes with an explicit line color
const lineWidth = 9525

// Save writes deck to filename as a PPTX file, replacing any existing file.
func Save(filename string, deck *model.Deck) error {
	pkg, err := Build(deck)
	if err != nil {
		return err
	}
	return pkg.Save(filename)
}

// Encode writes deck to w as a PPTX package.
func Encode(w io.Writer, deck *model.Deck) error {
	pkg, err := Build(deck)
	if err != nil {
		return err
	}
	_, err = pkg.WriteTo(w)
	return err
}

// Build assembles deck into an in-memory package.
//
// GoPPT lays out the parts and serializes shapes and runs. Formatting it has
// no setter for (percentage line spacing, insets, fractional font sizes,
// outline removal, text on preset geometry) is applied to the slide XML
// afterwards.
func Build(deck *model.Deck) (*Package, error) {
	if deck.Width <= 0 || deck.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, deck.Width, deck.Height)
	}

	var buf bytes.Buffer
	if err := newPresentation(deck).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing presentation: %w", err)
	}
	pkg, err := ReadPackage(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return nil, err
	}
	if err := finish(pkg, deck); err != nil {
		return nil, err
	}
	return pkg, nil
}

func newPresentation(deck *model.Deck) *ppt.Presentation {
	pres := ppt.New()
	pres.GetLayout().SetCustomLayout(int64(deck.Width), int64(deck.Height))
	setProperties(pres.GetDocumentProperties(), deck.Metadata)

	for i, s := range deck.Slides {
		// a new presentation already holds one blank slide
		slide := pres.GetAllSlides()[0]
		if i > 0 {
			slide = pres.CreateSlide()
		}
		if s.Background != nil {
			slide.SetBackground(ppt.NewFill().SetSolid(pptColor(*s.Background)))
		}
		for j, sh := range s.Shapes {
			addShape(slide, sh, j+2)
		}
	}
	return pres
}

func setProperties(props *ppt.DocumentProperties, meta model.Metadata) {
	props.Title = meta.Title
	props.Subject = meta.Subject
	props.Creator = meta.Creator
	props.LastModifiedBy = meta.Creator
	props.Keywords = strings.Join(meta.Keywords, ", ")
	if !meta.Created.IsZero() {
		props.Created = meta.Created
		props.Modified = meta.Created
	}
}

func pptColor(c model.Color) ppt.Color {
	return ppt.NewColor(c.Hex())
}

func addShape(slide *ppt.Slide, sh *model.Shape, id int) {
	switch {
	case sh.Placeholder != model.PlaceholderNone:
		ph := slide.CreatePlaceholderShape(ppt.PlaceholderType(sh.Placeholder))
		if sh.Placeholder == model.PlaceholderBody || sh.Placeholder == model.PlaceholderSubTitle {
			ph.SetPlaceholderIndex(1)
		}
		place(&ph.BaseShape, sh, id)
		writeText(&ph.RichTextShape, sh.TextFrame())

	case sh.Kind == model.ShapeTextBox || sh.Text != nil:
		rt := slide.CreateRichTextShape()
		place(&rt.BaseShape, sh, id)
		outline(&rt.BaseShape, sh)
		writeText(rt, sh.TextFrame())

	default:
		as := slide.CreateAutoShape()
		as.SetAutoShapeType(ppt.AutoShapeType(presetGeometry(sh.Kind)))
		place(&as.BaseShape, sh, id)
		outline(&as.BaseShape, sh)
	}
}

func place(b *ppt.BaseShape, sh *model.Shape, id int) {
	b.SetName(shapeName(sh, id))
	b.SetPosition(int64(sh.Frame.X), int64(sh.Frame.Y))
	b.SetSize(int64(sh.Frame.Width), int64(sh.Frame.Height))
}

func outline(b *ppt.BaseShape, sh *model.Shape) {
	if sh.Fill != nil {
		b.SetFill(ppt.NewFill().SetSolid(pptColor(*sh.Fill)))
	}
	if sh.Line != nil && !sh.NoLine {
		b.SetBorder(ppt.NewBorder().SetSolidFill(pptColor(*sh.Line)).SetWidth(lineWidth))
	}
}

func shapeName(sh *model.Shape, id int) string {
	if sh.Name != "" {
		return sh.Name
	}
	return fmt.Sprintf("%s %d", sh.Kind, id-1)
}

func presetGeometry(k model.ShapeKind) string {
	switch k {
	case model.ShapeRoundedRectangle:
		return "roundRect"
	case model.ShapeOval:
		return "ellipse"
	default:
		return "rect"
	}
}

func writeText(rt *ppt.RichTextShape, tf *model.TextFrame) {
	rt.SetWordWrap(tf.WordWrap)
	rt.SetTextAnchor(ppt.TextAnchorType(anchorValue(tf.Anchor)))

	for i, para := range tf.Paragraphs {
		p := rt.GetActiveParagraph()
		if i > 0 {
			p = rt.CreateParagraph()
		}
		align := p.GetAlignment()
		align.Horizontal = ppt.HorizontalAlignment(alignValue(para.Align))
		align.Level = para.Level
		p.SetSpaceBefore(int(math.Round(para.SpaceBefore * 100)))
		p.SetSpaceAfter(int(math.Round(para.SpaceAfter * 100)))

		for j, line := range para.Lines() {
			if j > 0 {
				p.CreateBreak()
			}
			if line == "" {
				continue
			}
			setFont(p.CreateTextRun(line).GetFont(), para.Font)
		}
	}
}

func setFont(f *ppt.Font, src model.Font) {
	f.Name = src.Name
	f.Color = ppt.Color{}
	if src.Color != nil {
		f.Color = pptColor(*src.Color)
	}
	if src.Bold != nil {
		f.Bold = *src.Bold
	}
	f.Size = int(math.Round(src.Size))
}

func anchorValue(a model.Anchor) string {
	switch a {
	case model.AnchorTop:
		return "t"
	case model.AnchorMiddle:
		return "ctr"
	case model.AnchorBottom:
		return "b"
	}
	return ""
}

func alignValue(a model.Align) string {
	switch a {
	case model.AlignLeft:
		return "l"
	case model.AlignCenter:
		return "ctr"
	case model.AlignRight:
		return "r"
	}
	return ""
}

// finish applies the formatting GoPPT leaves out and stamps the package as
// written by this program.
func finish(pkg *Package, deck *model.Deck) error {
	for i, s := range deck.Slides {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		doc, err := pkg.Document(name)
		if err != nil {
			return err
		}
		unindent(doc)
		for j, sp := range doc.FindElements("//spTree/sp") {
			if j < len(s.Shapes) {
				patchShape(sp, s.Shapes[j])
			}
		}
		if err := pkg.SetDocument(name, doc); err != nil {
			return err
		}
	}

	if len(deck.Slides) == 0 {
		if err := dropBlankSlide(pkg); err != nil {
			return err
		}
	}

	doc, err := pkg.Document(partAppProps)
	if err != nil {
		return err
	}
	if app := doc.FindElement("//Application"); app != nil {
		app.SetText(application)
	}
	if n := doc.FindElement("//Slides"); n != nil {
		n.SetText(strconv.Itoa(len(deck.Slides)))
	}
	return pkg.SetDocument(partAppProps, doc)
}

func unindent(doc *etree.Document) {
	s := etree.NewIndentSettings()
	s.Spaces = etree.NoIndent
	s.PreserveLeafWhitespace = true
	doc.IndentWithSettings(s)
}

func patchShape(sp *etree.Element, sh *model.Shape) {
	spPr := sp.SelectElement("spPr")
	if spPr == nil {
		return
	}

	if sh.Placeholder != model.PlaceholderNone {
		if sh.Fill != nil {
			spPr.AddChild(SolidFillElement(*sh.Fill))
		}
		if sh.Line != nil && !sh.NoLine {
			spPr.CreateElement("a:ln").AddChild(SolidFillElement(*sh.Line))
		}
	} else if sh.Text != nil || sh.Kind == model.ShapeTextBox {
		if sh.Kind != model.ShapeTextBox {
			if c := sp.FindElement("nvSpPr/cNvSpPr"); c != nil {
				c.RemoveAttr("txBox")
			}
			if geom := spPr.SelectElement("prstGeom"); geom != nil {
				geom.CreateAttr("prst", presetGeometry(sh.Kind))
			}
		}
		if sh.Fill == nil && sh.Kind == model.ShapeTextBox {
			if geom := spPr.SelectElement("prstGeom"); geom != nil {
				spPr.InsertChildAt(geom.Index()+1, etree.NewElement("a:noFill"))
			}
		}
	}
	if sh.NoLine {
		spPr.CreateElement("a:ln").CreateElement("a:noFill")
	}

	if body := sp.SelectElement("txBody"); body != nil && sh.Text != nil {
		patchTextBody(body, sh)
	}
}

func patchTextBody(body *etree.Element, sh *model.Shape) {
	tf := sh.Text
	if bodyPr := body.SelectElement("bodyPr"); bodyPr != nil {
		bodyPr.Attr = nil
		switch {
		case tf.WordWrap:
			bodyPr.CreateAttr("wrap", "square")
		case sh.Kind == model.ShapeTextBox:
			bodyPr.CreateAttr("wrap", "none")
		}
		if tf.Insets != nil {
			bodyPr.CreateAttr("lIns", emu(tf.Insets.Left))
			bodyPr.CreateAttr("tIns", emu(tf.Insets.Top))
			bodyPr.CreateAttr("rIns", emu(tf.Insets.Right))
			bodyPr.CreateAttr("bIns", emu(tf.Insets.Bottom))
		}
		bodyPr.CreateAttr("rtlCol", "0")
		if a := anchorValue(tf.Anchor); a != "" {
			bodyPr.CreateAttr("anchor", a)
		}
	}

	for i, p := range body.SelectElements("p") {
		if i >= len(tf.Paragraphs) {
			break
		}
		patchParagraph(p, tf.Paragraphs[i])
	}
}

func patchParagraph(p *etree.Element, para *model.Paragraph) {
	if pPr := p.SelectElement("pPr"); pPr != nil {
		for _, c := range append([]etree.Token(nil), pPr.Child...) {
			if cd, ok := c.(*etree.CharData); ok {
				pPr.RemoveChild(cd)
			}
		}
		if para.LineSpacing > 0 {
			lnSpc := LineSpacingElement(pPr, para.LineSpacing)
			pPr.RemoveChild(lnSpc)
			pPr.InsertChildAt(0, lnSpc)
		}
		if len(pPr.Attr) == 0 && len(pPr.ChildElements()) == 0 {
			p.RemoveChild(pPr)
		}
	}

	for _, r := range p.SelectElements("r") {
		rPr := r.SelectElement("rPr")
		if rPr == nil {
			continue
		}
		if para.Font.Size > 0 {
			rPr.CreateAttr("sz", strconv.Itoa(int(math.Round(para.Font.Size*100))))
		} else {
			rPr.RemoveAttr("sz")
		}
		if para.Font.Bold != nil && !*para.Font.Bold {
			rPr.CreateAttr("b", "0")
		}
	}
}

// dropBlankSlide removes the slide GoPPT keeps in every presentation, for
// decks that have no slides of their own.
func dropBlankSlide(pkg *Package) error {
	const slide = "ppt/slides/slide1.xml"
	pkg.RemovePart(slide)
	pkg.RemovePart("ppt/slides/_rels/slide1.xml.rels")

	pres, err := pkg.Document(partPresentation)
	if err != nil {
		return err
	}
	if lst := pres.FindElement("//sldIdLst"); lst != nil {
		lst.Parent().RemoveChild(lst)
	}
	if err := pkg.SetDocument(partPresentation, pres); err != nil {
		return err
	}

	rels, err := pkg.Document(partPresentationRels)
	if err != nil {
		return err
	}
	for _, rel := range rels.FindElements("//Relationship") {
		if rel.SelectAttrValue("Target", "") == "slides/slide1.xml" {
			rel.Parent().RemoveChild(rel)
		}
	}
	if err := pkg.SetDocument(partPresentationRels, rels); err != nil {
		return err
	}

	types, err := pkg.Document(partContentTypes)
	if err != nil {
		return err
	}
	for _, o := range types.FindElements("//Override") {
		if o.SelectAttrValue("PartName", "") == "/"+slide {
			o.Parent().RemoveChild(o)
		}
	}
	return pkg.SetDocument(partContentTypes, types)
}

// BackgroundElement builds a p:bg element holding a solid color fill.
func BackgroundElement(c model.Color) *etree.Element {
	bg := etree.NewElement("p:bg")
	bgPr := bg.CreateElement("p:bgPr")
	bgPr.AddChild(SolidFillElement(c))
	bgPr.CreateElement("a:effectLst")
	return bg
}

// SolidFillElement builds an a:solidFill element with an sRGB color.
func SolidFillElement(c model.Color) *etree.Element {
	fill := etree.NewElement("a:solidFill")
	fill.CreateElement("a:srgbClr").CreateAttr("val", c.Hex())
	return fill
}

// LineSpacingElement appends an a:lnSpc child to pPr for a multiple of
// single spacing.
func LineSpacingElement(pPr *etree.Element, multiple float64) *etree.Element {
	lnSpc := pPr.CreateElement("a:lnSpc")
	lnSpc.CreateElement("a:spcPct").CreateAttr("val", strconv.Itoa(int(math.Round(multiple*100000))))
	return lnSpc
}

// SpacingElement appends a spacing child (a:spcBef or a:spcAft) to pPr
// measured in points.
func SpacingElement(pPr *etree.Element, tag string, points float64) *etree.Element {
	spc := pPr.CreateElement(tag)
	spc.CreateElement("a:spcPts").CreateAttr("val", strconv.Itoa(int(math.Round(points*100))))
	return spc
}

func emu(v model.EMU) string {
	return strconv.FormatInt(int64(v), 10)
}
