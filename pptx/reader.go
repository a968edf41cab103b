package pptx

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/tsawler/techdeck/model"
)

// Reader provides access to PPTX document content.
type Reader struct {
	pkg          *Package
	presentation *presentationXML
	slides       []*Slide
	coreProps    *corePropertiesXML
	appProps     *appPropertiesXML
}

// Open opens a PPTX file for reading.
func Open(filename string) (*Reader, error) {
	pkg, err := OpenPackage(filename)
	if err != nil {
		return nil, err
	}
	return NewReader(pkg)
}

// NewReader parses the slides of an already loaded package.
func NewReader(pkg *Package) (*Reader, error) {
	r := &Reader{pkg: pkg}

	if err := r.parsePresentation(); err != nil {
		return nil, fmt.Errorf("parsing presentation: %w", err)
	}

	if err := r.parseSlides(); err != nil {
		return nil, fmt.Errorf("parsing slides: %w", err)
	}

	// Metadata is optional
	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Package returns the underlying package.
func (r *Reader) Package() *Package {
	return r.pkg
}

// parsePresentation parses the main presentation file.
func (r *Reader) parsePresentation() error {
	data, ok := r.pkg.Part(partPresentation)
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrNotPresentation, partPresentation)
	}

	r.presentation = &presentationXML{}
	return xml.Unmarshal(data, r.presentation)
}

// parseSlides parses all slide files in presentation order.
func (r *Reader) parseSlides() error {
	paths, err := r.pkg.SlidePaths()
	if err != nil {
		return err
	}

	r.slides = make([]*Slide, 0, len(paths))
	for _, slidePath := range paths {
		slide, err := r.parseSlide(slidePath, len(r.slides))
		if err != nil {
			continue // Skip slides that fail to parse
		}
		r.slides = append(r.slides, slide)
	}

	if len(r.slides) == 0 {
		return ErrNoSlides
	}

	return nil
}

// parseSlide parses a single slide file.
func (r *Reader) parseSlide(slidePath string, index int) (*Slide, error) {
	data, ok := r.pkg.Part(slidePath)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, slidePath)
	}

	var sx slideXML
	if err := xml.Unmarshal(data, &sx); err != nil {
		return nil, err
	}

	slide := &Slide{
		Index:   index,
		Path:    slidePath,
		Content: make([]TextBlock, 0),
	}
	if bg := sx.CSld.Bg; bg != nil && bg.BgPr != nil {
		slide.Background = fillColor(bg.BgPr.SolidFill)
	}

	r.extractShapes(sx.CSld.SpTree.Sp, sx.CSld.SpTree.GrpSp, slide)

	return slide, nil
}

// extractShapes collects every shape into Shapes and the ones carrying
// text into Content, recursing into groups.
func (r *Reader) extractShapes(shapes []spXML, groups []grpSpXML, slide *Slide) {
	for i := range shapes {
		block := r.extractShape(&shapes[i])
		slide.Shapes = append(slide.Shapes, block)
		if block.Text == "" {
			continue
		}
		if block.IsTitle && slide.Title == "" {
			slide.Title = block.Text
		}
		slide.Content = append(slide.Content, block)
	}

	for _, grp := range groups {
		r.extractShapes(grp.Sp, grp.GrpSp, slide)
	}
}

// extractShape extracts geometry, fill and text from a shape.
func (r *Reader) extractShape(sp *spXML) TextBlock {
	block := TextBlock{
		Name:       sp.NvSpPr.CNvPr.Name,
		IsTextBox:  onOff(sp.NvSpPr.CNvSpPr.TxBox),
		Paragraphs: make([]Paragraph, 0),
	}

	if ph := sp.NvSpPr.NvPr.Ph; ph != nil {
		block.Placeholder = ph.Type
		block.IsTitle = ph.Type == "title" || ph.Type == "ctrTitle"
		block.IsSubtitle = ph.Type == "subTitle"
	}

	if xfrm := sp.SpPr.Xfrm; xfrm != nil {
		block.X = xfrm.Off.X
		block.Y = xfrm.Off.Y
		block.Width = xfrm.Ext.Cx
		block.Height = xfrm.Ext.Cy
	}
	if sp.SpPr.PrstGeom != nil {
		block.Geometry = sp.SpPr.PrstGeom.Prst
	}
	block.Fill = fillColor(sp.SpPr.SolidFill)
	if ln := sp.SpPr.Ln; ln != nil {
		block.Line = fillColor(ln.SolidFill)
		block.NoLine = ln.NoFill != nil
	}

	if sp.TxBody == nil {
		return block
	}

	bodyPr := sp.TxBody.BodyPr
	block.Anchor = bodyPr.Anchor
	block.WordWrap = bodyPr.Wrap != "none"
	if bodyPr.LIns != nil && bodyPr.TIns != nil && bodyPr.RIns != nil && bodyPr.BIns != nil {
		block.Insets = []int64{*bodyPr.LIns, *bodyPr.TIns, *bodyPr.RIns, *bodyPr.BIns}
	}

	var texts []string
	for i := range sp.TxBody.P {
		para := r.extractParagraph(&sp.TxBody.P[i])
		block.Paragraphs = append(block.Paragraphs, para)
		if para.Text != "" {
			texts = append(texts, para.Text)
		}
	}
	block.Text = strings.Join(texts, "\n")

	return block
}

// extractParagraph extracts text and formatting from a paragraph. Line
// breaks become "\n" in the paragraph text.
func (r *Reader) extractParagraph(p *pXML) Paragraph {
	para := Paragraph{
		Runs: make([]Run, 0),
	}

	if ppr := p.PPr; ppr != nil {
		para.Level = ppr.Lvl
		para.Alignment = ppr.Algn
		if ppr.LnSpc != nil && ppr.LnSpc.SpcPct != nil {
			para.LineSpacing = ppr.LnSpc.SpcPct.Val
		}
		if ppr.SpcBef != nil && ppr.SpcBef.SpcPts != nil {
			para.SpaceBefore = ppr.SpcBef.SpcPts.Val
		}
		if ppr.SpcAft != nil && ppr.SpcAft.SpcPts != nil {
			para.SpaceAfter = ppr.SpcAft.SpcPts.Val
		}

		// Has some kind of bullet unless explicitly none
		if ppr.BuNone == nil {
			switch {
			case ppr.BuAutoNum != nil:
				para.IsNumbered = true
			case ppr.BuChar != nil:
				para.IsBullet = true
				para.BulletChar = ppr.BuChar.Char
			case para.Level > 0:
				para.IsBullet = true
			}
		}
	}

	var text strings.Builder
	for _, item := range p.Items {
		switch item.XMLName.Local {
		case "r", "fld":
			text.WriteString(item.T)
			if item.XMLName.Local == "r" {
				para.Runs = append(para.Runs, extractRun(item))
			}
		case "br":
			text.WriteString("\n")
		}
	}

	para.Text = strings.TrimSpace(text.String())
	return para
}

func extractRun(item pItem) Run {
	run := Run{Text: item.T}
	if rpr := item.RPr; rpr != nil {
		run.Bold = onOff(rpr.B)
		run.Italic = onOff(rpr.I)
		run.FontSize = rpr.Sz
		run.Color = fillColor(rpr.SolidFill)
		if rpr.Latin != nil {
			run.Typeface = rpr.Latin.Typeface
		}
	}
	return run
}

func fillColor(f *solidFillXML) string {
	if f == nil || f.SrgbClr == nil {
		return ""
	}
	return strings.ToUpper(f.SrgbClr.Val)
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, ok := r.pkg.Part(partCoreProps)
	if !ok {
		return
	}

	props := &corePropertiesXML{}
	if err := xml.Unmarshal(data, props); err == nil {
		r.coreProps = props
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, ok := r.pkg.Part(partAppProps)
	if !ok {
		return
	}

	props := &appPropertiesXML{}
	if err := xml.Unmarshal(data, props); err == nil {
		r.appProps = props
	}
}

// SlideCount returns the number of slides.
func (r *Reader) SlideCount() int {
	return len(r.slides)
}

// Slide returns the slide at the given index (0-indexed).
func (r *Reader) Slide(index int) (*Slide, error) {
	if index < 0 || index >= len(r.slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(r.slides)-1)
	}
	return r.slides[index], nil
}

// Slides returns all slides in presentation order.
func (r *Reader) Slides() []*Slide {
	return r.slides
}

// SlideSize returns the slide width and height.
func (r *Reader) SlideSize() (width, height model.EMU) {
	if r.presentation == nil || r.presentation.SlideSz == nil {
		return 0, 0
	}
	return model.EMU(r.presentation.SlideSz.Cx), model.EMU(r.presentation.SlideSz.Cy)
}

// Text extracts and returns all text content from the presentation.
func (r *Reader) Text() string {
	parts := make([]string, 0, len(r.slides))
	for _, slide := range r.slides {
		parts = append(parts, strings.TrimRight(slide.GetText(), "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// Markdown returns the presentation content as Markdown.
func (r *Reader) Markdown() string {
	parts := make([]string, 0, len(r.slides))
	for _, slide := range r.slides {
		parts = append(parts, strings.TrimSpace(slide.GetMarkdown()))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// Metadata returns document metadata.
func (r *Reader) Metadata() model.Metadata {
	meta := model.Metadata{}
	if r.coreProps != nil {
		meta.Title = r.coreProps.Title
		meta.Creator = r.coreProps.Creator
		meta.Subject = r.coreProps.Subject
		if r.coreProps.Keywords != "" {
			for _, kw := range strings.Split(r.coreProps.Keywords, ",") {
				meta.Keywords = append(meta.Keywords, strings.TrimSpace(kw))
			}
		}
		if t, err := time.Parse(time.RFC3339, r.coreProps.Created); err == nil {
			meta.Created = t
		}
	}
	return meta
}

// Application returns the name of the program that wrote the file.
func (r *Reader) Application() string {
	if r.appProps == nil {
		return ""
	}
	return r.appProps.Application
}
