package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

var (
	// ErrNotPresentation is returned when a file is not a PPTX package.
	ErrNotPresentation = errors.New("not a presentation package")
	// ErrNoSlides is returned when a presentation has no slides.
	ErrNoSlides = errors.New("no slides found in presentation")
	// ErrPartNotFound is returned when a named part does not exist.
	ErrPartNotFound = errors.New("part not found")
)

// Package is a PPTX file held in memory as an ordered set of named parts.
// Parts that are never touched are written back unchanged and in their
// original order.
type Package struct {
	names []string
	parts map[string][]byte
}

// NewPackage creates an empty package.
func NewPackage() *Package {
	return &Package{parts: make(map[string][]byte)}
}

// OpenPackage reads every part of the PPTX file at filename.
func OpenPackage(filename string) (*Package, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	defer zr.Close()

	return readZip(&zr.Reader)
}

// ReadPackage reads a PPTX package from r.
func ReadPackage(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return readZip(zr)
}

func readZip(zr *zip.Reader) (*Package, error) {
	p := NewPackage()
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readZipEntry(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		p.SetPart(f.Name, data)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// validate checks that the parts every presentation needs exist.
func (p *Package) validate() error {
	for _, name := range []string{partContentTypes, partPresentation} {
		if _, ok := p.parts[name]; !ok {
			return fmt.Errorf("%w: missing required file %s", ErrNotPresentation, name)
		}
	}
	return nil
}

// Names returns the part names in package order.
func (p *Package) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Part returns the content of the named part.
func (p *Package) Part(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

// SetPart replaces the named part, or appends it if it is new.
func (p *Package) SetPart(name string, data []byte) {
	if _, ok := p.parts[name]; !ok {
		p.names = append(p.names, name)
	}
	p.parts[name] = data
}

// RemovePart deletes the named part. Missing parts are ignored.
func (p *Package) RemovePart(name string) {
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
}

// Document parses the named part as XML.
func (p *Package) Document(name string) (*etree.Document, error) {
	data, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return doc, nil
}

// SetDocument serializes doc into the named part.
func (p *Package) SetDocument(name string, doc *etree.Document) error {
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializing %s: %w", name, err)
	}
	p.SetPart(name, data)
	return nil
}

// SlidePaths returns the slide part names in presentation order. The order
// comes from the slide id list and the presentation relationships; when
// those are absent the slide parts are sorted by number.
func (p *Package) SlidePaths() ([]string, error) {
	paths, err := p.orderedSlidePaths()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		paths = p.numberedSlidePaths()
	}
	if len(paths) == 0 {
		return nil, ErrNoSlides
	}
	return paths, nil
}

func (p *Package) orderedSlidePaths() ([]string, error) {
	doc, err := p.Document(partPresentation)
	if err != nil {
		return nil, err
	}
	lst := doc.FindElement("//p:sldIdLst")
	if lst == nil {
		return nil, nil
	}

	rels, err := p.relationships(partPresentationRels)
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels))
	for _, rel := range rels {
		targets[rel.ID] = rel.Target
	}

	var paths []string
	for _, id := range lst.SelectElements("sldId") {
		target, ok := targets[id.SelectAttrValue("r:id", "")]
		if !ok {
			continue
		}
		name := resolveTarget("ppt", target)
		if _, ok := p.parts[name]; ok {
			paths = append(paths, name)
		}
	}
	return paths, nil
}

func (p *Package) numberedSlidePaths() []string {
	var paths []string
	for _, name := range p.names {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			paths = append(paths, name)
		}
	}
	sort.Slice(paths, func(i, j int) bool {
		return extractSlideNumber(paths[i]) < extractSlideNumber(paths[j])
	})
	return paths
}

// extractSlideNumber extracts the slide number from a path like "ppt/slides/slide1.xml"
func extractSlideNumber(name string) int {
	name = strings.TrimPrefix(name, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	var num int
	fmt.Sscanf(name, "%d", &num)
	return num
}

// relationships parses a .rels part. A missing part yields no relationships.
func (p *Package) relationships(name string) ([]relationshipXML, error) {
	data, ok := p.parts[name]
	if !ok {
		return nil, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	var rels []relationshipXML
	for _, el := range root.SelectElements("Relationship") {
		rels = append(rels, relationshipXML{
			ID:     el.SelectAttrValue("Id", ""),
			Type:   el.SelectAttrValue("Type", ""),
			Target: el.SelectAttrValue("Target", ""),
		})
	}
	return rels, nil
}

// resolveTarget turns a relationship target relative to dir into a part name.
func resolveTarget(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Clean(path.Join(dir, target))
}

// SlideSize returns the slide width and height in EMUs.
func (p *Package) SlideSize() (cx, cy int64, err error) {
	doc, err := p.Document(partPresentation)
	if err != nil {
		return 0, 0, err
	}
	sz := doc.FindElement("//p:sldSz")
	if sz == nil {
		return 0, 0, fmt.Errorf("%w: no slide size", ErrNotPresentation)
	}
	fmt.Sscanf(sz.SelectAttrValue("cx", "0"), "%d", &cx)
	fmt.Sscanf(sz.SelectAttrValue("cy", "0"), "%d", &cy)
	return cx, cy, nil
}

// SetSlideSize sets the slide width and height in EMUs. Slide content is
// not scaled.
func (p *Package) SetSlideSize(cx, cy int64) error {
	doc, err := p.Document(partPresentation)
	if err != nil {
		return err
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("%w: empty presentation part", ErrNotPresentation)
	}

	sz := root.SelectElement("p:sldSz")
	if sz == nil {
		sz = etree.NewElement("p:sldSz")
		root.InsertChildAt(slideSizeIndex(root), sz)
	}
	sz.CreateAttr("cx", fmt.Sprint(cx))
	sz.CreateAttr("cy", fmt.Sprint(cy))

	return p.SetDocument(partPresentation, doc)
}

// slideSizeIndex is the child position where p:sldSz belongs: after the
// master and slide id lists.
func slideSizeIndex(root *etree.Element) int {
	idx := 0
	for _, tag := range []string{"sldMasterIdLst", "notesMasterIdLst", "handoutMasterIdLst", "sldIdLst"} {
		if el := root.SelectElement("p:" + tag); el != nil && el.Index()+1 > idx {
			idx = el.Index() + 1
		}
	}
	return idx
}

// WriteTo writes the package as a zip archive.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, name := range p.names {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return cw.n, fmt.Errorf("creating %s: %w", name, err)
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return cw.n, fmt.Errorf("writing %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("closing archive: %w", err)
	}
	return cw.n, nil
}

// Bytes returns the package as a zip archive.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the package to filename, replacing any existing file.
func (p *Package) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	if _, err := p.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
