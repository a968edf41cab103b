package pptx

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeZipFile writes a file into a zip archive.
func writeZipFile(t *testing.T, zw *zip.Writer, name, content string) {
	t.Helper()
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("Failed to create %s in zip: %v", name, err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// writeZip creates a zip file in a temp dir from name/content pairs, in order.
func writeZip(t *testing.T, files [][2]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.pptx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, file := range files {
		writeZipFile(t, zw, file[0], file[1])
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return path
}

const testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
</Types>`

// The slide id list puts slide2.xml first.
const testPresentation = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:sldIdLst>
    <p:sldId id="256" r:id="rId2"/>
    <p:sldId id="257" r:id="rId1"/>
  </p:sldIdLst>
  <p:sldSz cx="9144000" cy="6858000" type="screen4x3"/>
  <p:notesSz cx="6858000" cy="9144000"/>
</p:presentation>`

const testPresentationRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide2.xml"/>
</Relationships>`

const testSlideAgenda = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr><p:cNvPr id="1" name=""/></p:nvGrpSpPr>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="Content 1"/>
          <p:cNvSpPr/>
          <p:nvPr><p:ph type="body" idx="1"/></p:nvPr>
        </p:nvSpPr>
        <p:spPr/>
        <p:txBody>
          <a:bodyPr/>
          <a:p>
            <a:pPr lvl="0"/>
            <a:r><a:t>First bullet point</a:t></a:r>
          </a:p>
          <a:p>
            <a:pPr lvl="1"/>
            <a:r><a:t>Nested point</a:t></a:r>
          </a:p>
        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`

const testSlideTitle = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <p:cSld>
    <p:bg><p:bgPr><a:solidFill><a:srgbClr val="f5f7fa"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>
    <p:spTree>
      <p:nvGrpSpPr><p:cNvPr id="1" name=""/></p:nvGrpSpPr>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="Title 1"/>
          <p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>
          <p:nvPr><p:ph type="ctrTitle"/></p:nvPr>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm><a:off x="457200" y="274638"/><a:ext cx="8229600" cy="1143000"/></a:xfrm>
        </p:spPr>
        <p:txBody>
          <a:bodyPr anchor="ctr"/>
          <a:p>
            <a:pPr algn="ctr"><a:lnSpc><a:spcPct val="120000"/></a:lnSpc><a:spcBef><a:spcPts val="600"/></a:spcBef></a:pPr>
            <a:r><a:rPr sz="4800" b="1"><a:solidFill><a:srgbClr val="0B3B71"/></a:solidFill><a:latin typeface="Arial"/></a:rPr><a:t>Test</a:t></a:r>
            <a:r><a:rPr sz="4800" b="1"/><a:t> Title</a:t></a:r>
          </a:p>
        </p:txBody>
      </p:sp>
      <p:grpSp>
        <p:sp>
          <p:nvSpPr><p:cNvPr id="4" name="TextBox 3"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>
          <p:spPr/>
          <p:txBody>
            <a:bodyPr wrap="none"/>
            <a:p><a:r><a:t>line one</a:t></a:r><a:br/><a:r><a:t>line two</a:t></a:r></a:p>
          </p:txBody>
        </p:sp>
      </p:grpSp>
    </p:spTree>
  </p:cSld>
</p:sld>`

const testCoreProps = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <dc:title>Quarterly Review</dc:title>
  <dc:creator>Jane Doe</dc:creator>
  <cp:keywords>tech, business</cp:keywords>
  <dcterms:created xsi:type="dcterms:W3CDTF">2024-05-01T10:00:00Z</dcterms:created>
</cp:coreProperties>`

// createTestPPTX creates a two-slide PPTX whose presentation order differs
// from the slide file numbering.
func createTestPPTX(t *testing.T) string {
	t.Helper()
	return writeZip(t, [][2]string{
		{"[Content_Types].xml", testContentTypes},
		{"ppt/presentation.xml", testPresentation},
		{"ppt/_rels/presentation.xml.rels", testPresentationRels},
		{"ppt/slides/slide1.xml", testSlideAgenda},
		{"ppt/slides/slide2.xml", testSlideTitle},
		{"docProps/core.xml", testCoreProps},
	})
}

func TestOpen(t *testing.T) {
	r, err := Open(createTestPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if r.SlideCount() != 2 {
		t.Errorf("SlideCount() = %d, want 2", r.SlideCount())
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.pptx")
	if err == nil {
		t.Error("Open() expected error for nonexistent file")
	}
}

func TestOpen_InvalidZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pptx")
	if err := os.WriteFile(path, []byte("not a zip file"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, err := Open(path)
	if err == nil {
		t.Error("Open() expected error for invalid zip")
	}
}

func TestOpen_MissingPresentation(t *testing.T) {
	path := writeZip(t, [][2]string{{"[Content_Types].xml", "<Types/>"}})

	_, err := Open(path)
	if !errors.Is(err, ErrNotPresentation) {
		t.Errorf("Open() error = %v, want ErrNotPresentation", err)
	}
}

func TestOpen_NoSlides(t *testing.T) {
	path := writeZip(t, [][2]string{
		{"[Content_Types].xml", "<Types/>"},
		{"ppt/presentation.xml", "<presentation/>"},
	})

	_, err := Open(path)
	if !errors.Is(err, ErrNoSlides) {
		t.Errorf("Open() error = %v, want ErrNoSlides", err)
	}
}

func TestReader_SlideOrder(t *testing.T) {
	r, err := Open(createTestPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	first, _ := r.Slide(0)
	second, _ := r.Slide(1)

	if first.Path != "ppt/slides/slide2.xml" {
		t.Errorf("first slide path = %q, want ppt/slides/slide2.xml", first.Path)
	}
	if first.Title != "Test Title" {
		t.Errorf("first slide title = %q, want %q", first.Title, "Test Title")
	}
	if second.Path != "ppt/slides/slide1.xml" {
		t.Errorf("second slide path = %q, want ppt/slides/slide1.xml", second.Path)
	}
}

func TestReader_Slide(t *testing.T) {
	r, err := Open(createTestPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if _, err := r.Slide(-1); err == nil {
		t.Error("Slide(-1) expected error")
	}
	if _, err := r.Slide(2); err == nil {
		t.Error("Slide(2) expected error")
	}
	if len(r.Slides()) != 2 {
		t.Errorf("len(Slides()) = %d, want 2", len(r.Slides()))
	}
}

func TestReader_Formatting(t *testing.T) {
	r, err := Open(createTestPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	slide, _ := r.Slide(0)

	if slide.Background != "F5F7FA" {
		t.Errorf("Background = %q, want F5F7FA", slide.Background)
	}

	title := slide.Content[0]
	if !title.IsTitle || title.Placeholder != "ctrTitle" {
		t.Errorf("title block = %+v, want ctrTitle placeholder", title)
	}
	if title.X != 457200 || title.Width != 8229600 {
		t.Errorf("title position = (%d, %d), want (457200, 8229600)", title.X, title.Width)
	}
	if title.Anchor != "ctr" {
		t.Errorf("Anchor = %q, want ctr", title.Anchor)
	}

	para := title.Paragraphs[0]
	if para.Alignment != "ctr" || para.LineSpacing != 120000 || para.SpaceBefore != 600 {
		t.Errorf("paragraph = %+v", para)
	}

	run := para.Runs[0]
	if !run.Bold || run.FontSize != 4800 || run.Typeface != "Arial" || run.Color != "0B3B71" {
		t.Errorf("run = %+v", run)
	}
}

func TestReader_LineBreaksAndGroups(t *testing.T) {
	r, err := Open(createTestPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	slide, _ := r.Slide(0)

	block, ok := slide.Block("line one")
	if !ok {
		t.Fatal("grouped text box not found")
	}
	if block.Text != "line one\nline two" {
		t.Errorf("Text = %q, want %q", block.Text, "line one\nline two")
	}
	if !block.IsTextBox || block.WordWrap {
		t.Errorf("block = %+v, want unwrapped text box", block)
	}
}

func TestReader_Text(t *testing.T) {
	r, err := Open(createTestPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	text := r.Text()
	for _, want := range []string{"Test Title", "First bullet point", "  • Nested point"} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q:\n%s", want, text)
		}
	}
	if strings.Index(text, "Test Title") > strings.Index(text, "First bullet point") {
		t.Error("Text() does not follow presentation order")
	}
}

func TestReader_Markdown(t *testing.T) {
	r, err := Open(createTestPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	md := r.Markdown()
	if !strings.HasPrefix(md, "# Test Title") {
		t.Errorf("Markdown() should start with the first title:\n%s", md)
	}
	if !strings.Contains(md, "\n---\n") {
		t.Error("Markdown() missing slide separator")
	}
	if !strings.Contains(md, "  - Nested point") {
		t.Errorf("Markdown() missing nested bullet:\n%s", md)
	}
}

func TestReader_Metadata(t *testing.T) {
	r, err := Open(createTestPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	meta := r.Metadata()
	if meta.Title != "Quarterly Review" {
		t.Errorf("Title = %q, want %q", meta.Title, "Quarterly Review")
	}
	if meta.Creator != "Jane Doe" {
		t.Errorf("Creator = %q, want %q", meta.Creator, "Jane Doe")
	}
	if len(meta.Keywords) != 2 || meta.Keywords[1] != "business" {
		t.Errorf("Keywords = %v", meta.Keywords)
	}
	if meta.Created.Year() != 2024 {
		t.Errorf("Created = %v", meta.Created)
	}
}

func TestReader_SlideSize(t *testing.T) {
	r, err := Open(createTestPPTX(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	w, h := r.SlideSize()
	if w != 9144000 || h != 6858000 {
		t.Errorf("SlideSize() = %d x %d, want 9144000 x 6858000", w, h)
	}
}

func TestSlide_GetText(t *testing.T) {
	slide := &Slide{
		Title: "Heading",
		Content: []TextBlock{
			{IsTitle: true, Text: "Heading"},
			{Paragraphs: []Paragraph{
				{Text: "plain"},
				{Text: "bullet", IsBullet: true, Level: 1, BulletChar: "-"},
			}},
		},
	}

	want := "Heading\n\nplain\n  - bullet\n\n"
	if got := slide.GetText(); got != want {
		t.Errorf("GetText() = %q, want %q", got, want)
	}
}

func TestExtractSlideNumber(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"ppt/slides/slide1.xml", 1},
		{"ppt/slides/slide12.xml", 12},
		{"ppt/slides/slide.xml", 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := extractSlideNumber(tt.path); got != tt.want {
				t.Errorf("extractSlideNumber(%q) = %d, want %d", tt.path, got, tt.want)
			}
		})
	}
}
