package techdeck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/techdeck/pptx"
	"github.com/tsawler/techdeck/render"
)

// writeTemplate saves the compact template to a temporary file.
func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tech-business-template.pptx")
	if err := pptx.Save(path, Template()); err != nil {
		t.Fatalf("failed to save template: %v", err)
	}
	return path
}

func TestOpen(t *testing.T) {
	// Test with non-existent file
	_, err := Open("nonexistent.pptx").Text()
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestOpenUnsupportedFormat(t *testing.T) {
	_, err := Open("slide.png").SlideCount()
	if err == nil || !strings.Contains(err.Error(), "unsupported file format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestSlideCount(t *testing.T) {
	path := writeTemplate(t)

	count, err := Open(path).SlideCount()
	if err != nil {
		t.Fatalf("failed to count slides: %v", err)
	}
	if count != 6 {
		t.Errorf("expected 6 slides, got %d", count)
	}
}

func TestTextExtraction(t *testing.T) {
	path := writeTemplate(t)

	text, err := Open(path).Text()
	if err != nil {
		t.Fatalf("failed to extract text: %v", err)
	}

	for _, want := range []string{"科技商业演示模板", "技术架构方案", "Thank you for your attention"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected text to contain %q", want)
		}
	}
}

func TestSlideSelection(t *testing.T) {
	path := writeTemplate(t)

	first, err := Open(path).Slides(1).Text()
	if err != nil {
		t.Fatalf("failed to extract slide 1: %v", err)
	}
	all, err := Open(path).Text()
	if err != nil {
		t.Fatalf("failed to extract all slides: %v", err)
	}

	if len(first) >= len(all) {
		t.Errorf("slide 1 text (%d) should be shorter than all slides (%d)", len(first), len(all))
	}
	if strings.Contains(first, "谢谢") {
		t.Error("slide 1 should not contain the closing slide")
	}
}

func TestSlideRange(t *testing.T) {
	path := writeTemplate(t)

	titles, err := Open(path).SlideRange(2, 4).Titles()
	if err != nil {
		t.Fatalf("failed to read titles: %v", err)
	}

	want := []string{"目录", "项目概述", "核心功能"}
	if len(titles) != len(want) {
		t.Fatalf("expected %d titles, got %d", len(want), len(titles))
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("title %d: expected %q, got %q", i, want[i], titles[i])
		}
	}
}

func TestSlideOutOfRange(t *testing.T) {
	path := writeTemplate(t)

	_, err := Open(path).Slides(7).Text()
	if !errors.Is(err, render.ErrSlideRange) {
		t.Errorf("expected ErrSlideRange, got %v", err)
	}

	_, err = Open(path).Slides(0).Text()
	if !errors.Is(err, render.ErrSlideRange) {
		t.Errorf("expected ErrSlideRange for slide 0, got %v", err)
	}
}

func TestMarkdown(t *testing.T) {
	path := writeTemplate(t)

	md, err := Open(path).Slides(1, 6).Markdown()
	if err != nil {
		t.Fatalf("failed to extract markdown: %v", err)
	}

	if !strings.HasPrefix(md, "# 科技商业演示模板") {
		t.Errorf("expected markdown to start with the title heading, got %q", md)
	}
	if strings.Count(md, "\n---\n") != 1 {
		t.Errorf("expected one slide separator, got %d", strings.Count(md, "\n---\n"))
	}
}

func TestImmutability(t *testing.T) {
	base := Open("deck.pptx")

	d1 := base.Slides(1)
	d2 := base.Slides(2, 3)
	d3 := base.Keywords("roadmap")

	if len(base.options.slides) != 0 {
		t.Error("base deck should not have slides set")
	}
	if len(d1.options.slides) != 1 || d1.options.slides[0] != 1 {
		t.Errorf("d1 should select slide 1, got %v", d1.options.slides)
	}
	if len(d2.options.slides) != 2 {
		t.Errorf("d2 should select 2 slides, got %v", d2.options.slides)
	}
	if len(base.options.restyle.Keywords) == 1 {
		t.Error("base keywords should not change")
	}
	if len(d3.options.restyle.Keywords) != 1 || d3.options.restyle.Keywords[0] != "roadmap" {
		t.Errorf("d3 keywords not set, got %v", d3.options.restyle.Keywords)
	}
}

func TestOptionsCloneStyles(t *testing.T) {
	opts := defaultOptions()
	cloned := opts.clone()

	for class := range cloned.restyle.Styles {
		delete(cloned.restyle.Styles, class)
	}
	if len(opts.restyle.Styles) == 0 {
		t.Error("clone should not share the styles map")
	}
}

func TestRestyle(t *testing.T) {
	path := writeTemplate(t)
	out := filepath.Join(t.TempDir(), "restyled.pptx")

	report, err := Open(path).Restyle(context.Background(), out)
	if err != nil {
		t.Fatalf("failed to restyle: %v", err)
	}
	if report.Slides != 6 {
		t.Errorf("expected 6 restyled slides, got %d", report.Slides)
	}

	r, err := pptx.Open(out)
	if err != nil {
		t.Fatalf("failed to open restyled deck: %v", err)
	}
	if w, _ := r.SlideSize(); w != 12191695 {
		t.Errorf("expected widescreen width, got %d", w)
	}
	for _, s := range r.Slides() {
		if s.Background != "F5F7FA" {
			t.Errorf("slide %d: expected F5F7FA background, got %q", s.Index+1, s.Background)
		}
	}
}

func TestRestyleFromReader(t *testing.T) {
	path := writeTemplate(t)
	r, err := pptx.Open(path)
	if err != nil {
		t.Fatalf("failed to open deck: %v", err)
	}
	before, _ := r.Package().Bytes()

	out := filepath.Join(t.TempDir(), "restyled.pptx")
	report, err := FromReader(r).Restyle(context.Background(), out)
	if err != nil {
		t.Fatalf("failed to restyle: %v", err)
	}
	if report.Shapes() == 0 {
		t.Error("expected restyled shapes")
	}

	after, _ := r.Package().Bytes()
	if string(before) != string(after) {
		t.Error("restyle should not modify the reader's package")
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestRender(t *testing.T) {
	path := writeTemplate(t)
	pattern := filepath.Join(t.TempDir(), "slide-%d.png")

	paths, err := Open(path).Slides(1, 6).Width(640).Render(context.Background(), pattern)
	if err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	if len(paths) != 2 || !strings.HasSuffix(paths[1], "slide-6.png") {
		t.Fatalf("unexpected paths: %v", paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected rendered file %s: %v", p, err)
		}
	}
}

func TestRenderFromReader(t *testing.T) {
	r, err := pptx.Open(writeTemplate(t))
	if err != nil {
		t.Fatalf("failed to open deck: %v", err)
	}

	_, err = FromReader(r).Render(context.Background(), "slide-%d.png")
	if !errors.Is(err, ErrNoFile) {
		t.Errorf("expected ErrNoFile, got %v", err)
	}
}

func TestMust(t *testing.T) {
	if got := Must(6, nil); got != 6 {
		t.Errorf("expected 6, got %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Must(0, errors.New("boom"))
}
