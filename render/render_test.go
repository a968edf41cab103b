package render

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/techdeck/format"
	"github.com/tsawler/techdeck/model"
	"github.com/tsawler/techdeck/pptx"
	"github.com/tsawler/techdeck/techbiz"
)

func masterDeck(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tech-business-master-template.pptx")
	require.NoError(t, pptx.Save(path, techbiz.Master()))
	return path
}

func TestSlideCount(t *testing.T) {
	n, err := SlideCount(masterDeck(t))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRenderSlide(t *testing.T) {
	out := filepath.Join(t.TempDir(), "slide1.png")
	require.NoError(t, RenderSlide(context.Background(), masterDeck(t), 0, out, Options{Width: 1280}))

	img, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 1280, img.Bounds().Dx())
	assert.Equal(t, 720, img.Bounds().Dy())

	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Equal(t, []uint32{245, 247, 250}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestImageBackgroundOverride(t *testing.T) {
	doc, err := Open(masterDeck(t))
	require.NoError(t, err)

	img, err := doc.Image(3, Options{Width: 320, Background: &color.RGBA{R: 1, G: 2, B: 3, A: 255}})
	require.NoError(t, err)

	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{1, 2, 3}, []uint32{r >> 8, g >> 8, b >> 8})
}

func rgb(t *testing.T, img image.Image, x, y int) []uint32 {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	return []uint32{r >> 8, g >> 8, b >> 8}
}

func TestImagePaintsShapes(t *testing.T) {
	deck := model.NewDeck(model.Inches(10), model.Inches(5))
	s := deck.AddSlide()
	oval := s.AddShape(model.ShapeOval, model.NewRect(model.Inches(1), model.Inches(1), model.Inches(2), model.Inches(2)))
	oval.Fill = model.RGB(200, 0, 0).Ptr()
	oval.NoLine = true

	box := s.AddShape(model.ShapeRectangle, model.NewRect(model.Inches(5), model.Inches(1), model.Inches(4), model.Inches(3)))
	box.SetSolid(model.RGB(0, 0, 200))
	tf := box.TextFrame()
	tf.Anchor = model.AnchorMiddle
	tf.WordWrap = true
	p := tf.Paragraph(0)
	p.Text = "科技商业演示模板 Tech Business Presentation Template"
	p.Align = model.AlignCenter
	p.Font = model.Font{Size: 40, Bold: model.Bool(true), Color: model.RGB(255, 255, 255).Ptr()}

	path := filepath.Join(t.TempDir(), "shapes.pptx")
	require.NoError(t, pptx.Save(path, deck))
	doc, err := Open(path)
	require.NoError(t, err)

	img, err := doc.Image(0, Options{Width: 1000})
	require.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dy())

	assert.Equal(t, []uint32{255, 255, 255}, rgb(t, img, 5, 5), "no background means white")
	assert.Equal(t, []uint32{200, 0, 0}, rgb(t, img, 200, 200), "ellipse center")
	assert.Equal(t, []uint32{255, 255, 255}, rgb(t, img, 103, 103), "outside the ellipse corner")
	assert.Equal(t, []uint32{0, 0, 200}, rgb(t, img, 505, 105), "rectangle fill")

	// the centered text leaves non-fill pixels inside the rectangle
	text := 0
	for x := 500; x < 900; x++ {
		for y := 100; y < 400; y++ {
			if c := rgb(t, img, x, y); c[0] > 128 {
				text++
			}
		}
	}
	assert.Positive(t, text)
}

func TestFontCandidates(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Custom-Bold.ttf", "Custom-Regular.otf", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	bold, regular := fontCandidates([]string{dir})
	assert.Equal(t, filepath.Join(dir, "Custom-Bold.ttf"), bold[0])
	assert.Equal(t, filepath.Join(dir, "Custom-Regular.otf"), regular[0])
	assert.NotContains(t, regular, filepath.Join(dir, "notes.txt"))
}

func TestSlideRange(t *testing.T) {
	doc, err := Open(masterDeck(t))
	require.NoError(t, err)

	for _, index := range []int{-1, 4} {
		_, err := doc.Image(index, DefaultOptions())
		assert.ErrorIs(t, err, ErrSlideRange)

		err = doc.Save(context.Background(), index, filepath.Join(t.TempDir(), "x.png"), DefaultOptions())
		assert.ErrorIs(t, err, ErrSlideRange)
	}
}

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()
	paths, err := RenderAll(context.Background(), masterDeck(t), filepath.Join(dir, "slide%02d.png"), Options{Width: 320})
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(dir, "slide04.png"), paths[3])

	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pptx"))
	require.Error(t, err)
}

func TestRenderSlideJPEG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "slide.jpg")
	require.NoError(t, RenderSlide(context.Background(), masterDeck(t), 1, out, Options{Width: 320}))

	got, err := format.DetectFile(out)
	require.NoError(t, err)
	assert.Equal(t, format.JPEG, got)
}
