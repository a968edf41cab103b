package fonts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func writeFont(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadFirstCandidate(t *testing.T) {
	regular := writeFont(t, "regular.ttf", goregular.TTF)
	bold := writeFont(t, "bold.ttf", gobold.TTF)

	face := Load(context.Background(), 48, "/nonexistent/DejaVuSans.ttf", regular, bold)
	require.False(t, face.Fallback())
	assert.Equal(t, regular, face.Path)

	m := face.Metrics()
	assert.Greater(t, m.Ascent.Ceil(), 30)
	assert.Less(t, m.Ascent.Ceil(), 60)
}

func TestLoadFallback(t *testing.T) {
	garbage := writeFont(t, "broken.ttf", []byte("not a font"))

	face := Load(context.Background(), 120, "/nonexistent/a.ttf", garbage)
	assert.True(t, face.Fallback())
	assert.Equal(t, basicfont.Face7x13, face.Face)
}

func TestLoadNoCandidates(t *testing.T) {
	face := Load(context.Background(), 24)
	assert.True(t, face.Fallback())
}

func TestOpen(t *testing.T) {
	_, err := Open(24)
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, err = Open(24, "/nonexistent/font.ttf")
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := writeFont(t, "broken.ttf", []byte("not a font"))
	_, err = Open(24, garbage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestParseCollectionTag(t *testing.T) {
	_, err := parse(append([]byte("ttcf"), make([]byte, 8)...))
	require.Error(t, err)

	f, err := parse(goregular.TTF)
	require.NoError(t, err)
	assert.NotNil(t, f)
}
