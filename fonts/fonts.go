// Package fonts loads font faces from a list of candidate files, falling
// back to a built-in bitmap face when none of them can be used.
package fonts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/tsawler/techdeck/internal/logger"
)

// Common locations of the faces used for previews, DejaVu first.
var (
	DefaultBold = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/opentype/noto/NotoSansCJK-Bold.ttc",
		"/System/Library/Fonts/PingFang.ttc",
	}
	DefaultRegular = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
		"/System/Library/Fonts/PingFang.ttc",
	}
)

// ErrNoCandidates is returned by Open when the candidate list is empty.
var ErrNoCandidates = errors.New("no font candidates")

// collectionTag starts every TrueType/OpenType collection file.
var collectionTag = []byte("ttcf")

// Face is a loaded font face and where it came from.
type Face struct {
	font.Face

	// Path is the file the face was loaded from; empty for the fallback.
	Path string
}

// Fallback reports whether the built-in bitmap face is in use.
func (f Face) Fallback() bool {
	return f.Path == ""
}

// Load returns a face of the given pixel size from the first candidate that
// parses. It never fails: when no candidate loads, the 7x13 bitmap face is
// returned and a warning is logged.
func Load(ctx context.Context, size float64, candidates ...string) Face {
	face, err := Open(size, candidates...)
	if err != nil {
		logger.Warn(ctx, "using built-in bitmap font", zap.Float64("size", size), zap.Error(err))
		return Face{Face: basicfont.Face7x13}
	}

	logger.Debug(ctx, "loaded font", zap.String("path", face.Path), zap.Float64("size", size))
	return face
}

// Open returns a face from the first candidate that can be read and parsed.
// The error of the last candidate is returned when none can.
func Open(size float64, candidates ...string) (Face, error) {
	if len(candidates) == 0 {
		return Face{}, ErrNoCandidates
	}

	var lastErr error
	for _, path := range candidates {
		face, err := OpenFile(path, size)
		if err == nil {
			return Face{Face: face, Path: path}, nil
		}
		lastErr = err
	}
	return Face{}, lastErr
}

// OpenFile parses a TTF, OTF or TTC file and returns a face of the given
// pixel size. Collections use their first font.
func OpenFile(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face from %s: %w", path, err)
	}
	return face, nil
}

func parse(data []byte) (*opentype.Font, error) {
	if !bytes.HasPrefix(data, collectionTag) {
		return opentype.Parse(data)
	}

	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	return c.Font(0)
}
