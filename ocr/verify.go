package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/techdeck/internal/logger"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguage is the tesseract language used when none is configured.
const DefaultLanguage = "eng"

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as in Tesseract.
const (
	PSM_AUTO          PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK  PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE   PageSegMode = 7  // Single text line
	PSM_SPARSE_TEXT   PageSegMode = 11 // Find as much text as possible
)

// Recognizer extracts text from encoded image data.
type Recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
}

// Result is the outcome of a verification.
type Result struct {
	Text    string   // recognized text
	Found   []string // expected strings present in the text
	Missing []string // expected strings absent from the text
}

// OK reports whether every expected string was found.
func (r Result) OK() bool {
	return len(r.Missing) == 0
}

// Verify recognizes the image and checks that each expected string appears
// in it. Comparison ignores case, whitespace and width variants, since OCR
// output rarely preserves spacing.
func Verify(rec Recognizer, imageData []byte, expected ...string) (Result, error) {
	text, err := rec.RecognizeImage(imageData)
	if err != nil {
		return Result{}, err
	}

	res := Result{Text: text}
	haystack := fold(text)
	for _, want := range expected {
		if strings.Contains(haystack, fold(want)) {
			res.Found = append(res.Found, want)
		} else {
			res.Missing = append(res.Missing, want)
		}
	}
	return res, nil
}

// VerifyFile runs Verify on an image file and logs the outcome.
func VerifyFile(ctx context.Context, rec Recognizer, path string, expected ...string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := Verify(rec, data, expected...)
	if err != nil {
		return Result{}, fmt.Errorf("recognizing %s: %w", path, err)
	}

	if res.OK() {
		logger.Info(ctx, "image verified", zap.String("path", path), zap.Strings("found", res.Found))
	} else {
		logger.Warn(ctx, "expected text not found", zap.String("path", path), zap.Strings("missing", res.Missing))
	}
	return res, nil
}

func fold(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
