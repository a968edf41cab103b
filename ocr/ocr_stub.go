//go:build !ocr

// Package ocr recognizes text in rendered images so previews and slides can
// be checked for the text they are supposed to show.
//
// Without the "ocr" build tag the package compiles without cgo and every
// recognition call fails with ErrOCRNotEnabled. Build with
//
//	go build -tags ocr
//
// to link Tesseract.
package ocr

import (
	"fmt"
	"strings"
)

// Enabled reports whether OCR support was compiled in.
const Enabled = false

// Client stands in for the Tesseract client in builds without OCR.
type Client struct {
	languages []string
}

// New always fails; the error names the languages that were requested.
func New(languages ...string) (*Client, error) {
	if len(languages) == 0 {
		languages = []string{DefaultLanguage}
	}
	return nil, fmt.Errorf("%w (requested %s)", ErrOCRNotEnabled, strings.Join(languages, "+"))
}

// Languages returns the configured languages. It is nil-safe.
func (c *Client) Languages() []string {
	if c == nil {
		return nil
	}
	return c.languages
}

// Close does nothing. It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

func (c *Client) RecognizeFile(path string) (string, error) {
	return "", ErrOCRNotEnabled
}

func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return ErrOCRNotEnabled
}
