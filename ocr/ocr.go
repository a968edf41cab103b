//go:build ocr

// Package ocr recognizes text in rendered images. It is used to check that
// generated previews and rendered slides actually show their text.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract and its language data to be installed. On macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-chi-sim
package ocr

import (
	"fmt"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Enabled reports whether OCR support was compiled in.
const Enabled = true

// Client wraps a Tesseract instance configured for a fixed set of languages.
type Client struct {
	client    *gosseract.Client
	languages []string
}

// New creates a client for the given tesseract languages (e.g. "eng",
// "chi_sim"). DefaultLanguage is used when none are given.
// Close the client to release the Tesseract handle.
func New(languages ...string) (*Client, error) {
	if len(languages) == 0 {
		languages = []string{DefaultLanguage}
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(languages...); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to set languages %s: %w", strings.Join(languages, "+"), err)
	}
	return &Client{client: client, languages: languages}, nil
}

// Languages returns the configured languages. It is nil-safe.
func (c *Client) Languages() []string {
	if c == nil {
		return nil
	}
	return c.languages
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if len(imageData) == 0 {
		return "", fmt.Errorf("no image data")
	}
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// RecognizeFile performs OCR on an image file.
func (c *Client) RecognizeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return c.RecognizeImage(data)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}
