// Package techdeck provides a fluent API for reading, restyling and rendering
// PowerPoint presentations in the tech-business style.
//
// Basic usage:
//
//	text, err := techdeck.Open("deck.pptx").Text()
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	md, err := techdeck.Open("deck.pptx").
//	    Slides(1, 2).
//	    Markdown()
//
//	report, err := techdeck.Open("original.pptx").
//	    Restyle(ctx, "tech-business-template.pptx")
//
// For advanced use cases, the lower-level pptx, restyle and render packages
// are also available.
package techdeck

import (
	"github.com/tsawler/techdeck/model"
	"github.com/tsawler/techdeck/pptx"
	"github.com/tsawler/techdeck/techbiz"
)

// Open returns a Deck for fluent configuration. The file is read lazily by
// the first terminal operation such as Text().
//
// Example:
//
//	count, err := techdeck.Open("deck.pptx").SlideCount()
func Open(filename string) *Deck {
	return &Deck{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates a Deck from an already-parsed pptx.Reader.
// This is useful when the presentation is already in memory.
//
// Example:
//
//	r, err := pptx.Open("deck.pptx")
//	if err != nil {
//	    // handle error
//	}
//	md, err := techdeck.FromReader(r).Markdown()
func FromReader(r *pptx.Reader) *Deck {
	return &Deck{
		reader:  r,
		options: defaultOptions(),
	}
}

// Template returns the six-slide 16:9 tech-business template.
func Template() *model.Deck {
	return techbiz.Template()
}

// Master returns the four-slide widescreen master template.
func Master() *model.Deck {
	return techbiz.Master()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := techdeck.Must(techdeck.Open("deck.pptx").SlideCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
