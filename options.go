package techdeck

import (
	"github.com/tsawler/techdeck/render"
	"github.com/tsawler/techdeck/restyle"
)

// DeckOptions holds the configuration of a fluent Deck.
type DeckOptions struct {
	// Slide selection (1-indexed in API, stored as-is)
	slides []int

	restyle restyle.Options
	render  render.Options
}

// defaultOptions returns the default options: every slide, the
// tech-business restyle settings and full HD rendering.
func defaultOptions() DeckOptions {
	return DeckOptions{
		slides:  nil, // nil means all slides
		restyle: restyle.DefaultOptions(),
		render:  render.DefaultOptions(),
	}
}

// clone creates a deep copy of DeckOptions.
func (o DeckOptions) clone() DeckOptions {
	newOpts := DeckOptions{
		restyle: o.restyle,
		render:  o.render,
	}

	if o.slides != nil {
		newOpts.slides = make([]int, len(o.slides))
		copy(newOpts.slides, o.slides)
	}

	newOpts.restyle.Keywords = append([]string(nil), o.restyle.Keywords...)
	newOpts.restyle.BulletMarkers = append([]string(nil), o.restyle.BulletMarkers...)
	newOpts.render.FontDirs = append([]string(nil), o.render.FontDirs...)

	newOpts.restyle.Styles = make(map[restyle.Class]restyle.Style, len(o.restyle.Styles))
	for class, style := range o.restyle.Styles {
		newOpts.restyle.Styles[class] = style
	}

	return newOpts
}
