// Package theme holds the fixed constants of the tech-business visual
// template: palette, typography and slide geometry.
package theme

import "github.com/tsawler/techdeck/model"

// Palette
var (
	DeepTechBlue   = model.RGB(11, 59, 113)   // #0B3B71, primary
	CyanGreen      = model.RGB(12, 170, 170)  // #0CAAAA, secondary
	BackgroundGray = model.RGB(245, 247, 250) // #F5F7FA
	White          = model.RGB(255, 255, 255)
	DarkText       = model.RGB(51, 51, 51)
	LightGray      = model.RGB(200, 200, 200)
)

// Primary and Secondary are the names the restyler uses for the two brand colors.
var (
	Primary   = DeepTechBlue
	Secondary = CyanGreen
)

// LatinFont is the typeface applied to Latin text.
const LatinFont = "Arial"

// Geometry describes slide size and page margins.
type Geometry struct {
	Width        model.EMU
	Height       model.EMU
	MarginLeft   model.EMU
	MarginRight  model.EMU
	MarginTop    model.EMU
	MarginBottom model.EMU
}

// Compact is the 10in x 5.625in 16:9 layout. Margins are 2.54cm left/right
// and 1.9cm top/bottom, expressed in inches.
func Compact() Geometry {
	return Geometry{
		Width:        model.Inches(10),
		Height:       model.Inches(5.625),
		MarginLeft:   model.Inches(1.0),
		MarginRight:  model.Inches(1.0),
		MarginTop:    model.Inches(0.748),
		MarginBottom: model.Inches(0.748),
	}
}

// Widescreen is the 13.333in x 7.5in 16:9 layout.
func Widescreen() Geometry {
	return Geometry{
		Width:        model.Inches(13.333),
		Height:       model.Inches(7.5),
		MarginLeft:   model.Inches(0.5),
		MarginRight:  model.Inches(0.5),
		MarginTop:    model.Inches(0.5),
		MarginBottom: model.Inches(0.5),
	}
}

// ContentWidth is the slide width inside the left and right margins.
func (g Geometry) ContentWidth() model.EMU {
	return g.Width - g.MarginLeft - g.MarginRight
}

// NewDeck creates an empty deck of this size.
func (g Geometry) NewDeck() *model.Deck {
	return model.NewDeck(g.Width, g.Height)
}
