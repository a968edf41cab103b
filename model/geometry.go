package model

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// EMU is a length in English Metric Units
type EMU int64

// Unit conversion factors
const (
	EMUPerInch EMU = 914400
	EMUPerPt   EMU = 12700
	EMUPerCm   EMU = 360000
)

// Inches converts inches to EMU, truncating toward zero
func Inches(in float64) EMU {
	return EMU(in * float64(EMUPerInch))
}

// Pt converts points to EMU
func Pt(pt float64) EMU {
	return EMU(pt * float64(EMUPerPt))
}

// Cm converts centimetres to EMU
func Cm(cm float64) EMU {
	return EMU(cm * float64(EMUPerCm))
}

// Inches returns the length in inches
func (e EMU) Inches() float64 {
	return float64(e) / float64(EMUPerInch)
}

// Pt returns the length in points
func (e EMU) Pt() float64 {
	return float64(e) / float64(EMUPerPt)
}

// Rect is a positioned rectangle: offset from the slide's top-left corner plus extent
type Rect struct {
	X      EMU
	Y      EMU
	Width  EMU
	Height EMU
}

// NewRect creates a rectangle from offset and extent
func NewRect(x, y, width, height EMU) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the right edge X coordinate
func (r Rect) Right() EMU {
	return r.X + r.Width
}

// Bottom returns the bottom edge Y coordinate
func (r Rect) Bottom() EMU {
	return r.Y + r.Height
}

// Contains reports whether other lies entirely inside r
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// String returns the rectangle in inches, for logs and test failures
func (r Rect) String() string {
	return fmt.Sprintf("(%.3fin, %.3fin, %.3fin x %.3fin)",
		r.X.Inches(), r.Y.Inches(), r.Width.Inches(), r.Height.Inches())
}

// Color is an opaque RGB color
type Color struct {
	R, G, B uint8
}

// RGB creates a color from its components
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseHex parses a six digit hex color, with or without a leading '#'
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as upper-case RRGGBB, the form DrawingML uses
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ToRGBA returns the color as an opaque color.RGBA
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Ptr returns a pointer to a copy of c, for optional color fields
func (c Color) Ptr() *Color {
	return &c
}
