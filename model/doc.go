// Package model provides the in-memory representation of a slide deck.
//
// The types in this package are what the deck builders produce and what the
// pptx writer serializes. They carry exactly the properties the templates
// need: geometry, fills, outlines, text frames and character formatting.
//
// # Deck Structure
//
// A [Deck] holds the slide size, document properties and an ordered list of
// [Slide] values:
//
//	deck := model.NewDeck(model.Inches(10), model.Inches(5.625))
//	slide := deck.AddSlide()
//	box := slide.AddTextBox(model.NewRect(model.Inches(1), model.Inches(1), model.Inches(8), model.Inches(1)))
//	box.Text.Paragraph(0).Text = "Hello"
//
// Each slide contains [Shape] values drawn in insertion order. A shape may
// hold a [TextFrame] with one or more [Paragraph] values.
//
// # Units
//
// All lengths are [EMU] (English Metric Units): 914400 per inch and 12700 per
// point. Use [Inches], [Pt] and [Cm] to build them. Font sizes and paragraph
// spacing are expressed in points.
package model
