// Package typography derives the effective font size and QR edge length of
// a name tag from its content.
//
// The values are computed once per render and shared by every backend, so a
// PDF, a PNG and an HTML rendering of the same card use the same sizes.
package typography

import (
	"math"
	"strings"
)

// ReferenceLine is the longest line that prints at the requested size.
const ReferenceLine = "john.doe@testcompany.com"

const (
	// MaxCharsPerLine is the code point length of ReferenceLine.
	MaxCharsPerLine = 24

	// MinFontSize is the floor of the downscaled font size.
	MinFontSize = 4.0

	QRMaxEdge = 70.0
	QRMinEdge = 40.0

	// QRShrinkStart is the line length after which the QR shrinks by
	// QRShrinkPerChar points for every extra character.
	QRShrinkStart   = 10
	QRShrinkPerChar = 1.2

	// MessageSizeBump is added to the font size for the messages.
	MessageSizeBump = 6.0
)

// Typography holds the effective sizes of one render, in points.
type Typography struct {
	FontSize float64 `json:"font_size"`
	QREdge   float64 `json:"qr_edge"`
}

// Scale computes the effective typography for a longest line of longest
// code points and a requested base size. The font is only ever scaled down.
func Scale(longest int, base float64) Typography {
	size := base
	if longest > MaxCharsPerLine {
		factor := math.Min(1, float64(MaxCharsPerLine)/float64(longest))
		size = math.Max(MinFontSize, round2(base*factor))
	}
	return Typography{FontSize: size, QREdge: QREdge(longest)}
}

// QREdge returns the QR edge length for a longest line of longest code
// points, within [QRMinEdge, QRMaxEdge].
func QREdge(longest int) float64 {
	over := math.Max(0, float64(longest-QRShrinkStart))
	edge := QRMaxEdge - over*QRShrinkPerChar
	return math.Max(QRMinEdge, math.Min(QRMaxEdge, edge))
}

// SpacingMultiplier converts a line spacing step (-2..2) to a multiplier.
func SpacingMultiplier(step float64) float64 {
	return 1 + 0.1*step
}

// LineHeight returns the distance between consecutive content lines.
func (t Typography) LineHeight(multiplier float64) float64 {
	return (t.FontSize + 1) * multiplier
}

// MessageFontSize returns the size of the messages above and below.
func (t Typography) MessageFontSize() float64 {
	return t.FontSize + MessageSizeBump
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// =============================================================================
// Truncation
// =============================================================================

// Ellipsis marks a truncated line.
const Ellipsis = "..."

// Measurer reports the rendered width of a string in the current font.
type Measurer interface {
	Width(s string) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(string) float64

// Width implements Measurer.
func (f MeasureFunc) Width(s string) float64 { return f(s) }

// Truncate shortens text at a word boundary so that it plus an ellipsis fits
// in maxWidth. Text that already fits is returned unchanged. When not even
// the first word fits the result is the bare ellipsis.
func Truncate(text string, maxWidth float64, m Measurer) string {
	if m.Width(text) <= maxWidth {
		return text
	}
	var kept string
	for _, word := range strings.Fields(text) {
		candidate := word
		if kept != "" {
			candidate = kept + " " + word
		}
		if m.Width(candidate+Ellipsis) > maxWidth {
			break
		}
		kept = candidate
	}
	return kept + Ellipsis
}
