package render

import (
	"image"
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	"github.com/mwarrick/digital-business-card-sub004/pkg/content"
	"github.com/mwarrick/digital-business-card-sub004/pkg/layout"
	"github.com/mwarrick/digital-business-card-sub004/pkg/typography"
)

// Style is the visual part of the preferences.
type Style struct {
	Family        string
	Spacing       float64
	MessageAbove  string
	MessageBelow  string
	CuttingGuides bool

	// ProfileSignature draws the signature image as a circular photo
	// instead of an aspect-fit logo.
	ProfileSignature bool

	// Variant selects the cell design. TopBanner and BottomBanner are drawn
	// only in the QR surround design.
	Variant      layout.Variant
	TopBanner    Banner
	BottomBanner Banner
}

// Banner is a coloured band with centred white bold text.
type Banner struct {
	Text   string
	Color  color.RGBA
	Family string
	Size   float64
}

// Surround reports whether the style selects the QR surround design.
func (s Style) Surround() bool { return s.Variant == layout.VariantQRSurround }

// Job is one render request after content assembly and scaling.
type Job struct {
	Card       *card.Record
	Lines      []content.Line
	Typography typography.Typography
	Geometry   layout.Geometry
	Style      Style
	Mode       Mode

	// QRContent is the text encoded in the QR code; QR supplies it. Either
	// may be empty, in which case the tag has no QR code.
	QRContent string
	QR        QRSource

	// Signature is drawn above the text lines when non-nil.
	Signature image.Image

	Logger *log.Logger
}

// Log returns the job logger or the default logger.
func (j *Job) Log() *log.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return log.Default()
}

// Page returns the output page size in points: a full sheet or one cell.
func (j *Job) Page() layout.Size {
	if j.Mode == ModeSheet {
		return layout.Size{W: j.Geometry.PageWidth, H: j.Geometry.PageHeight}
	}
	return layout.Size{W: j.Geometry.CellWidth, H: j.Geometry.CellHeight}
}

// Cells returns the cell rectangles on the page.
func (j *Job) Cells() []layout.Rect {
	if j.Mode == ModeSheet {
		return j.Geometry.Cells()
	}
	return []layout.Rect{j.Geometry.CellAt(layout.Point{})}
}

// SignatureSize returns the drawn size of the signature image.
func (j *Job) SignatureSize() layout.Size {
	if j.Signature == nil {
		return layout.Size{}
	}
	b := j.Signature.Bounds()
	return layout.SignatureSize(j.Style.ProfileSignature, layout.Size{W: float64(b.Dx()), H: float64(b.Dy())})
}

// ArrangeInput returns the measurements shared by every cell.
func (j *Job) ArrangeInput() layout.ArrangeInput {
	st := j.Style
	top, bottom := layout.BannerHeights(st.TopBanner.Text != "", st.BottomBanner.Text != "", st.BottomBanner.Size)
	return layout.ArrangeInput{
		Lines:           len(j.Lines),
		LineHeight:      j.Typography.LineHeight(j.Style.Spacing),
		QREdge:          j.Typography.QREdge,
		MessageFontSize: j.Typography.MessageFontSize(),
		MessageAbove:    j.Style.MessageAbove != "",
		MessageBelow:    j.Style.MessageBelow != "",
		Signature:       j.SignatureSize(),
		Variant:         st.Variant,
		TopBanner:       top,
		BottomBanner:    bottom,
	}
}

// area returns the region arranged for the cell at origin. QR surround
// cells use the whole cell; the standard design keeps the padding.
func (j *Job) area(origin layout.Point) layout.Rect {
	if j.Style.Surround() {
		return j.Geometry.CellAt(origin)
	}
	return j.Geometry.ContentArea(origin)
}

// CellPlacement arranges a cell whose top-left corner is at the origin.
func (j *Job) CellPlacement() layout.Placement {
	return layout.Arrange(j.area(layout.Point{}), j.ArrangeInput())
}

// Placements arranges every cell on the page in absolute coordinates.
func (j *Job) Placements() []layout.Placement {
	in := j.ArrangeInput()
	cells := j.Cells()
	out := make([]layout.Placement, len(cells))
	for i, c := range cells {
		out[i] = layout.Arrange(j.area(c.Origin()), in)
	}
	return out
}

// HasQR reports whether the job asks for a QR code.
func (j *Job) HasQR() bool {
	return j.QR != nil && j.QRContent != ""
}
