package layout

import "math"

// Spacing used inside a cell, in points.
const (
	// TextColumnFraction is the share of the content width given to text.
	TextColumnFraction = 0.5

	// QRInset keeps the QR square clear of the column edges.
	QRInset = 8.0

	MessageAboveTop    = 12.0
	MessageAboveBottom = 32.0
	MessageBelowTop    = 16.0
	MessageBelowBottom = 4.0

	// SignatureGap separates the signature image from the first text line.
	SignatureGap = 4.0

	ProfileDiameter = 54.0
	LogoMaxWidth    = 108.0
	LogoMaxHeight   = 43.0
)

// ArrangeInput carries the measurements Arrange needs. It is derived from
// the assembled content and the effective typography.
type ArrangeInput struct {
	Lines      int
	LineHeight float64
	QREdge     float64

	// MessageFontSize applies to both messages.
	MessageFontSize float64
	MessageAbove    bool
	MessageBelow    bool

	// Signature is the drawn size of the signature image, zero for none.
	Signature Size

	Variant Variant

	// TopBanner and BottomBanner are the banner heights of the QR surround
	// variant, zero for none.
	TopBanner    float64
	BottomBanner float64
}

// Placement is the arrangement of one cell. All rectangles are absolute
// sheet coordinates.
type Placement struct {
	Content    Rect
	TextColumn Rect
	QRColumn   Rect

	// Main spans the signature image and the content lines.
	Main       Rect
	Signature  Rect
	LinesTop   float64
	LineHeight float64

	QR Rect

	// MessageAbove and MessageBelow are line boxes spanning the content
	// width. They are empty when the message is absent.
	MessageAbove Rect
	MessageBelow Rect

	// TopBanner and BottomBanner span the cell width in the QR surround
	// variant.
	TopBanner    Rect
	BottomBanner Rect
}

// LineTop returns the top of the i-th content line.
func (p Placement) LineTop(i int) float64 {
	return p.LinesTop + float64(i)*p.LineHeight
}

// Arrange lays out one cell's content area. The message rows reserve space
// around the main block and the whole stack is centred vertically; the QR
// square is centred in its column on the main block's midpoint. The QR
// surround variant is arranged across the whole area instead.
func Arrange(area Rect, in ArrangeInput) Placement {
	if in.Variant == VariantQRSurround {
		return arrangeSurround(area, in)
	}
	colW := area.W * TextColumnFraction
	p := Placement{
		Content:    area,
		TextColumn: Rect{X: area.X, Y: area.Y, W: colW, H: area.H},
		QRColumn:   Rect{X: area.X + colW, Y: area.Y, W: area.W - colW, H: area.H},
		LineHeight: in.LineHeight,
	}

	sigH := 0.0
	if !in.Signature.Zero() {
		sigH = in.Signature.H + SignatureGap
	}
	mainH := sigH + float64(in.Lines)*in.LineHeight

	msgLine := in.MessageFontSize + 1
	var above, below float64
	if in.MessageAbove {
		above = MessageAboveTop + msgLine + MessageAboveBottom
	}
	if in.MessageBelow {
		below = MessageBelowTop + msgLine + MessageBelowBottom
	}

	top := area.Y + CenterOffset(area.H, above+mainH+below)
	mainTop := top + above
	p.Main = Rect{X: area.X, Y: mainTop, W: colW, H: mainH}

	if sigH > 0 {
		p.Signature = Rect{X: area.X, Y: mainTop, W: in.Signature.W, H: in.Signature.H}
	}
	p.LinesTop = mainTop + sigH

	if in.MessageAbove {
		p.MessageAbove = Rect{X: area.X, Y: top + MessageAboveTop, W: area.W, H: msgLine}
	}
	if in.MessageBelow {
		p.MessageBelow = Rect{X: area.X, Y: p.Main.Bottom() + MessageBelowTop, W: area.W, H: msgLine}
	}

	edge := math.Min(in.QREdge, math.Min(p.QRColumn.W-QRInset, area.H-QRInset))
	if edge > 0 {
		p.QR = Rect{
			X: p.QRColumn.X + (p.QRColumn.W-edge)/2,
			Y: p.Main.CenterY() - edge/2,
			W: edge,
			H: edge,
		}
	}
	return p
}

// SignatureSize returns the drawn size of a signature image. Profile photos
// are a fixed circle; logos keep their aspect ratio inside the logo box.
func SignatureSize(profile bool, img Size) Size {
	if img.Zero() {
		return Size{}
	}
	if profile {
		return Size{W: ProfileDiameter, H: ProfileDiameter}
	}
	return FitInside(img, Size{W: LogoMaxWidth, H: LogoMaxHeight})
}
