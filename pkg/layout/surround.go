package layout

import "math"

// Variant selects how a cell is arranged.
type Variant string

const (
	// VariantStandard puts the text lines beside the QR code.
	VariantStandard Variant = "standard"
	// VariantQRSurround fills the cell with a QR code between a top and a
	// bottom banner.
	VariantQRSurround Variant = "qr-surround"
)

// Spacing of the QR surround sheet, in points.
const (
	SurroundTopMargin     = 45.0
	SurroundLeftMargin    = 45.0
	SurroundHorizontalGap = 30.0
	SurroundVerticalGap   = 13.0

	// SurroundQRFraction caps the QR edge at this share of the cell width.
	SurroundQRFraction = 0.95

	// BannerPadding is the horizontal text inset inside a banner.
	BannerPadding = 4.0
)

// Banner heights are specified in 300 DPI pixels.
const (
	bannerDPI        = 300.0
	bannerPxPerPoint = 2.5
	bottomBannerBase = 40.0
	topBannerBase    = 80.0
)

// Surround returns the geometry of the QR surround sheet. The cells and
// page match Default; only the margins and gaps differ.
func Surround() Geometry {
	g := Default()
	g.TopMargin = SurroundTopMargin
	g.LeftMargin = SurroundLeftMargin
	g.HorizontalGap = SurroundHorizontalGap
	g.VerticalGap = SurroundVerticalGap
	return g
}

// GeometryFor returns the default geometry of v.
func GeometryFor(v Variant) Geometry {
	if v == VariantQRSurround {
		return Surround()
	}
	return Default()
}

// BannerHeights returns the heights of the top and bottom banners given the
// bottom banner font size. The top banner is at least twice the bottom one.
// A banner without text has zero height.
func BannerHeights(top, bottom bool, bottomSize float64) (float64, float64) {
	toPt := 72 / bannerDPI
	b := math.Round(bottomSize*bannerPxPerPoint+bottomBannerBase) * toPt
	t := math.Max(math.Round(2*bottomSize*bannerPxPerPoint+topBannerBase)*toPt, 2*b)
	if !top {
		t = 0
	}
	if !bottom {
		b = 0
	}
	return t, b
}

// arrangeSurround spans the banners across the full area and centres the
// largest QR square that fits between them.
func arrangeSurround(area Rect, in ArrangeInput) Placement {
	p := Placement{Content: area}
	top, bottom := math.Max(in.TopBanner, 0), math.Max(in.BottomBanner, 0)
	if top+bottom > area.H {
		top, bottom = 0, 0
	}
	p.Main = Rect{X: area.X, Y: area.Y + top, W: area.W, H: area.H - top - bottom}
	p.QRColumn = p.Main
	if top > 0 {
		p.TopBanner = Rect{X: area.X, Y: area.Y, W: area.W, H: top}
	}
	if bottom > 0 {
		p.BottomBanner = Rect{X: area.X, Y: p.Main.Bottom(), W: area.W, H: bottom}
	}

	edge := math.Min(area.W*SurroundQRFraction, p.Main.H)
	if edge > 0 {
		p.QR = Rect{
			X: p.Main.X + (p.Main.W-edge)/2,
			Y: p.Main.Y + (p.Main.H-edge)/2,
			W: edge,
			H: edge,
		}
	}
	return p
}
