package prefs

import (
	"image/color"
	"math"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/layout"
)

// Handwriting families available to the QR surround banners.
const (
	Caveat        FontFamily = "caveat"
	DancingScript FontFamily = "dancing-script"
	Kalam         FontFamily = "kalam"
)

// Banner limits and defaults.
const (
	MaxBannerText = 100

	MinTopBannerSize    = 8.0
	MinBottomBannerSize = 6.0
	MaxBannerSize       = 100.0

	DefaultTopBannerText = "Hello My Name Is..."
	DefaultBannerColor   = "#000000"
	DefaultTopBannerSize = 16.0
	DefaultBottomSize    = 8.0

	// SurroundSource tags QR surround scans when no source is given.
	SurroundSource = "nametag-qr-surround"
)

// ValidVariants lists the accepted tag designs.
var ValidVariants = map[layout.Variant]bool{
	layout.VariantStandard:   true,
	layout.VariantQRSurround: true,
}

// ValidBannerFamilies lists the families a banner may use.
var ValidBannerFamilies = map[FontFamily]bool{
	Helvetica:     true,
	Times:         true,
	Courier:       true,
	Caveat:        true,
	DancingScript: true,
	Kalam:         true,
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Banner is a coloured text band of the QR surround design. The text is
// printed in white on the banner colour.
type Banner struct {
	Text   string     `json:"text,omitempty"`
	Color  string     `json:"color"`
	Family FontFamily `json:"font_family"`
	Size   float64    `json:"font_size"`
}

// RGBA returns the banner colour. Invalid colours are black.
func (b Banner) RGBA() color.RGBA {
	c, err := colorful.Hex(b.Color)
	if err != nil || !hexColor.MatchString(b.Color) {
		return color.RGBA{A: 0xff}
	}
	r, g, bl := c.RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 0xff}
}

func (b Banner) validate(field string, minSize float64) error {
	if n := utf8.RuneCountInString(b.Text); n > MaxBannerText {
		return errs.New(errs.ErrCodeInvalidBanner, "%s text too long (%d characters, max %d)", field, n, MaxBannerText)
	}
	for _, r := range b.Text {
		if unicode.IsControl(r) {
			return errs.New(errs.ErrCodeInvalidBanner, "%s text contains control characters", field)
		}
	}
	if !hexColor.MatchString(b.Color) {
		return errs.New(errs.ErrCodeInvalidBanner, "%s color %q is not #RRGGBB", field, b.Color)
	}
	if !ValidBannerFamilies[b.Family] {
		return errs.New(errs.ErrCodeInvalidBanner, "%s font family %q (valid: caveat, dancing-script, kalam, helvetica, times, courier)", field, b.Family)
	}
	if math.IsNaN(b.Size) || b.Size < minSize || b.Size > MaxBannerSize {
		return errs.New(errs.ErrCodeInvalidBanner, "%s font size %v out of range (%v-%v)", field, b.Size, minSize, MaxBannerSize)
	}
	return nil
}

// ParseBannerFamily maps a banner family name to a FontFamily. It accepts
// the names ParseFontFamily accepts plus the handwriting families.
func ParseBannerFamily(s string) (FontFamily, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "caveat":
		return Caveat, true
	case "dancing script", "dancing-script", "dancingscript":
		return DancingScript, true
	case "kalam":
		return Kalam, true
	}
	return ParseFontFamily(s)
}

// ParseVariant maps a variant name to a layout.Variant.
func ParseVariant(s string) (layout.Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return layout.VariantStandard, true
	case "qr-surround", "qr_surround", "surround":
		return layout.VariantQRSurround, true
	}
	return layout.Variant(s), false
}

// Surround reports whether p selects the QR surround design.
func (p *Preferences) Surround() bool { return p.Variant == layout.VariantQRSurround }

// Source returns the QR source tag of the render.
func (p *Preferences) Source() string {
	if p.QRSource == "" && p.Surround() {
		return SurroundSource
	}
	return p.QRSource
}

// Geometry returns the variant's default geometry with the overrides
// applied. QR surround sheets keep their fixed left margin unless one is
// given.
func (p *Preferences) Geometry() layout.Geometry {
	o := p.Overrides()
	if p.Surround() && o.LeftMargin == nil {
		left := layout.SurroundLeftMargin
		o.LeftMargin = &left
	}
	return layout.GeometryFor(p.Variant).WithOverrides(o)
}

func bannerFromValues(v url.Values, prefix string, b *Banner) error {
	if v.Has(prefix + "_text") {
		b.Text = strings.TrimSpace(v.Get(prefix + "_text"))
	}
	if s := strings.TrimSpace(v.Get(prefix + "_color")); s != "" {
		b.Color = s
	}
	if s := v.Get(prefix + "_font_family"); strings.TrimSpace(s) != "" {
		fam, ok := ParseBannerFamily(s)
		if !ok {
			return errs.New(errs.ErrCodeInvalidBanner, "invalid %s font family %q", prefix, s)
		}
		b.Family = fam
	}
	var err error
	b.Size, err = floatParam(v, prefix+"_font_size", b.Size, errs.ErrCodeInvalidBanner)
	return err
}

func (b Banner) setValues(v url.Values, prefix string) {
	v.Set(prefix+"_text", b.Text)
	v.Set(prefix+"_color", b.Color)
	v.Set(prefix+"_font_family", string(b.Family))
	v.Set(prefix+"_font_size", formatFloat(b.Size))
}
