// Package prefs defines the per-request render preferences of a name tag
// sheet: which card fields are printed, the font, the optional messages,
// the spacing overrides and the QR surround banners.
package prefs

import (
	"math"
	"strings"

	"github.com/mwarrick/digital-business-card-sub004/pkg/content"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/layout"
	"github.com/mwarrick/digital-business-card-sub004/pkg/typography"
)

// FontFamily is one of the three supported type families.
type FontFamily string

const (
	Helvetica FontFamily = "helvetica"
	Times     FontFamily = "times"
	Courier   FontFamily = "courier"
)

// Signature selects the image drawn above the text lines.
type Signature string

const (
	SignatureNone    Signature = "none"
	SignatureProfile Signature = "profile"
	SignatureLogo    Signature = "logo"
)

// Limits of the numeric preferences.
const (
	MinFontSize    = 8.0
	MaxFontSize    = 20.0
	MinLineSpacing = -2.0
	MaxLineSpacing = 2.0

	DefaultFontSize = 12.0

	MaxSourceLength = 32
)

// ValidFontFamilies lists the accepted font families.
var ValidFontFamilies = map[FontFamily]bool{
	Helvetica: true,
	Times:     true,
	Courier:   true,
}

// ValidSignatures lists the accepted signature image kinds.
var ValidSignatures = map[Signature]bool{
	SignatureNone:    true,
	SignatureProfile: true,
	SignatureLogo:    true,
}

// Preferences configure one render.
type Preferences struct {
	IncludeName    bool `json:"include_name"`
	IncludeTitle   bool `json:"include_title"`
	IncludeCompany bool `json:"include_company"`
	IncludePhone   bool `json:"include_phone"`
	IncludeEmail   bool `json:"include_email"`
	IncludeWebsite bool `json:"include_website"`
	IncludeAddress bool `json:"include_address"`

	FontFamily  FontFamily `json:"font_family"`
	FontSize    float64    `json:"font_size"`
	LineSpacing float64    `json:"line_spacing"`

	MessageAbove string `json:"message_above,omitempty"`
	MessageBelow string `json:"message_below,omitempty"`

	TopMargin     *float64 `json:"top_margin,omitempty"`
	LeftMargin    *float64 `json:"left_margin,omitempty"`
	HorizontalGap *float64 `json:"horizontal_gap,omitempty"`
	VerticalGap   *float64 `json:"vertical_gap,omitempty"`

	SignatureImage Signature `json:"signature_image"`
	CuttingGuides  bool      `json:"cutting_guides"`

	// QRSource is appended to the QR target URL as src=<QRSource>.
	QRSource string `json:"qr_source,omitempty"`

	// Variant selects the tag design. The banners apply to the QR surround
	// design only.
	Variant      layout.Variant `json:"variant"`
	TopBanner    Banner         `json:"top_banner"`
	BottomBanner Banner         `json:"bottom_banner"`
}

// Defaults returns the documented default preferences.
func Defaults() Preferences {
	return Preferences{
		IncludeName:    true,
		IncludeTitle:   true,
		IncludePhone:   true,
		IncludeEmail:   true,
		IncludeWebsite: true,
		FontFamily:     Helvetica,
		FontSize:       DefaultFontSize,
		SignatureImage: SignatureNone,
		CuttingGuides:  true,
		Variant:        layout.VariantStandard,
		TopBanner: Banner{
			Text:   DefaultTopBannerText,
			Color:  DefaultBannerColor,
			Family: Caveat,
			Size:   DefaultTopBannerSize,
		},
		BottomBanner: Banner{
			Color:  DefaultBannerColor,
			Family: Caveat,
			Size:   DefaultBottomSize,
		},
	}
}

// ParseFontFamily maps a family name, including the common web and office
// names, to a FontFamily. The boolean is false for unknown names.
func ParseFontFamily(s string) (FontFamily, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "helvetica", "arial", "sans-serif", "sans":
		return Helvetica, true
	case "times", "times new roman", "serif":
		return Times, true
	case "courier", "courier new", "monospace", "mono":
		return Courier, true
	}
	return FontFamily(s), false
}

// Validate checks every field and returns the first problem as a coded
// error.
func (p *Preferences) Validate() error {
	if !ValidFontFamilies[p.FontFamily] {
		return errs.New(errs.ErrCodeInvalidFontFamily,
			"invalid font family %q (valid: helvetica, times, courier)", p.FontFamily)
	}
	if math.IsNaN(p.FontSize) || p.FontSize < MinFontSize || p.FontSize > MaxFontSize {
		return errs.New(errs.ErrCodeInvalidFontSize,
			"font size %v out of range (%v-%v)", p.FontSize, MinFontSize, MaxFontSize)
	}
	if math.IsNaN(p.LineSpacing) || p.LineSpacing < MinLineSpacing || p.LineSpacing > MaxLineSpacing {
		return errs.New(errs.ErrCodeInvalidLineSpacing,
			"line spacing %v out of range (%v to %v)", p.LineSpacing, MinLineSpacing, MaxLineSpacing)
	}
	if err := errs.ValidateMessage("message_above", p.MessageAbove); err != nil {
		return err
	}
	if err := errs.ValidateMessage("message_below", p.MessageBelow); err != nil {
		return err
	}
	for name, v := range map[string]*float64{
		"top_margin":     p.TopMargin,
		"left_margin":    p.LeftMargin,
		"horizontal_gap": p.HorizontalGap,
		"vertical_gap":   p.VerticalGap,
	} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return errs.New(errs.ErrCodeInvalidInput, "%s must be a finite number", name)
		}
	}
	if !ValidSignatures[p.SignatureImage] {
		return errs.New(errs.ErrCodeInvalidInput,
			"invalid signature image %q (valid: none, profile, logo)", p.SignatureImage)
	}
	if err := validateSource(p.QRSource); err != nil {
		return err
	}
	if !ValidVariants[p.Variant] {
		return errs.New(errs.ErrCodeInvalidVariant,
			"invalid variant %q (valid: standard, qr-surround)", p.Variant)
	}
	if err := p.TopBanner.validate("top_banner", MinTopBannerSize); err != nil {
		return err
	}
	return p.BottomBanner.validate("bottom_banner", MinBottomBannerSize)
}

func validateSource(s string) error {
	if len(s) > MaxSourceLength {
		return errs.New(errs.ErrCodeInvalidInput, "qr_source too long (max %d characters)", MaxSourceLength)
	}
	for _, r := range s {
		if !isFilenameRune(r) {
			return errs.New(errs.ErrCodeInvalidInput, "qr_source contains invalid character %q", r)
		}
	}
	return nil
}

// Flags returns the content inclusion flags.
func (p *Preferences) Flags() content.Flags {
	return content.Flags{
		Name:    p.IncludeName,
		Title:   p.IncludeTitle,
		Company: p.IncludeCompany,
		Phone:   p.IncludePhone,
		Email:   p.IncludeEmail,
		Website: p.IncludeWebsite,
		Address: p.IncludeAddress,
	}
}

// Overrides returns the layout overrides.
func (p *Preferences) Overrides() layout.Overrides {
	return layout.Overrides{
		TopMargin:     p.TopMargin,
		LeftMargin:    p.LeftMargin,
		HorizontalGap: p.HorizontalGap,
		VerticalGap:   p.VerticalGap,
	}
}

// SpacingMultiplier returns the line height multiplier.
func (p *Preferences) SpacingMultiplier() float64 {
	return typography.SpacingMultiplier(p.LineSpacing)
}
