package prefs

import (
	"net/url"
	"strconv"
	"strings"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// FromValues reads preferences from query or form parameters. Absent
// parameters keep their default. Boolean flags are true only for "1",
// "true" or "on". The result is validated.
func FromValues(v url.Values) (Preferences, error) {
	p := Defaults()

	for key, dst := range map[string]*bool{
		"include_name":    &p.IncludeName,
		"include_title":   &p.IncludeTitle,
		"include_company": &p.IncludeCompany,
		"include_phone":   &p.IncludePhone,
		"include_email":   &p.IncludeEmail,
		"include_website": &p.IncludeWebsite,
		"include_address": &p.IncludeAddress,
		"cutting_guides":  &p.CuttingGuides,
	} {
		if v.Has(key) {
			*dst = parseBool(v.Get(key))
		}
	}

	if v.Has("font_family") {
		fam, ok := ParseFontFamily(v.Get("font_family"))
		if !ok {
			return p, errs.New(errs.ErrCodeInvalidFontFamily, "invalid font family %q", v.Get("font_family"))
		}
		p.FontFamily = fam
	}

	var err error
	if p.FontSize, err = floatParam(v, "font_size", p.FontSize, errs.ErrCodeInvalidFontSize); err != nil {
		return p, err
	}
	if p.LineSpacing, err = floatParam(v, "line_spacing", p.LineSpacing, errs.ErrCodeInvalidLineSpacing); err != nil {
		return p, err
	}

	for key, dst := range map[string]**float64{
		"top_margin":     &p.TopMargin,
		"left_margin":    &p.LeftMargin,
		"horizontal_gap": &p.HorizontalGap,
		"vertical_gap":   &p.VerticalGap,
	} {
		if !v.Has(key) || strings.TrimSpace(v.Get(key)) == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Get(key)), 64)
		if err != nil {
			return p, errs.New(errs.ErrCodeInvalidInput, "%s: not a number: %q", key, v.Get(key))
		}
		*dst = &f
	}

	p.MessageAbove = strings.TrimSpace(v.Get("message_above"))
	p.MessageBelow = strings.TrimSpace(v.Get("message_below"))
	if s := v.Get("signature_image"); s != "" {
		p.SignatureImage = Signature(strings.ToLower(strings.TrimSpace(s)))
	}
	p.QRSource = strings.TrimSpace(v.Get("src"))

	if v.Has("variant") {
		variant, ok := ParseVariant(v.Get("variant"))
		if !ok {
			return p, errs.New(errs.ErrCodeInvalidVariant, "invalid variant %q", v.Get("variant"))
		}
		p.Variant = variant
	}
	if err := bannerFromValues(v, "top_banner", &p.TopBanner); err != nil {
		return p, err
	}
	if err := bannerFromValues(v, "bottom_banner", &p.BottomBanner); err != nil {
		return p, err
	}

	return p, p.Validate()
}

// Values encodes p as query parameters accepted by FromValues.
func (p Preferences) Values() url.Values {
	v := url.Values{}
	for key, b := range map[string]bool{
		"include_name":    p.IncludeName,
		"include_title":   p.IncludeTitle,
		"include_company": p.IncludeCompany,
		"include_phone":   p.IncludePhone,
		"include_email":   p.IncludeEmail,
		"include_website": p.IncludeWebsite,
		"include_address": p.IncludeAddress,
		"cutting_guides":  p.CuttingGuides,
	} {
		if b {
			v.Set(key, "1")
		} else {
			v.Set(key, "0")
		}
	}
	v.Set("font_family", string(p.FontFamily))
	v.Set("font_size", formatFloat(p.FontSize))
	v.Set("line_spacing", formatFloat(p.LineSpacing))
	for key, f := range map[string]*float64{
		"top_margin":     p.TopMargin,
		"left_margin":    p.LeftMargin,
		"horizontal_gap": p.HorizontalGap,
		"vertical_gap":   p.VerticalGap,
	} {
		if f != nil {
			v.Set(key, formatFloat(*f))
		}
	}
	if p.MessageAbove != "" {
		v.Set("message_above", p.MessageAbove)
	}
	if p.MessageBelow != "" {
		v.Set("message_below", p.MessageBelow)
	}
	if p.SignatureImage != "" {
		v.Set("signature_image", string(p.SignatureImage))
	}
	if p.QRSource != "" {
		v.Set("src", p.QRSource)
	}
	if p.Variant != "" {
		v.Set("variant", string(p.Variant))
	}
	p.TopBanner.setValues(v, "top_banner")
	p.BottomBanner.setValues(v, "bottom_banner")
	return v
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func floatParam(v url.Values, key string, def float64, code errs.Code) (float64, error) {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def, errs.New(code, "%s: not a number: %q", key, s)
	}
	return f, nil
}
