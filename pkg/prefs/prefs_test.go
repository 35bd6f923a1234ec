package prefs

import (
	"net/url"
	"strings"
	"testing"

	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	"github.com/mwarrick/digital-business-card-sub004/pkg/content"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

func fptr(v float64) *float64 { return &v }

func TestDefaults(t *testing.T) {
	p := Defaults()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	want := content.Flags{Name: true, Title: true, Phone: true, Email: true, Website: true}
	if p.Flags() != want {
		t.Errorf("Flags() = %+v, want %+v", p.Flags(), want)
	}
	if p.FontFamily != Helvetica || p.FontSize != 12 || p.LineSpacing != 0 {
		t.Errorf("font = %s %v %v", p.FontFamily, p.FontSize, p.LineSpacing)
	}
	if !p.CuttingGuides || p.SignatureImage != SignatureNone {
		t.Errorf("guides = %v, signature = %q", p.CuttingGuides, p.SignatureImage)
	}
	if !p.Overrides().Empty() {
		t.Error("defaults should carry no overrides")
	}
	if p.SpacingMultiplier() != 1 {
		t.Errorf("SpacingMultiplier = %v, want 1", p.SpacingMultiplier())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Preferences)
		code   errs.Code
	}{
		{"bad family", func(p *Preferences) { p.FontFamily = "comic" }, errs.ErrCodeInvalidFontFamily},
		{"font too small", func(p *Preferences) { p.FontSize = 7.9 }, errs.ErrCodeInvalidFontSize},
		{"font too large", func(p *Preferences) { p.FontSize = 21 }, errs.ErrCodeInvalidFontSize},
		{"spacing too low", func(p *Preferences) { p.LineSpacing = -2.5 }, errs.ErrCodeInvalidLineSpacing},
		{"spacing too high", func(p *Preferences) { p.LineSpacing = 3 }, errs.ErrCodeInvalidLineSpacing},
		{"long message", func(p *Preferences) { p.MessageAbove = strings.Repeat("x", 101) }, errs.ErrCodeInvalidMessage},
		{"bad signature", func(p *Preferences) { p.SignatureImage = "banner" }, errs.ErrCodeInvalidInput},
		{"bad source", func(p *Preferences) { p.QRSource = "a&b" }, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults()
			tt.modify(&p)
			err := p.Validate()
			if !errs.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateBounds(t *testing.T) {
	for _, size := range []float64{8, 20} {
		p := Defaults()
		p.FontSize = size
		if err := p.Validate(); err != nil {
			t.Errorf("font size %v: %v", size, err)
		}
	}
	for _, sp := range []float64{-2, 2} {
		p := Defaults()
		p.LineSpacing = sp
		if err := p.Validate(); err != nil {
			t.Errorf("line spacing %v: %v", sp, err)
		}
	}
}

func TestParseFontFamily(t *testing.T) {
	tests := []struct {
		in   string
		want FontFamily
		ok   bool
	}{
		{"helvetica", Helvetica, true},
		{"Arial", Helvetica, true},
		{" Times New Roman ", Times, true},
		{"Courier New", Courier, true},
		{"Papyrus", "Papyrus", false},
	}
	for _, tt := range tests {
		got, ok := ParseFontFamily(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFontFamily(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("include_title", "0")
	v.Set("include_company", "1")
	v.Set("include_address", "true")
	v.Set("font_family", "Arial")
	v.Set("font_size", "14")
	v.Set("line_spacing", "1.5")
	v.Set("message_above", "  Hello, my name is  ")
	v.Set("top_margin", "30")
	v.Set("horizontal_gap", "")
	v.Set("signature_image", "Profile")
	v.Set("src", "badge")

	p, err := FromValues(v)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	if p.IncludeTitle || !p.IncludeCompany || !p.IncludeAddress || !p.IncludeName {
		t.Errorf("flags = %+v", p.Flags())
	}
	if p.FontFamily != Helvetica || p.FontSize != 14 || p.LineSpacing != 1.5 {
		t.Errorf("font = %s %v %v", p.FontFamily, p.FontSize, p.LineSpacing)
	}
	if p.MessageAbove != "Hello, my name is" {
		t.Errorf("MessageAbove = %q", p.MessageAbove)
	}
	if p.TopMargin == nil || *p.TopMargin != 30 || p.HorizontalGap != nil {
		t.Errorf("overrides = %+v", p.Overrides())
	}
	if p.SignatureImage != SignatureProfile || p.QRSource != "badge" {
		t.Errorf("signature = %q, src = %q", p.SignatureImage, p.QRSource)
	}
}

func TestFromValuesErrors(t *testing.T) {
	tests := []struct {
		key, value string
		code       errs.Code
	}{
		{"font_family", "wingdings", errs.ErrCodeInvalidFontFamily},
		{"font_size", "big", errs.ErrCodeInvalidFontSize},
		{"font_size", "40", errs.ErrCodeInvalidFontSize},
		{"line_spacing", "x", errs.ErrCodeInvalidLineSpacing},
		{"vertical_gap", "wide", errs.ErrCodeInvalidInput},
		{"message_below", strings.Repeat("y", 101), errs.ErrCodeInvalidMessage},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := FromValues(url.Values{tt.key: {tt.value}})
			if !errs.Is(err, tt.code) {
				t.Errorf("FromValues(%s=%q) = %v, want %s", tt.key, tt.value, err, tt.code)
			}
		})
	}
}

func TestValuesRoundTrip(t *testing.T) {
	p := Defaults()
	p.IncludeAddress = true
	p.FontFamily = Courier
	p.FontSize = 10.5
	p.LeftMargin = fptr(20)
	p.MessageBelow = "Ask me about Go"
	p.CuttingGuides = false

	got, err := FromValues(p.Values())
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	if got.FontFamily != Courier || got.FontSize != 10.5 || !got.IncludeAddress || got.CuttingGuides {
		t.Errorf("round trip = %+v", got)
	}
	if got.LeftMargin == nil || *got.LeftMargin != 20 || got.MessageBelow != p.MessageBelow {
		t.Errorf("round trip lost overrides or message: %+v", got)
	}
}

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		name string
		rec  card.Record
		ext  string
		want string
	}{
		{"sample", *card.Sample(), "pdf", "John_Doe_Test_Company_Software_Engineer_NameTags.pdf"},
		{"no company", card.Record{FirstName: "Jo", LastName: "Li", JobTitle: "CTO"}, ".png", "Jo_Li_CTO_NameTags.png"},
		{"name only", card.Record{FirstName: "Jo", LastName: "Li"}, "html", "Jo_Li_NameTags.html"},
		{"special chars", card.Record{FirstName: "José", LastName: "O'Neil", Company: "A&B, Inc."}, "pdf", "Jos__O_Neil_A_B__Inc__NameTags.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DownloadFilename(&tt.rec, tt.ext); got != tt.want {
				t.Errorf("DownloadFilename = %q, want %q", got, tt.want)
			}
		})
	}
}
