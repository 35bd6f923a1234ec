package prefs

import (
	"image/color"
	"net/url"
	"strings"
	"testing"

	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/layout"
)

func TestBannerDefaults(t *testing.T) {
	p := Defaults()
	if p.Variant != layout.VariantStandard || p.Surround() {
		t.Errorf("variant = %q", p.Variant)
	}
	if p.TopBanner.Text != "Hello My Name Is..." || p.TopBanner.Size != 16 || p.TopBanner.Family != Caveat {
		t.Errorf("top banner = %+v", p.TopBanner)
	}
	if p.BottomBanner.Text != "" || p.BottomBanner.Size != 8 || p.BottomBanner.Color != "#000000" {
		t.Errorf("bottom banner = %+v", p.BottomBanner)
	}
}

func TestValidateBanners(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Preferences)
		code   errs.Code
	}{
		{"bad variant", func(p *Preferences) { p.Variant = "diagonal" }, errs.ErrCodeInvalidVariant},
		{"short colour", func(p *Preferences) { p.TopBanner.Color = "#fff" }, errs.ErrCodeInvalidBanner},
		{"named colour", func(p *Preferences) { p.BottomBanner.Color = "red" }, errs.ErrCodeInvalidBanner},
		{"bad hex digit", func(p *Preferences) { p.TopBanner.Color = "#12345G" }, errs.ErrCodeInvalidBanner},
		{"long text", func(p *Preferences) { p.TopBanner.Text = strings.Repeat("x", 101) }, errs.ErrCodeInvalidBanner},
		{"control text", func(p *Preferences) { p.BottomBanner.Text = "a\nb" }, errs.ErrCodeInvalidBanner},
		{"bad family", func(p *Preferences) { p.TopBanner.Family = "papyrus" }, errs.ErrCodeInvalidBanner},
		{"top too small", func(p *Preferences) { p.TopBanner.Size = 7 }, errs.ErrCodeInvalidBanner},
		{"bottom too large", func(p *Preferences) { p.BottomBanner.Size = 101 }, errs.ErrCodeInvalidBanner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults()
			tt.modify(&p)
			if err := p.Validate(); !errs.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}

	p := Defaults()
	p.Variant = layout.VariantQRSurround
	p.BottomBanner.Size = 6
	p.TopBanner.Text = strings.Repeat("é", 100)
	if err := p.Validate(); err != nil {
		t.Errorf("boundary banner values rejected: %v", err)
	}
}

func TestBannerRGBA(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#000000", color.RGBA{A: 255}},
		{"#FF8000", color.RGBA{R: 255, G: 128, A: 255}},
		{"#1a2b3c", color.RGBA{R: 0x1a, G: 0x2b, B: 0x3c, A: 255}},
		{"nope", color.RGBA{A: 255}},
	}
	for _, tt := range tests {
		if got := (Banner{Color: tt.in}).RGBA(); got != tt.want {
			t.Errorf("RGBA(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromValuesSurround(t *testing.T) {
	v := url.Values{
		"variant":                   {"qr-surround"},
		"top_banner_text":           {"  Hi there  "},
		"top_banner_color":          {"#336699"},
		"top_banner_font_family":    {"Dancing Script"},
		"top_banner_font_size":      {"24"},
		"bottom_banner_text":        {"Scan me"},
		"bottom_banner_font_family": {"Arial"},
		"bottom_banner_font_size":   {"10"},
	}
	p, err := FromValues(v)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	if !p.Surround() {
		t.Errorf("variant = %q", p.Variant)
	}
	want := Banner{Text: "Hi there", Color: "#336699", Family: DancingScript, Size: 24}
	if p.TopBanner != want {
		t.Errorf("top banner = %+v, want %+v", p.TopBanner, want)
	}
	if p.BottomBanner.Text != "Scan me" || p.BottomBanner.Family != Helvetica || p.BottomBanner.Color != DefaultBannerColor {
		t.Errorf("bottom banner = %+v", p.BottomBanner)
	}

	got, err := FromValues(p.Values())
	if err != nil {
		t.Fatalf("FromValues(Values()): %v", err)
	}
	if got.Variant != p.Variant || got.TopBanner != p.TopBanner || got.BottomBanner != p.BottomBanner {
		t.Errorf("round trip = %+v / %+v", got.TopBanner, got.BottomBanner)
	}
}

func TestFromValuesSurroundErrors(t *testing.T) {
	tests := []struct {
		name string
		v    url.Values
		code errs.Code
	}{
		{"variant", url.Values{"variant": {"zigzag"}}, errs.ErrCodeInvalidVariant},
		{"family", url.Values{"top_banner_font_family": {"Papyrus"}}, errs.ErrCodeInvalidBanner},
		{"size", url.Values{"bottom_banner_font_size": {"big"}}, errs.ErrCodeInvalidBanner},
		{"colour", url.Values{"bottom_banner_color": {"#00000"}}, errs.ErrCodeInvalidBanner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromValues(tt.v); !errs.Is(err, tt.code) {
				t.Errorf("FromValues = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSurroundGeometryAndFilename(t *testing.T) {
	p := Defaults()
	p.Variant = layout.VariantQRSurround
	p.VerticalGap = fptr(20)

	g := p.Geometry()
	if g.TopMargin != layout.SurroundTopMargin || g.HorizontalGap != layout.SurroundHorizontalGap || g.VerticalGap != 20 {
		t.Errorf("geometry = %+v", g)
	}

	rec := card.Record{FirstName: "Jo", LastName: "Li"}
	if got := p.Filename(&rec, "pdf"); got != "Jo_Li_NameTags_HelloMyNameIs.pdf" {
		t.Errorf("Filename = %q", got)
	}
	std := Defaults()
	if got := std.Filename(&rec, "pdf"); got != DownloadFilename(&rec, "pdf") {
		t.Errorf("standard Filename = %q", got)
	}
}
