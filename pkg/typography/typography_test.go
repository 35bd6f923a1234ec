package typography

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestReferenceLine(t *testing.T) {
	if n := utf8.RuneCountInString(ReferenceLine); n != MaxCharsPerLine {
		t.Errorf("len(ReferenceLine) = %d, MaxCharsPerLine = %d", n, MaxCharsPerLine)
	}
}

func TestScaleScenarios(t *testing.T) {
	tests := []struct {
		name     string
		longest  int
		base     float64
		wantFont float64
		wantQR   float64
	}{
		{"short name", len("Jo Li"), 12, 12, 70},
		{"empty", 0, 12, 12, 70},
		{"at threshold", 24, 12, 12, 53.2},
		{"56 chars", 56, 12, 5.14, 40},
		{"57 chars", 57, 12, 5.05, 40},
		{"floor", 200, 12, 4, 40},
		{"no upscale", 3, 8, 8, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scale(tt.longest, tt.base)
			if got.FontSize != tt.wantFont {
				t.Errorf("FontSize = %v, want %v", got.FontSize, tt.wantFont)
			}
			if diff := got.QREdge - tt.wantQR; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("QREdge = %v, want %v", got.QREdge, tt.wantQR)
			}
		})
	}
}

func TestScaleMonotonic(t *testing.T) {
	for _, base := range []float64{8, 12, 16, 20} {
		prevFont, prevQR := Scale(0, base).FontSize, Scale(0, base).QREdge
		for n := 1; n <= 300; n++ {
			got := Scale(n, base)
			if got.FontSize > prevFont {
				t.Fatalf("base %v: font grew at %d: %v > %v", base, n, got.FontSize, prevFont)
			}
			if got.FontSize < MinFontSize {
				t.Fatalf("base %v: font %v below floor at %d", base, got.FontSize, n)
			}
			if got.FontSize > base {
				t.Fatalf("base %v: font upscaled to %v", base, got.FontSize)
			}
			if got.QREdge > prevQR {
				t.Fatalf("QR grew at %d", n)
			}
			if got.QREdge < QRMinEdge || got.QREdge > QRMaxEdge {
				t.Fatalf("QR %v outside [40, 70] at %d", got.QREdge, n)
			}
			prevFont, prevQR = got.FontSize, got.QREdge
		}
	}
}

func TestLineHeight(t *testing.T) {
	ty := Typography{FontSize: 12}
	tests := []struct {
		step float64
		want float64
	}{
		{0, 13},
		{2, 15.6},
		{-2, 10.4},
	}
	for _, tt := range tests {
		got := ty.LineHeight(SpacingMultiplier(tt.step))
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("LineHeight(step %v) = %v, want %v", tt.step, got, tt.want)
		}
	}
	if ty.MessageFontSize() != 18 {
		t.Errorf("MessageFontSize = %v, want 18", ty.MessageFontSize())
	}
}

// mono measures every rune as one unit wide.
var mono = MeasureFunc(func(s string) float64 { return float64(utf8.RuneCountInString(s)) })

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  string
	}{
		{"fits", "Software Engineer", 17, "Software Engineer"},
		{"fits with room", "Jo Li", 100, "Jo Li"},
		{"drops last word", "Senior Software Engineer", 20, "Senior Software..."},
		{"drops several words", "Chief Executive Officer of Things", 14, "Chief..."},
		{"first word too long", "alexandria.thompson-whitfield@internationalconsulting.com", 20, "..."},
		{"exact fit with ellipsis", "aa bb cc", 8, "aa bb cc"},
		{"boundary", "aa bb cc dd", 8, "aa bb..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.text, tt.width, mono)
			if got != tt.want {
				t.Errorf("Truncate(%q, %v) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
			if got != tt.text {
				if !strings.HasSuffix(got, Ellipsis) {
					t.Errorf("truncated line %q lacks ellipsis", got)
				}
				if got != Ellipsis && mono.Width(got) > tt.width {
					t.Errorf("truncated line %q still too wide", got)
				}
				if prefix := strings.TrimSuffix(got, Ellipsis); prefix != "" && !strings.HasPrefix(tt.text, prefix+" ") {
					t.Errorf("%q is not cut at a word boundary of %q", got, tt.text)
				}
			}
		})
	}
}
