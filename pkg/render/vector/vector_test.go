package vector

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"regexp"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"

	"github.com/mwarrick/digital-business-card-sub004/pkg/fonts"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render/raster"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render/rendertest"
	"github.com/mwarrick/digital-business-card-sub004/pkg/typography"
)

func render1(t *testing.T, r *Renderer, job *render.Job) []byte {
	t.Helper()
	a, err := r.Render(context.Background(), job)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(a.Data, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %q", a.Data[:min(len(a.Data), 8)])
	}
	if a.ContentType != "application/pdf" {
		t.Errorf("content type = %q", a.ContentType)
	}
	return a.Data
}

func TestRenderPageSize(t *testing.T) {
	tests := []struct {
		mode render.Mode
		box  string
	}{
		{render.ModeSheet, `/MediaBox \[0 0 612(\.00)? 792(\.00)?\]`},
		{render.ModeCell, `/MediaBox \[0 0 243(\.00)? 168(\.00)?\]`},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			data := render1(t, New(), rendertest.Job(tt.mode))
			if !regexp.MustCompile(tt.box).Match(data) {
				t.Errorf("media box %s not found", tt.box)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	for _, mode := range []render.Mode{render.ModeCell, render.ModeSheet} {
		t.Run(string(mode), func(t *testing.T) {
			a := render1(t, New(), rendertest.Job(mode))
			b := render1(t, New(), rendertest.Job(mode))
			if !bytes.Equal(a, b) {
				t.Error("repeated renders differ")
			}
		})
	}
}

func TestRenderWithoutQR(t *testing.T) {
	with := render1(t, New(), rendertest.Job(render.ModeSheet))

	job := rendertest.Job(render.ModeSheet)
	job.QR = rendertest.FailingQR{}
	without := render1(t, New(), job)

	if len(without) >= len(with) {
		t.Errorf("document without QR (%d bytes) should be smaller than with QR (%d bytes)", len(without), len(with))
	}
}

func TestRenderMessagesAndGuides(t *testing.T) {
	job := rendertest.Job(render.ModeSheet)
	plain := render1(t, New(), job)

	job.Style.MessageAbove = "Hello, my name is"
	job.Style.MessageBelow = "Grüße aus Köln"
	job.Style.CuttingGuides = false
	decorated := render1(t, New(), job)

	if bytes.Equal(plain, decorated) {
		t.Error("messages and guides should change the document")
	}
}

func TestRenderTruncatesLongLines(t *testing.T) {
	job := rendertest.Job(render.ModeCell)
	long := "Senior Vice President of Worldwide Strategic Partnerships"
	job.Lines[1].Text = long
	data := render1(t, New(WithCompression(false)), job)

	m := regexp.MustCompile(`\((Senior[^)]*)\) Tj`).FindSubmatch(data)
	if m == nil {
		t.Fatal("truncated line not found in content stream")
	}
	got := string(m[1])
	if got == long || !strings.HasSuffix(got, "...") {
		t.Fatalf("drawn line = %q, want a prefix ending in ...", got)
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetFont("Helvetica", "", job.Typography.FontSize)
	col := job.CellPlacement().TextColumn.W
	if w := pdf.GetStringWidth(got); w > col {
		t.Errorf("drawn width %.2f exceeds the text column %.2f", w, col)
	}
	if want := typography.Truncate(long, col, typography.MeasureFunc(pdf.GetStringWidth)); got != want {
		t.Errorf("drawn line = %q, want %q", got, want)
	}
}

func TestRenderSurround(t *testing.T) {
	job := rendertest.SurroundJob(render.ModeSheet)
	data := render1(t, New(WithCompression(false)), job)

	if n := bytes.Count(data, []byte("(Hello My Name Is...) Tj")); n != 8 {
		t.Errorf("top banner text drawn %d times, want 8", n)
	}
	if n := bytes.Count(data, []byte("(Scan me) Tj")); n != 8 {
		t.Errorf("bottom banner text drawn %d times, want 8", n)
	}
	if !bytes.Contains(data, []byte("0.200 0.400 0.600 rg")) {
		t.Error("top banner colour not set")
	}
	if !bytes.Contains(data, []byte("1.000 g")) {
		t.Error("banner text is not white")
	}
	if bytes.Contains(data, []byte("(John Doe) Tj")) {
		t.Error("surround cells should not print the card lines")
	}

	noBottom := rendertest.SurroundJob(render.ModeSheet)
	noBottom.Style.BottomBanner.Text = ""
	if bytes.Contains(render1(t, New(WithCompression(false)), noBottom), []byte("(Scan me) Tj")) {
		t.Error("empty bottom banner drew text")
	}
}

func TestRenderSignatures(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 60; x++ {
			img.Set(x, y, color.RGBA{B: 180, A: 255})
		}
	}
	for _, profile := range []bool{false, true} {
		job := rendertest.Job(render.ModeSheet)
		job.Signature = img
		job.Style.ProfileSignature = profile
		data := render1(t, New(), job)
		if !bytes.Contains(data, []byte("/Subtype /Image")) {
			t.Errorf("profile=%v: no image object embedded", profile)
		}
	}
}

func TestRenderRasterCells(t *testing.T) {
	res := fonts.NewResolver(fonts.WithDir(t.TempDir()), fonts.WithSystemFonts(false))
	r := New(WithRasterCells(raster.New(raster.WithPreset(raster.Preview), raster.WithFonts(res))))
	if !r.RasterCells() {
		t.Fatal("RasterCells() = false")
	}

	job := rendertest.Job(render.ModeSheet)
	a := render1(t, r, job)
	b := render1(t, r, rendertest.Job(render.ModeSheet))
	if !bytes.Equal(a, b) {
		t.Error("repeated raster-cell renders differ")
	}
	if n := bytes.Count(a, []byte("/Subtype /Image")); n < 1 {
		t.Errorf("found %d image objects, want at least one", n)
	}

	native := render1(t, New(), rendertest.Job(render.ModeSheet))
	if bytes.Equal(a, native) {
		t.Error("raster cells should differ from native output")
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Render(ctx, rendertest.Job(render.ModeSheet)); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestCoreFamily(t *testing.T) {
	tests := map[string]string{
		"helvetica": "Helvetica",
		"times":     "Times",
		"courier":   "Courier",
		"comic":     "Helvetica",
	}
	for in, want := range tests {
		if got := coreFamily(in); got != want {
			t.Errorf("coreFamily(%q) = %q, want %q", in, got, want)
		}
	}
}
