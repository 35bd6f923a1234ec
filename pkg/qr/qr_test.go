package qr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mwarrick/digital-business-card-sub004/pkg/cache"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/httputil"
)

const testURL = "https://sharemycard.app/card.php?id=42"

func TestTargetURL(t *testing.T) {
	tests := []struct {
		host, id, src, want string
	}{
		{"", "42", "", "https://sharemycard.app/card.php?id=42"},
		{"example.com/", "42", "", "https://example.com/card.php?id=42"},
		{"sharemycard.app", "42", "nametag", "https://sharemycard.app/card.php?id=42&src=nametag"},
		{"http://localhost:8080", "a b", "", "http://localhost:8080/card.php?id=a+b"},
	}
	for _, tt := range tests {
		if got := TargetURL(tt.host, tt.id, tt.src); got != tt.want {
			t.Errorf("TargetURL(%q, %q, %q) = %q, want %q", tt.host, tt.id, tt.src, got, tt.want)
		}
	}
}

func TestEncodeRuns(t *testing.T) {
	sym, err := Encode(testURL)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if sym.Size() < 21 || (sym.Size()-21)%4 != 0 {
		t.Fatalf("Size = %d, not a QR version size", sym.Size())
	}

	dark := 0
	for y := 0; y < sym.Size(); y++ {
		for x := 0; x < sym.Size(); x++ {
			if sym.Dark(x, y) {
				dark++
			}
		}
	}
	covered := 0
	for _, r := range sym.Runs() {
		for x := r.X; x < r.X+r.Len; x++ {
			if !sym.Dark(x, r.Y) {
				t.Fatalf("run %+v covers a light module", r)
			}
		}
		covered += r.Len
	}
	if covered != dark {
		t.Errorf("runs cover %d modules, want %d", covered, dark)
	}
	if !sym.Dark(0, 0) {
		t.Error("finder pattern corner should be dark")
	}
}

func TestSymbolImage(t *testing.T) {
	sym, _ := Encode(testURL)
	img, err := sym.Image(5)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if img.Bounds().Dx() != sym.Size() {
		t.Errorf("small request should fall back to one pixel per module, got %d", img.Bounds().Dx())
	}
}

func bordered(inner, border int) *image.RGBA {
	size := inner + 2*border
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	dark := image.Rect(border, border, border+inner, border+inner)
	draw.Draw(img, dark, image.Black, image.Point{}, draw.Src)
	img.Set(border+1, border+1, color.White)
	return img
}

func TestCropQuietZone(t *testing.T) {
	got := CropQuietZone(bordered(30, 7))
	if b := got.Bounds(); b.Dx() != 30 || b.Dy() != 30 {
		t.Errorf("cropped to %v, want 30x30", b)
	}

	blank := image.NewRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(blank, blank.Bounds(), image.White, image.Point{}, draw.Src)
	if CropQuietZone(blank) != image.Image(blank) {
		t.Error("blank image should be returned unchanged")
	}
}

func TestFit(t *testing.T) {
	got := Fit(bordered(30, 0), 140)
	if b := got.Bounds(); b.Dx() != 140 || b.Dy() != 140 {
		t.Fatalf("Fit = %v, want 140x140", b)
	}
	r, _, _, _ := got.At(70, 70).RGBA()
	if r != 0 {
		t.Error("nearest-neighbour resize should keep pure black modules")
	}
}

func TestLocalProvider(t *testing.T) {
	img, err := NewLocalProvider().Fetch(context.Background(), testURL, 200)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if img.Bounds().Dx() < 200 {
		t.Errorf("width = %d, want >= 200", img.Bounds().Dx())
	}
}

func pngBytes(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRemoteProvider(t *testing.T) {
	body := pngBytes(t, bordered(40, 10))
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	defer srv.Close()

	p := NewRemoteProvider(httputil.NewClient(), srv.URL+"/v1/create-qr-code/")
	img, err := p.Fetch(context.Background(), testURL, 280)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if img.Bounds().Dx() != 60 {
		t.Errorf("width = %d, want 60", img.Bounds().Dx())
	}
	if !strings.Contains(gotQuery, "size=280x280") || !strings.Contains(gotQuery, "data=https%3A%2F%2Fsharemycard.app") {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestRemoteRequestURLClampsSize(t *testing.T) {
	p := NewRemoteProvider(nil, "")
	if u := p.RequestURL("x", 5000); !strings.Contains(u, "size=1000x1000") {
		t.Errorf("RequestURL = %q, want size clamped to 1000", u)
	}
	if u := p.RequestURL("x", 1); !strings.HasPrefix(u, DefaultEndpoint) || !strings.Contains(u, "size=10x10") {
		t.Errorf("RequestURL = %q", u)
	}
}

type failingProvider struct{ calls atomic.Int32 }

func (*failingProvider) Name() string { return "failing" }
func (p *failingProvider) Fetch(context.Context, string, int) (image.Image, error) {
	p.calls.Add(1)
	return nil, errs.New(errs.ErrCodeNetwork, "unreachable")
}

type slowProvider struct{}

func (slowProvider) Name() string { return "slow" }
func (slowProvider) Fetch(ctx context.Context, _ string, _ int) (image.Image, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestFallbackProvider(t *testing.T) {
	bad := &failingProvider{}
	p := NewFallbackProvider(bad, NewLocalProvider())
	if _, err := p.Fetch(context.Background(), testURL, 100); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if bad.calls.Load() != 1 {
		t.Errorf("first provider called %d times", bad.calls.Load())
	}
	if p.Name() != "fallback:failing:local" {
		t.Errorf("Name = %q", p.Name())
	}

	_, err := NewFallbackProvider(bad, bad).Fetch(context.Background(), testURL, 100)
	if err == nil || !strings.Contains(err.Error(), "unreachable") {
		t.Errorf("all failing: err = %v", err)
	}
	if _, err := NewFallbackProvider().Fetch(context.Background(), testURL, 100); !errs.Is(err, errs.ErrCodeAssetUnavailable) {
		t.Errorf("empty fallback: err = %v", err)
	}
}

func TestCompositorRaster(t *testing.T) {
	c := NewCompositor(nil)
	img, err := c.Raster(context.Background(), testURL, 140)
	if err != nil {
		t.Fatalf("Raster: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 140 || b.Dy() != 140 {
		t.Errorf("bounds = %v, want 140x140", b)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r > 0x8000 {
		t.Error("top-left pixel should be the dark finder pattern after cropping")
	}
}

func TestCompositorTimeout(t *testing.T) {
	c := NewCompositor(slowProvider{}, WithTimeout(20*time.Millisecond))
	start := time.Now()
	_, err := c.Raster(context.Background(), testURL, 100)
	if !errs.Is(err, errs.ErrCodeAssetUnavailable) {
		t.Errorf("err = %v, want ASSET_UNAVAILABLE", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want wrapped deadline", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout not applied")
	}
}

func TestCompositorCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	local := NewLocalProvider()
	c := NewCompositor(local, WithCache(fc, nil))
	if _, err := c.Raster(context.Background(), testURL, 90); err != nil {
		t.Fatalf("first Raster: %v", err)
	}

	bad := &failingProvider{}
	cached := NewCompositor(bad, WithCache(fc, nil))
	key := cache.NewDefaultKeyer().QRKey(local.Name(), testURL, 90)
	if _, hit, _ := fc.Get(context.Background(), key); !hit {
		t.Fatal("expected composed QR in cache")
	}
	if _, err := cached.Raster(context.Background(), testURL, 90); err == nil {
		t.Error("different provider names must not share cache entries")
	}
}

func TestCompositorSymbol(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewCompositor(nil).Symbol(ctx, testURL); !errs.Is(err, errs.ErrCodeAssetUnavailable) {
		t.Errorf("canceled Symbol err = %v", err)
	}
	if _, err := NewCompositor(nil).Raster(context.Background(), testURL, 0); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("zero edge err = %v", err)
	}
}
