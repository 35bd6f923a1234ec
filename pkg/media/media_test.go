package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/mwarrick/digital-business-card-sub004/pkg/cache"
	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "logos"), 0o755)
	os.WriteFile(filepath.Join(dir, "logos", "acme.png"), testPNG(t, 40, 10), 0o644)

	l := NewLoader(dir)
	rec := &card.Record{ID: "1", CompanyLogo: "/logos/acme.png"}
	img, err := l.Signature(context.Background(), rec, KindLogo)
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 10 {
		t.Errorf("bounds = %v, want 40x10", b)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "junk.png"), []byte("nope"), 0o644)
	l := NewLoader(dir)
	ctx := context.Background()

	tests := []struct {
		name string
		ref  string
	}{
		{"missing", "missing.png"},
		{"traversal", "../etc/passwd"},
		{"undecodable", "junk.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.Load(ctx, tt.ref); !errs.Is(err, errs.ErrCodeAssetUnavailable) {
				t.Errorf("Load(%q) = %v, want ASSET_UNAVAILABLE", tt.ref, err)
			}
		})
	}

	if _, err := l.Signature(ctx, &card.Record{ID: "1"}, KindProfile); !errs.Is(err, errs.ErrCodeAssetUnavailable) {
		t.Errorf("empty profile ref: err = %v", err)
	}
	if _, err := NewLoader("").Load(ctx, "a.png"); !errs.Is(err, errs.ErrCodeAssetUnavailable) {
		t.Errorf("no media dir: err = %v", err)
	}
}

func TestLoadURLCached(t *testing.T) {
	body := testPNG(t, 8, 8)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(body)
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	l := NewLoader("", WithCache(fc, nil))
	rec := &card.Record{ID: "1", ProfilePhoto: srv.URL + "/p.png"}

	for i := 0; i < 2; i++ {
		if _, err := l.Signature(context.Background(), rec, KindProfile); err != nil {
			t.Fatalf("Signature #%d: %v", i, err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
}

func TestRef(t *testing.T) {
	rec := &card.Record{ProfilePhoto: "p.jpg", CompanyLogo: "l.png"}
	if Ref(rec, KindProfile) != "p.jpg" || Ref(rec, KindLogo) != "l.png" || Ref(rec, "banner") != "" {
		t.Error("Ref returned the wrong field")
	}
}
