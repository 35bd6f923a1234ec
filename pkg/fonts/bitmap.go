package fonts

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// fallbackHeight is the pixel height of the built-in bitmap face.
const fallbackHeight = 13

// FallbackFace returns the built-in bitmap face scaled so its line height
// matches a face of the given point size at dpi. Glyphs are enlarged with
// nearest-neighbour sampling and cached per face, so the face must not be
// shared between goroutines.
func FallbackFace(size, dpi float64) font.Face {
	k := size * dpi / 72 / fallbackHeight
	if k <= 0 || k == 1 {
		return basicfont.Face7x13
	}
	return &scaledFace{
		inner:  basicfont.Face7x13,
		k:      k,
		glyphs: make(map[rune]scaledGlyph),
	}
}

type scaledGlyph struct {
	dr      image.Rectangle
	mask    image.Image
	advance fixed.Int26_6
	ok      bool
}

type scaledFace struct {
	inner  font.Face
	k      float64
	glyphs map[rune]scaledGlyph
}

func (f *scaledFace) fix(v fixed.Int26_6) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(float64(v) * f.k))
}

func (f *scaledFace) px(v int) int {
	return int(math.Round(float64(v) * f.k))
}

func (f *scaledFace) glyph(r rune) scaledGlyph {
	if g, ok := f.glyphs[r]; ok {
		return g
	}
	dr, mask, maskp, adv, ok := f.inner.Glyph(fixed.Point26_6{}, r)
	g := scaledGlyph{advance: f.fix(adv), ok: ok}
	if ok && !dr.Empty() {
		w := max(1, f.px(dr.Dx()))
		h := max(1, f.px(dr.Dy()))
		src := imaging.Crop(mask, image.Rectangle{Min: maskp, Max: maskp.Add(dr.Size())})
		g.mask = imaging.Resize(src, w, h, imaging.NearestNeighbor)
		x, y := f.px(dr.Min.X), f.px(dr.Min.Y)
		g.dr = image.Rect(x, y, x+w, y+h)
	}
	f.glyphs[r] = g
	return g
}

func (f *scaledFace) Close() error { return nil }

func (f *scaledFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	g := f.glyph(r)
	if !g.ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	if g.mask == nil {
		return image.Rectangle{}, image.NewAlpha(image.Rectangle{}), image.Point{}, g.advance, true
	}
	at := image.Pt(dot.X.Round(), dot.Y.Round())
	return g.dr.Add(at), g.mask, image.Point{}, g.advance, true
}

func (f *scaledFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	b, adv, ok := f.inner.GlyphBounds(r)
	b.Min.X, b.Min.Y = f.fix(b.Min.X), f.fix(b.Min.Y)
	b.Max.X, b.Max.Y = f.fix(b.Max.X), f.fix(b.Max.Y)
	return b, f.fix(adv), ok
}

func (f *scaledFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	adv, ok := f.inner.GlyphAdvance(r)
	return f.fix(adv), ok
}

func (f *scaledFace) Kern(r0, r1 rune) fixed.Int26_6 {
	return f.fix(f.inner.Kern(r0, r1))
}

func (f *scaledFace) Metrics() font.Metrics {
	m := f.inner.Metrics()
	return font.Metrics{
		Height:     f.fix(m.Height),
		Ascent:     f.fix(m.Ascent),
		Descent:    f.fix(m.Descent),
		XHeight:    f.fix(m.XHeight),
		CapHeight:  f.fix(m.CapHeight),
		CaretSlope: m.CaretSlope,
	}
}
