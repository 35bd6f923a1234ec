// Package raster renders name tags as PNG bitmaps with github.com/fogleman/gg.
//
// Two presets cover the common cases: [Preview] draws at twice the point
// size for on-screen previews and [Print] draws at 300 DPI for export. Text
// uses a TrueType face from the font resolver when one is installed and the
// built-in 7x13 bitmap face otherwise; baselines always come from the face
// metrics, so a substituted font stays on its line.
//
// Sheet renders paint the eight cells concurrently into separate bitmaps and
// composite them onto the page in slot order.
package raster

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/mwarrick/digital-business-card-sub004/pkg/fonts"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render"
)

// Preset is a named scale factor from points to pixels.
type Preset struct {
	Name  string
	Scale float64
}

var (
	// Preview renders at 2x for screens.
	Preview = Preset{Name: "preview", Scale: 2}

	// Print renders at 300 DPI.
	Print = Preset{Name: "print", Scale: 300.0 / 72}
)

// Presets maps preset names to presets.
var Presets = map[string]Preset{
	Preview.Name: Preview,
	Print.Name:   Print,
}

// Renderer draws PNG name tags.
type Renderer struct {
	scale float64
	fonts *fonts.Resolver
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPreset sets the scale from a preset.
func WithPreset(p Preset) Option {
	return func(r *Renderer) { r.scale = p.Scale }
}

// WithScale sets the number of pixels per point.
func WithScale(s float64) Option {
	return func(r *Renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithFonts sets the font resolver.
func WithFonts(f *fonts.Resolver) Option {
	return func(r *Renderer) {
		if f != nil {
			r.fonts = f
		}
	}
}

// New creates a Renderer using the Preview preset.
func New(opts ...Option) *Renderer {
	r := &Renderer{scale: Preview.Scale}
	for _, opt := range opts {
		opt(r)
	}
	if r.fonts == nil {
		r.fonts = fonts.NewResolver()
	}
	return r
}

// Format implements render.Renderer.
func (r *Renderer) Format() render.Format { return render.FormatPNG }

// Scale returns the number of pixels per point.
func (r *Renderer) Scale() float64 { return r.scale }

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, job *render.Job) (*render.Artifact, error) {
	img, err := r.Image(ctx, job)
	if err != nil {
		return nil, err
	}

	buf := render.GetBuffer()
	defer render.PutBuffer(buf)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &render.Artifact{
		Format:      render.FormatPNG,
		ContentType: render.FormatPNG.ContentType(),
		Data:        bytes.Clone(buf.Bytes()),
		Width:       float64(b.Dx()),
		Height:      float64(b.Dy()),
	}, nil
}

// Image renders job to a bitmap.
func (r *Renderer) Image(ctx context.Context, job *render.Job) (*image.RGBA, error) {
	p := r.Painter(ctx, job)
	if job.Mode != render.ModeSheet {
		return p.Paint(FrameSolid), nil
	}

	frame := FrameNone
	if job.Style.CuttingGuides {
		frame = FrameDashed
	}

	page := job.Page()
	dst := image.NewRGBA(image.Rect(0, 0, r.px(page.W), r.px(page.H)))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	// Rounded cell origins can overlap by a pixel when gaps are zero, so
	// cells are painted concurrently and composited in slot order.
	cells := job.Cells()
	imgs := make([]*image.RGBA, len(cells))
	g, gctx := errgroup.WithContext(ctx)
	for i := range cells {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			imgs[i] = p.Paint(frame)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, cell := range cells {
		at := image.Pt(r.px(cell.X), r.px(cell.Y))
		draw.Draw(dst, imgs[i].Bounds().Add(at), imgs[i], image.Point{}, draw.Src)
	}
	return dst, nil
}

func (r *Renderer) px(v float64) int {
	return int(math.Round(v * r.scale))
}

var _ render.Renderer = (*Renderer)(nil)
