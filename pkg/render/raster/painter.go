package raster

import (
	"context"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/mwarrick/digital-business-card-sub004/pkg/fonts"
	"github.com/mwarrick/digital-business-card-sub004/pkg/layout"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render"
	"github.com/mwarrick/digital-business-card-sub004/pkg/typography"
)

// Frame is the outline drawn around a cell.
type Frame int

const (
	FrameNone Frame = iota
	// FrameSolid is a 1px light gray border.
	FrameSolid
	// FrameDashed is the dashed cutting guide.
	FrameDashed
)

const guideGray = 200

// Painter draws single cells of one job. Assets are loaded once when the
// painter is created; Paint may then be called from several goroutines.
type Painter struct {
	job   *render.Job
	scale float64
	place layout.Placement
	w, h  int

	regular, bold *truetype.Font
	// top and bottom are the banner fonts of QR surround cells.
	top, bottom *truetype.Font

	qr        image.Image
	signature image.Image
}

// Painter prepares a painter for job. Missing fonts, QR codes and signature
// images are reported and left out; preparing never fails.
func (r *Renderer) Painter(ctx context.Context, job *render.Job) *Painter {
	p := &Painter{
		job:   job,
		scale: r.scale,
		place: job.CellPlacement(),
		w:     r.px(job.Geometry.CellWidth),
		h:     r.px(job.Geometry.CellHeight),
	}

	var err error
	if p.regular, err = r.fonts.Font(job.Style.Family, false); err != nil {
		render.AssetUnavailable(ctx, job.Log(), render.AssetFont, job.Style.Family, err)
	}
	if p.bold, err = r.fonts.Font(job.Style.Family, true); err != nil {
		p.bold = p.regular
	}
	if job.Style.Surround() {
		p.top = r.bannerFont(ctx, job, job.Style.TopBanner)
		p.bottom = r.bannerFont(ctx, job, job.Style.BottomBanner)
	}

	if job.HasQR() && !p.place.QR.Empty() {
		edge := r.px(p.place.QR.W)
		if p.qr, err = job.QR.Raster(ctx, job.QRContent, edge); err != nil {
			render.AssetUnavailable(ctx, job.Log(), render.AssetQR, job.QRContent, err)
		}
	}

	if job.Signature != nil && !p.place.Signature.Empty() {
		w, h := r.px(p.place.Signature.W), r.px(p.place.Signature.H)
		if job.Style.ProfileSignature {
			p.signature = imaging.Fill(job.Signature, w, h, imaging.Center, imaging.Lanczos)
		} else {
			p.signature = imaging.Resize(job.Signature, w, h, imaging.Lanczos)
		}
	}
	return p
}

func (r *Renderer) bannerFont(ctx context.Context, job *render.Job, b render.Banner) *truetype.Font {
	if b.Text == "" {
		return nil
	}
	f, err := r.fonts.Font(b.Family, true)
	if err != nil {
		render.AssetUnavailable(ctx, job.Log(), render.AssetFont, b.Family, err)
	}
	return f
}

// Size returns the cell size in pixels.
func (p *Painter) Size() (int, int) { return p.w, p.h }

// Paint draws one cell onto a fresh white bitmap.
func (p *Painter) Paint(frame Frame) *image.RGBA {
	dc := gg.NewContext(p.w, p.h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	st := p.job.Style
	if st.Surround() {
		p.drawBanner(dc, st.TopBanner, p.top, p.place.TopBanner)
		p.drawBanner(dc, st.BottomBanner, p.bottom, p.place.BottomBanner)
		p.drawQR(dc)
		p.drawFrame(dc, frame)
		return dc.Image().(*image.RGBA)
	}

	p.drawFrame(dc, frame)

	ty := p.job.Typography
	s := p.scale

	if st.MessageAbove != "" {
		p.drawCentered(dc, p.face(true, ty.MessageFontSize()), st.MessageAbove, p.place.MessageAbove)
	}

	if p.signature != nil {
		sig := p.place.Signature.Scale(s)
		x, y := int(math.Round(sig.X)), int(math.Round(sig.Y))
		if st.ProfileSignature {
			dc.DrawCircle(sig.CenterX(), sig.CenterY(), sig.W/2)
			dc.Clip()
			dc.DrawImage(p.signature, x, y)
			dc.ResetClip()
		} else {
			dc.DrawImage(p.signature, x, y)
		}
	}

	regular := p.face(false, ty.FontSize)
	bold := p.face(true, ty.FontSize)
	maxW := p.place.TextColumn.W * s
	dc.SetRGB(0, 0, 0)
	for i, line := range p.job.Lines {
		face := regular
		if line.Bold() {
			face = bold
		}
		text := typography.Truncate(line.Text, maxW, measure(face))
		dc.SetFontFace(face)
		dc.DrawString(text, p.place.TextColumn.X*s, p.place.LineTop(i)*s+fonts.Ascent(face))
	}

	p.drawQR(dc)

	if st.MessageBelow != "" {
		p.drawCentered(dc, p.face(true, ty.MessageFontSize()), st.MessageBelow, p.place.MessageBelow)
	}

	return dc.Image().(*image.RGBA)
}

func (p *Painter) drawQR(dc *gg.Context) {
	if p.qr == nil {
		return
	}
	q := p.place.QR.Scale(p.scale)
	dc.DrawImage(p.qr, int(math.Round(q.X)), int(math.Round(q.Y)))
}

// drawBanner fills box with the banner colour and centres the text in
// white bold, clipped to the box.
func (p *Painter) drawBanner(dc *gg.Context, b render.Banner, f *truetype.Font, box layout.Rect) {
	if box.Empty() {
		return
	}
	r := box.Scale(p.scale)
	dc.SetColor(b.Color)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Fill()
	if b.Text == "" {
		return
	}

	face := p.fontFace(f, b.Size)
	text := typography.Truncate(b.Text, r.W-2*layout.BannerPadding*p.scale, measure(face))
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Clip()
	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(face)
	dc.DrawString(text, r.CenterX()-fonts.Width(face, text)/2, r.CenterY()+fonts.Ascent(face)/2)
	dc.ResetClip()
}

func (p *Painter) drawFrame(dc *gg.Context, frame Frame) {
	if frame == FrameNone {
		return
	}
	dc.SetRGB255(guideGray, guideGray, guideGray)
	w, h := float64(p.w), float64(p.h)
	switch frame {
	case FrameSolid:
		dc.SetLineWidth(1)
		dc.DrawRectangle(0.5, 0.5, w-1, h-1)
	case FrameDashed:
		lw := math.Max(1, 0.5*p.scale)
		dc.SetLineWidth(lw)
		dc.SetDash(2*p.scale, 2*p.scale)
		dc.DrawRectangle(lw/2, lw/2, w-lw, h-lw)
	}
	dc.Stroke()
	dc.SetDash()
}

func (p *Painter) drawCentered(dc *gg.Context, face font.Face, msg string, box layout.Rect) {
	b := box.Scale(p.scale)
	text := typography.Truncate(msg, b.W, measure(face))
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(face)
	dc.DrawString(text, b.CenterX()-fonts.Width(face, text)/2, b.Y+fonts.Ascent(face))
}

// face returns a new face for one Paint call. Faces cache glyphs and are not
// shared between goroutines.
func (p *Painter) face(bold bool, size float64) font.Face {
	f := p.regular
	if bold {
		f = p.bold
	}
	return p.fontFace(f, size)
}

func (p *Painter) fontFace(f *truetype.Font, size float64) font.Face {
	if f == nil {
		return fonts.FallbackFace(size, 72*p.scale)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72 * p.scale,
		Hinting: font.HintingFull,
	})
}

func measure(face font.Face) typography.Measurer {
	return typography.MeasureFunc(func(s string) float64 { return fonts.Width(face, s) })
}
