package vector

import (
	"context"
	"image/png"
	"math"

	"codeberg.org/go-pdf/fpdf"
	"github.com/disintegration/imaging"

	"github.com/mwarrick/digital-business-card-sub004/pkg/layout"
	"github.com/mwarrick/digital-business-card-sub004/pkg/qr"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render"
	"github.com/mwarrick/digital-business-card-sub004/pkg/typography"
)

// signatureDPI is the resolution at which signature images are embedded.
const signatureDPI = 300.0

// doc draws native vector cells into one fpdf document. fpdf is not safe for
// concurrent use, so cells are drawn one after another.
type doc struct {
	pdf    *fpdf.Fpdf
	job    *render.Job
	tr     func(string) string
	family string
}

func newDoc(pdf *fpdf.Fpdf, job *render.Job) *doc {
	return &doc{
		pdf:    pdf,
		job:    job,
		tr:     translator(pdf),
		family: coreFamily(job.Style.Family),
	}
}

func (d *doc) draw(ctx context.Context) error {
	var sym *qr.Symbol
	if d.job.HasQR() {
		var err error
		if sym, err = d.job.QR.Symbol(ctx, d.job.QRContent); err != nil {
			render.AssetUnavailable(ctx, d.job.Log(), render.AssetQR, d.job.QRContent, err)
			sym = nil
		}
	}
	sig := d.registerSignature(ctx)

	guides := d.job.Mode == render.ModeSheet && d.job.Style.CuttingGuides
	cells := d.job.Cells()
	for i, p := range d.job.Placements() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if guides {
			c := cells[i]
			drawGuide(d.pdf, c.X, c.Y, c.W, c.H)
		}
		d.cell(p, sym, sig)
	}
	return d.pdf.Error()
}

func (d *doc) cell(p layout.Placement, sym *qr.Symbol, sig string) {
	st := d.job.Style
	ty := d.job.Typography
	d.pdf.SetTextColor(0, 0, 0)

	if st.Surround() {
		d.banner(st.TopBanner, p.TopBanner)
		d.banner(st.BottomBanner, p.BottomBanner)
		if sym != nil && !p.QR.Empty() {
			d.symbol(sym, p.QR)
		}
		return
	}

	if st.MessageAbove != "" {
		d.centered(st.MessageAbove, ty.MessageFontSize(), p.MessageAbove)
	}

	if sig != "" {
		s := p.Signature
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		if st.ProfileSignature {
			d.pdf.ClipCircle(s.CenterX(), s.CenterY(), s.W/2, false)
			d.pdf.ImageOptions(sig, s.X, s.Y, s.W, s.H, false, opts, 0, "")
			d.pdf.ClipEnd()
		} else {
			d.pdf.ImageOptions(sig, s.X, s.Y, s.W, s.H, false, opts, 0, "")
		}
	}

	for i, line := range d.job.Lines {
		style := ""
		if line.Bold() {
			style = "B"
		}
		d.pdf.SetFont(d.family, style, ty.FontSize)
		text := typography.Truncate(line.Text, p.TextColumn.W, d.measurer())
		d.pdf.Text(p.TextColumn.X, p.LineTop(i)+d.ascent(ty.FontSize), d.tr(text))
	}

	if sym != nil && !p.QR.Empty() {
		d.symbol(sym, p.QR)
	}

	if st.MessageBelow != "" {
		d.centered(st.MessageBelow, ty.MessageFontSize(), p.MessageBelow)
	}
}

// symbol fills the dark module runs of sym inside box.
func (d *doc) symbol(sym *qr.Symbol, box layout.Rect) {
	m := box.W / float64(sym.Size())
	d.pdf.SetFillColor(0, 0, 0)
	for _, r := range sym.Runs() {
		d.pdf.Rect(box.X+float64(r.X)*m, box.Y+float64(r.Y)*m, float64(r.Len)*m, m, "F")
	}
}

// banner fills box with the banner colour and centres its text in white,
// clipped to the box.
func (d *doc) banner(b render.Banner, box layout.Rect) {
	if box.Empty() {
		return
	}
	d.pdf.SetFillColor(int(b.Color.R), int(b.Color.G), int(b.Color.B))
	d.pdf.Rect(box.X, box.Y, box.W, box.H, "F")
	if b.Text == "" {
		return
	}

	d.pdf.SetFont(coreFamily(b.Family), "B", b.Size)
	text := d.tr(typography.Truncate(b.Text, box.W-2*layout.BannerPadding, d.measurer()))
	w := d.pdf.GetStringWidth(text)
	d.pdf.ClipRect(box.X, box.Y, box.W, box.H, false)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.Text(box.CenterX()-w/2, box.CenterY()+d.ascent(b.Size)/2, text)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.ClipEnd()
}

func (d *doc) centered(msg string, size float64, box layout.Rect) {
	d.pdf.SetFont(d.family, "B", size)
	text := d.tr(typography.Truncate(msg, box.W, d.measurer()))
	w := d.pdf.GetStringWidth(text)
	d.pdf.Text(box.CenterX()-w/2, box.Y+d.ascent(size), text)
}

// measurer measures with the current font.
func (d *doc) measurer() typography.Measurer {
	return typography.MeasureFunc(func(s string) float64 {
		return d.pdf.GetStringWidth(d.tr(s))
	})
}

// ascent returns the ascent of the current font at size.
func (d *doc) ascent(size float64) float64 {
	desc := d.pdf.GetFontDesc("", "")
	if desc.Ascent <= 0 {
		return fallbackAscent * size
	}
	return float64(desc.Ascent) / 1000 * size
}

// registerSignature embeds the signature image once and returns its name,
// or "" when there is none.
func (d *doc) registerSignature(ctx context.Context) string {
	img := d.job.Signature
	size := d.job.SignatureSize()
	if img == nil || size.Zero() {
		return ""
	}
	if d.job.Style.ProfileSignature {
		px := int(math.Round(size.W * signatureDPI / 72))
		img = imaging.Fill(img, px, px, imaging.Center, imaging.Lanczos)
	}

	buf := render.GetBuffer()
	defer render.PutBuffer(buf)
	if err := png.Encode(buf, img); err != nil {
		render.AssetUnavailable(ctx, d.job.Log(), render.AssetSignature, "signature", err)
		return ""
	}
	const name = "signature"
	d.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, buf)
	if !d.pdf.Ok() {
		err := d.pdf.Error()
		d.pdf.ClearError()
		render.AssetUnavailable(ctx, d.job.Log(), render.AssetSignature, name, err)
		return ""
	}
	return name
}
