// Package markup renders name tags as a self-contained HTML page.
//
// Sizes are written in points from the same placement the PDF and PNG
// backends use, so a browser printing at 100% reproduces the other outputs.
// QR codes and signature images are inlined as data URIs.
package markup

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"html/template"
	"image"
	"image/png"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/fonts"
	"github.com/mwarrick/digital-business-card-sub004/pkg/layout"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render"
	"github.com/mwarrick/digital-business-card-sub004/pkg/typography"
)

//go:embed nametags.html.tmpl
var pageTemplate string

var tmpl = template.Must(template.New("nametags").Funcs(template.FuncMap{
	"pt": pt,
}).Parse(pageTemplate))

const (
	// ImageScale is the pixel density of inlined images per point.
	ImageScale = 2

	guideWidth = 0.5

	// averageAdvance estimates glyph width as a fraction of the font size
	// when no font file is available to measure with.
	averageAdvance = 0.55
)

// Renderer writes HTML name tags.
type Renderer struct {
	fonts *fonts.Resolver
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFonts measures truncation with fonts from f.
func WithFonts(f *fonts.Resolver) Option {
	return func(r *Renderer) { r.fonts = f }
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.fonts == nil {
		r.fonts = fonts.NewResolver()
	}
	return r
}

// Format implements render.Renderer.
func (r *Renderer) Format() render.Format { return render.FormatHTML }

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, job *render.Job) (*render.Artifact, error) {
	v := r.view(ctx, job)

	buf := render.GetBuffer()
	defer render.PutBuffer(buf)
	if err := tmpl.Execute(buf, v); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "execute template")
	}
	page := job.Page()
	return &render.Artifact{
		Format:      render.FormatHTML,
		ContentType: render.FormatHTML.ContentType(),
		Data:        bytes.Clone(buf.Bytes()),
		Width:       page.W,
		Height:      page.H,
	}, nil
}

type pageView struct {
	Title     string
	FontStack template.CSS
	Sheet     bool

	PageWidth, PageHeight float64
	CellWidth, CellHeight float64
	Left, Top             float64
	MarginLeft, MarginTop float64
	HGap, VGap            float64
	GuideWidth            float64
	FontSize, LineHeight  float64
	MessageSize           float64
	MessageLine           float64
	AboveTop, AboveBottom float64
	BelowTop, BelowBottom float64
	SignatureGap          float64
	BannerPadding         float64

	Tag  tagView
	Rows [][]struct{}
}

// tagView positions are relative to the cell's top-left corner.
type tagView struct {
	Guide, Frame bool

	// Surround cells draw only the banners and the QR code.
	Surround                bool
	TopBanner, BottomBanner *bannerView

	Left, Top, Width float64
	MainHeight       float64

	Above, Below string
	Lines        []lineView

	Signature                       template.URL
	Profile                         bool
	SignatureWidth, SignatureHeight float64

	QR                    template.URL
	QRLeft, QRTop, QREdge float64
}

type lineView struct {
	Text string
	Bold bool
}

type bannerView struct {
	Text        string
	Color, Font template.CSS
	Size        float64
	Top, Height float64
}

func (r *Renderer) view(ctx context.Context, job *render.Job) pageView {
	g := job.Geometry
	ty := job.Typography
	p := job.CellPlacement()
	page := job.Page()

	v := pageView{
		Title:        "Name Tags - " + job.Card.FullName(),
		FontStack:    template.CSS(fonts.WebStack(job.Style.Family)),
		Sheet:        job.Mode == render.ModeSheet,
		PageWidth:    page.W,
		PageHeight:   page.H,
		CellWidth:    g.CellWidth,
		CellHeight:   g.CellHeight,
		Left:         g.LeftMargin,
		Top:          g.TopMargin,
		MarginLeft:   -g.HorizontalGap,
		MarginTop:    -g.VerticalGap,
		HGap:         g.HorizontalGap,
		VGap:         g.VerticalGap,
		GuideWidth:   guideWidth,
		FontSize:     ty.FontSize,
		LineHeight:   p.LineHeight,
		MessageSize:  ty.MessageFontSize(),
		MessageLine:  ty.MessageFontSize() + 1,
		AboveTop:     layout.MessageAboveTop,
		AboveBottom:  layout.MessageAboveBottom,
		BelowTop:     layout.MessageBelowTop,
		BelowBottom:  layout.MessageBelowBottom,
		SignatureGap: layout.SignatureGap,

		BannerPadding: layout.BannerPadding,
	}
	if v.Sheet {
		v.Rows = make([][]struct{}, g.Rows)
		for i := range v.Rows {
			v.Rows[i] = make([]struct{}, g.Columns)
		}
	}

	st := job.Style
	top := p.Main.Y
	if st.MessageAbove != "" {
		top = p.MessageAbove.Y - layout.MessageAboveTop
	}
	t := tagView{
		Guide:      v.Sheet && st.CuttingGuides,
		Frame:      !v.Sheet,
		Left:       p.Content.X,
		Top:        top,
		Width:      p.Content.W,
		MainHeight: p.Main.H,
	}

	if st.Surround() {
		t.Surround = true
		t.TopBanner = r.banner(st.TopBanner, p.TopBanner, p.Content)
		t.BottomBanner = r.banner(st.BottomBanner, p.BottomBanner, p.Content)
		r.qr(ctx, job, p, p.Content.Origin(), &t)
		v.Tag = t
		return v
	}

	regular := r.measurer(job.Style.Family, false, ty.FontSize)
	bold := r.measurer(job.Style.Family, true, ty.FontSize)
	msg := r.measurer(job.Style.Family, true, ty.MessageFontSize())
	if st.MessageAbove != "" {
		t.Above = typography.Truncate(st.MessageAbove, p.MessageAbove.W, msg)
	}
	if st.MessageBelow != "" {
		t.Below = typography.Truncate(st.MessageBelow, p.MessageBelow.W, msg)
	}
	for _, line := range job.Lines {
		m := regular
		if line.Bold() {
			m = bold
		}
		t.Lines = append(t.Lines, lineView{
			Text: typography.Truncate(line.Text, p.TextColumn.W, m),
			Bold: line.Bold(),
		})
	}

	if job.Signature != nil && !p.Signature.Empty() {
		t.Profile = st.ProfileSignature
		t.SignatureWidth, t.SignatureHeight = p.Signature.W, p.Signature.H
		w, h := px(p.Signature.W), px(p.Signature.H)
		var img image.Image
		if t.Profile {
			img = imaging.Fill(job.Signature, w, h, imaging.Center, imaging.Lanczos)
		} else {
			img = imaging.Resize(job.Signature, w, h, imaging.Lanczos)
		}
		uri, err := dataURI(img)
		if err != nil {
			render.AssetUnavailable(ctx, job.Log(), render.AssetSignature, "signature", err)
		}
		t.Signature = uri
	}

	r.qr(ctx, job, p, layout.Point{X: p.QRColumn.X, Y: p.Main.Y}, &t)

	v.Tag = t
	return v
}

// qr inlines the QR code positioned relative to origin.
func (r *Renderer) qr(ctx context.Context, job *render.Job, p layout.Placement, origin layout.Point, t *tagView) {
	if !job.HasQR() || p.QR.Empty() {
		return
	}
	img, err := job.QR.Raster(ctx, job.QRContent, px(p.QR.W))
	if err == nil {
		t.QR, err = dataURI(img)
	}
	if err != nil {
		render.AssetUnavailable(ctx, job.Log(), render.AssetQR, job.QRContent, err)
		return
	}
	t.QRLeft = p.QR.X - origin.X
	t.QRTop = p.QR.Y - origin.Y
	t.QREdge = p.QR.W
}

// banner returns the view of a banner in box, nil when it is not drawn.
func (r *Renderer) banner(b render.Banner, box, cell layout.Rect) *bannerView {
	if box.Empty() {
		return nil
	}
	c, _ := colorful.MakeColor(b.Color)
	m := r.measurer(b.Family, true, b.Size)
	return &bannerView{
		Text:   typography.Truncate(b.Text, box.W-2*layout.BannerPadding, m),
		Color:  template.CSS(c.Hex()),
		Font:   template.CSS(fonts.WebStack(b.Family)),
		Size:   b.Size,
		Top:    box.Y - cell.Y,
		Height: box.H,
	}
}

// measurer measures in points with the TrueType face for family, or by
// estimate when the font is not installed.
func (r *Renderer) measurer(family string, bold bool, size float64) typography.Measurer {
	face, err := r.fonts.Face(family, bold, size, 72)
	if err != nil {
		return typography.MeasureFunc(func(s string) float64 {
			return float64(len([]rune(s))) * size * averageAdvance
		})
	}
	return faceMeasurer{face}
}

type faceMeasurer struct{ face font.Face }

func (m faceMeasurer) Width(s string) float64 { return fonts.Width(m.face, s) }

func dataURI(img image.Image) (template.URL, error) {
	buf := render.GetBuffer()
	defer render.PutBuffer(buf)
	if err := png.Encode(buf, img); err != nil {
		return "", errs.Wrap(errs.ErrCodeAssetUnavailable, err, "encode image")
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

func px(v float64) int { return int(math.Round(v * ImageScale)) }

// pt formats a length in points with at most two decimals.
func pt(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) + "pt"
}

var _ render.Renderer = (*Renderer)(nil)
