// Package vector renders name tags as PDF documents with
// codeberg.org/go-pdf/fpdf.
//
// Text uses the core PDF fonts (Helvetica, Times, Courier) so no font files
// are needed. Strings are normalised to NFC and translated to cp1252 before
// they are measured or drawn. QR codes are drawn as filled module runs, so
// they stay sharp at any zoom.
//
// With [WithRasterCells] a sheet is built from eight 300 DPI bitmaps
// produced by the raster backend instead, which matches PNG output pixel
// for pixel at the cost of file size.
package vector

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/unicode/norm"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render/raster"
)

// Document metadata.
const (
	Creator = "ShareMyCard"
	Title   = "Name Tags"
)

// Epoch is the creation date written into every document. A fixed date keeps
// output byte-identical for identical input.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	guideGray  = 200
	guideWidth = 0.5
	guideDash  = 2.0

	// fallbackAscent is the ascent used when a font has no descriptor, as a
	// fraction of the font size.
	fallbackAscent = 0.8
)

var coreFamilies = map[string]string{
	"helvetica": "Helvetica",
	"times":     "Times",
	"courier":   "Courier",
}

// Renderer draws PDF name tags.
type Renderer struct {
	rasterCells  bool
	raster       *raster.Renderer
	uncompressed bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRasterCells builds sheets from embedded bitmaps painted by r. A nil r
// uses a 300 DPI raster renderer with default fonts.
func WithRasterCells(r *raster.Renderer) Option {
	return func(v *Renderer) {
		v.rasterCells = true
		v.raster = r
	}
}

// WithCompression turns content stream compression on or off. It is on by
// default; uncompressed documents are easier to inspect.
func WithCompression(on bool) Option {
	return func(v *Renderer) { v.uncompressed = !on }
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	v := &Renderer{}
	for _, opt := range opts {
		opt(v)
	}
	if v.rasterCells && v.raster == nil {
		v.raster = raster.New(raster.WithPreset(raster.Print))
	}
	return v
}

// Format implements render.Renderer.
func (v *Renderer) Format() render.Format { return render.FormatPDF }

// RasterCells reports whether sheets are built from bitmaps.
func (v *Renderer) RasterCells() bool { return v.rasterCells }

// Render implements render.Renderer.
func (v *Renderer) Render(ctx context.Context, job *render.Job) (*render.Artifact, error) {
	page := job.Page()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.W, Ht: page.H},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(Creator, true)
	pdf.SetAuthor(job.Card.FullName(), true)
	pdf.SetTitle(Title, true)
	pdf.SetCreationDate(Epoch)
	pdf.SetModificationDate(Epoch)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(!v.uncompressed)
	pdf.AddPage()

	var err error
	if v.rasterCells && job.Mode == render.ModeSheet {
		err = v.drawRasterCells(ctx, pdf, job)
	} else {
		err = newDoc(pdf, job).draw(ctx)
	}
	if err != nil {
		return nil, err
	}

	buf := render.GetBuffer()
	defer render.PutBuffer(buf)
	if err := pdf.Output(buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "write pdf")
	}
	return &render.Artifact{
		Format:      render.FormatPDF,
		ContentType: render.FormatPDF.ContentType(),
		Data:        bytes.Clone(buf.Bytes()),
		Width:       page.W,
		Height:      page.H,
	}, nil
}

// drawGuide strokes the dashed cutting guide around a cell.
func drawGuide(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(guideGray, guideGray, guideGray)
	pdf.SetLineWidth(guideWidth)
	pdf.SetDashPattern([]float64{guideDash, guideDash}, 0)
	pdf.Rect(x, y, w, h, "D")
	pdf.SetDashPattern([]float64{}, 0)
}

// translator returns a function converting UTF-8 to the core font encoding.
func translator(pdf *fpdf.Fpdf) func(string) string {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return func(s string) string { return tr(norm.NFC.String(s)) }
}

func coreFamily(family string) string {
	if f, ok := coreFamilies[family]; ok {
		return f
	}
	return coreFamilies["helvetica"]
}

func imageName(prefix string, i int) string { return fmt.Sprintf("%s-%d", prefix, i) }

var _ render.Renderer = (*Renderer)(nil)
