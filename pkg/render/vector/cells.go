package vector

import (
	"bytes"
	"context"
	"image/png"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/sync/errgroup"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render/raster"
)

// drawRasterCells paints every cell concurrently, then embeds the bitmaps in
// slot order. Encoded cells live in pooled buffers until the document has
// read them.
func (v *Renderer) drawRasterCells(ctx context.Context, pdf *fpdf.Fpdf, job *render.Job) error {
	painter := v.raster.Painter(ctx, job)
	cells := job.Cells()
	bufs := make([]*bytes.Buffer, len(cells))
	defer func() {
		for _, b := range bufs {
			if b != nil {
				render.PutBuffer(b)
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for i := range cells {
		buf := render.GetBuffer()
		bufs[i] = buf
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return png.Encode(buf, painter.Paint(raster.FrameNone))
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errs.Wrap(errs.ErrCodeInternal, err, "encode cell")
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	for i, c := range cells {
		name := imageName("cell", i)
		pdf.RegisterImageOptionsReader(name, opts, bufs[i])
		pdf.ImageOptions(name, c.X, c.Y, c.W, c.H, false, opts, 0, "")
		if job.Style.CuttingGuides {
			drawGuide(pdf, c.X, c.Y, c.W, c.H)
		}
	}
	return pdf.Error()
}
