// Package rendertest provides jobs and QR fakes for backend tests.
package rendertest

import (
	"context"
	"image"
	"image/color"
	"io"

	"github.com/charmbracelet/log"

	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	"github.com/mwarrick/digital-business-card-sub004/pkg/content"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/layout"
	"github.com/mwarrick/digital-business-card-sub004/pkg/qr"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render"
	"github.com/mwarrick/digital-business-card-sub004/pkg/typography"
)

// Job returns a job for the sample card with the default preferences.
func Job(mode render.Mode) *render.Job {
	rec := card.Sample()
	c := content.Assemble(rec, content.Flags{Name: true, Title: true, Phone: true, Email: true, Website: true})
	return &render.Job{
		Card:       rec,
		Lines:      c.Lines,
		Typography: typography.Scale(c.Longest, 12),
		Geometry:   layout.Default(),
		Style: render.Style{
			Family:        "helvetica",
			Spacing:       1,
			CuttingGuides: true,
		},
		Mode:      mode,
		QRContent: qr.TargetURL("", rec.ID, ""),
		QR:        qr.NewCompositor(nil),
		Logger:    log.New(io.Discard),
	}
}

// SurroundJob returns a QR surround job with a blue top banner and a black
// bottom banner.
func SurroundJob(mode render.Mode) *render.Job {
	job := Job(mode)
	job.Geometry = layout.Surround()
	job.Style.Variant = layout.VariantQRSurround
	job.Style.TopBanner = render.Banner{
		Text:   "Hello My Name Is...",
		Color:  color.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff},
		Family: "caveat",
		Size:   16,
	}
	job.Style.BottomBanner = render.Banner{
		Text:   "Scan me",
		Color:  color.RGBA{A: 0xff},
		Family: "helvetica",
		Size:   8,
	}
	return job
}

// FailingQR is a QR source whose every call fails as unavailable.
type FailingQR struct{}

// Symbol implements render.QRSource.
func (FailingQR) Symbol(context.Context, string) (*qr.Symbol, error) {
	return nil, errs.New(errs.ErrCodeAssetUnavailable, "qr service down")
}

// Raster implements render.QRSource.
func (FailingQR) Raster(context.Context, string, int) (image.Image, error) {
	return nil, errs.New(errs.ErrCodeAssetUnavailable, "qr service down")
}

var _ render.QRSource = FailingQR{}
