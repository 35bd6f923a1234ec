package render

import (
	"context"
	"image"

	"github.com/charmbracelet/log"

	"github.com/mwarrick/digital-business-card-sub004/pkg/observability"
	"github.com/mwarrick/digital-business-card-sub004/pkg/qr"
)

// Format is an output format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatHTML Format = "html"
)

// ValidFormats lists the supported output formats.
var ValidFormats = map[Format]bool{
	FormatPDF:  true,
	FormatPNG:  true,
	FormatHTML: true,
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// Mode selects a single tag or a full sheet of eight.
type Mode string

const (
	ModeCell  Mode = "cell"
	ModeSheet Mode = "sheet"
)

// ValidModes lists the supported modes.
var ValidModes = map[Mode]bool{
	ModeCell:  true,
	ModeSheet: true,
}

// Artifact is a finished rendering. Width and Height are in pixels for PNG
// and in points otherwise.
type Artifact struct {
	Format      Format
	ContentType string
	Data        []byte
	Width       float64
	Height      float64
}

// Renderer turns a Job into an Artifact. Implementations must be safe for
// concurrent use.
type Renderer interface {
	Format() Format
	Render(ctx context.Context, job *Job) (*Artifact, error)
}

// QRSource supplies QR assets. *qr.Compositor implements it.
type QRSource interface {
	Symbol(ctx context.Context, content string) (*qr.Symbol, error)
	Raster(ctx context.Context, content string, edge int) (image.Image, error)
}

var _ QRSource = (*qr.Compositor)(nil)

// Asset kinds reported by AssetUnavailable.
const (
	AssetQR        = "qr"
	AssetFont      = "font"
	AssetSignature = "signature"
)

// AssetUnavailable records that an optional asset was left out of a render.
func AssetUnavailable(ctx context.Context, logger *log.Logger, kind, ref string, err error) {
	if logger == nil {
		logger = log.Default()
	}
	logger.Warn("asset unavailable, rendering without it", "kind", kind, "ref", ref, "error", err)
	observability.Asset().OnAssetUnavailable(ctx, kind, ref, err)
}
