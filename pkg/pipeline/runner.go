package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/mwarrick/digital-business-card-sub004/pkg/audit"
	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	"github.com/mwarrick/digital-business-card-sub004/pkg/content"
	"github.com/mwarrick/digital-business-card-sub004/pkg/fonts"
	"github.com/mwarrick/digital-business-card-sub004/pkg/media"
	"github.com/mwarrick/digital-business-card-sub004/pkg/observability"
	"github.com/mwarrick/digital-business-card-sub004/pkg/prefs"
	"github.com/mwarrick/digital-business-card-sub004/pkg/qr"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render/markup"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render/raster"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render/vector"
	"github.com/mwarrick/digital-business-card-sub004/pkg/typography"
)

// Runner executes renders against a card store.
//
// The Runner is stateless except for its collaborators - it doesn't
// store render results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Store    card.Store
	QR       render.QRSource
	QRHost   string
	Media    *media.Loader
	Fonts    *fonts.Resolver
	Recorder audit.Recorder
	Logger   *log.Logger

	rasters     map[string]*raster.Renderer
	vector      *vector.Renderer
	vectorCells *vector.Renderer
	markup      *markup.Renderer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithQR sets the QR source. A nil source renders tags without QR codes.
func WithQR(q render.QRSource) RunnerOption {
	return func(r *Runner) { r.QR = q }
}

// WithQRHost sets the host encoded in QR target URLs.
func WithQRHost(host string) RunnerOption {
	return func(r *Runner) { r.QRHost = host }
}

// WithMedia sets the signature image loader.
func WithMedia(m *media.Loader) RunnerOption {
	return func(r *Runner) { r.Media = m }
}

// WithFonts sets the font resolver shared by the raster and markup backends.
func WithFonts(f *fonts.Resolver) RunnerOption {
	return func(r *Runner) { r.Fonts = f }
}

// WithRecorder sets the audit recorder.
func WithRecorder(rec audit.Recorder) RunnerOption {
	return func(r *Runner) { r.Recorder = rec }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) { r.Logger = l }
}

// NewRunner creates a runner reading cards from store.
// Without options QR codes are encoded locally, fonts come from the default
// resolver and audit entries are discarded.
func NewRunner(store card.Store, opts ...RunnerOption) *Runner {
	r := &Runner{
		Store:    store,
		QR:       qr.NewCompositor(nil),
		QRHost:   qr.DefaultHost,
		Recorder: audit.NopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Fonts == nil {
		r.Fonts = fonts.NewResolver()
	}
	if r.Recorder == nil {
		r.Recorder = audit.NopRecorder{}
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}

	r.rasters = make(map[string]*raster.Renderer, len(raster.Presets))
	for name, p := range raster.Presets {
		r.rasters[name] = raster.New(raster.WithPreset(p), raster.WithFonts(r.Fonts))
	}
	r.vector = vector.New()
	r.vectorCells = vector.New(vector.WithRasterCells(r.rasters[raster.Print.Name]))
	r.markup = markup.New(markup.WithFonts(r.Fonts))
	return r
}

// Execute runs the complete load → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	renderID := uuid.NewString()
	logger := opts.Logger.With("render_id", renderID, "card_id", opts.CardID)
	result := &Result{RenderID: renderID}

	observability.Render().OnRenderStart(ctx, opts.Format, opts.Mode)
	start := time.Now()
	artifact, err := r.execute(ctx, opts, logger, result)
	size := 0
	if artifact != nil {
		size = len(artifact.Data)
	}
	observability.Render().OnRenderComplete(ctx, opts.Format, opts.Mode, size, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	result.Artifact = artifact
	result.Stats.Bytes = size
	entry := audit.NewEntry(renderID, opts.CardID, opts.Format, opts.Mode, size, artifact.Width, artifact.Height)
	if err := r.Recorder.Record(ctx, entry); err != nil {
		logger.Warn("audit record failed", "error", err)
	}
	return result, nil
}

func (r *Runner) execute(ctx context.Context, opts Options, logger *log.Logger, result *Result) (*render.Artifact, error) {
	p := opts.Preferences

	// Stage 1: Load
	loadStart := time.Now()
	rec, err := r.Store.Get(ctx, opts.CardID)
	if err != nil {
		return nil, fmt.Errorf("load card: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Filename = p.Filename(rec, opts.Format)
	logger.Debug("loaded card", "duration", result.Stats.LoadTime)

	// Stage 2: Assemble, scale and arrange
	layoutStart := time.Now()
	assembled := content.Assemble(rec, p.Flags())
	ty := typography.Scale(assembled.Longest, p.FontSize)
	result.Lines = assembled.Lines
	result.Typography = ty
	result.Stats.LongestLine = assembled.Longest

	job := &render.Job{
		Card:       rec,
		Lines:      assembled.Lines,
		Typography: ty,
		Geometry:   p.Geometry(),
		Style: render.Style{
			Family:           string(p.FontFamily),
			Spacing:          p.SpacingMultiplier(),
			MessageAbove:     p.MessageAbove,
			MessageBelow:     p.MessageBelow,
			CuttingGuides:    p.CuttingGuides,
			ProfileSignature: p.SignatureImage == prefs.SignatureProfile,
			Variant:          p.Variant,
			TopBanner:        renderBanner(p.TopBanner),
			BottomBanner:     renderBanner(p.BottomBanner),
		},
		Mode:      render.Mode(opts.Mode),
		QRContent: qr.TargetURL(r.QRHost, rec.ID, p.Source()),
		QR:        r.QR,
		Signature: r.signature(ctx, rec, p.SignatureImage, logger),
		Logger:    logger,
	}
	result.Stats.HasSignature = job.Signature != nil
	result.Stats.LayoutTime = time.Since(layoutStart)
	logger.Debug("computed layout",
		"lines", len(job.Lines),
		"font_size", ty.FontSize,
		"qr_edge", ty.QREdge,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifact, err := r.renderer(opts).Render(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered name tags",
		"format", opts.Format,
		"mode", opts.Mode,
		"bytes", len(artifact.Data),
		"duration", result.Stats.RenderTime)
	return artifact, nil
}

func renderBanner(b prefs.Banner) render.Banner {
	return render.Banner{
		Text:   b.Text,
		Color:  b.RGBA(),
		Family: string(b.Family),
		Size:   b.Size,
	}
}

// signature loads the requested signature image. Failures are reported and
// the render continues without one.
func (r *Runner) signature(ctx context.Context, rec *card.Record, kind prefs.Signature, logger *log.Logger) image.Image {
	if kind == prefs.SignatureNone || kind == "" || r.Media == nil {
		return nil
	}
	img, err := r.Media.Signature(ctx, rec, media.Kind(kind))
	if err != nil {
		render.AssetUnavailable(ctx, logger, render.AssetSignature, media.Ref(rec, media.Kind(kind)), err)
		return nil
	}
	return img
}

// renderer picks the backend for opts.
func (r *Runner) renderer(opts Options) render.Renderer {
	switch opts.Format {
	case FormatPNG:
		return r.rasters[opts.Preset]
	case FormatHTML:
		return r.markup
	}
	if opts.RasterCells {
		return r.vectorCells
	}
	return r.vector
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var first error
	if r.Recorder != nil {
		first = r.Recorder.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
