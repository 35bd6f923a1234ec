// Package pipeline turns a card ID and render preferences into a finished
// name tag artifact.
//
// This package implements the load → assemble → scale → arrange → render
// pipeline shared by the CLI and the HTTP server, so both produce identical
// output for identical input.
//
// # Usage
//
//	runner := pipeline.NewRunner(store,
//	    pipeline.WithQR(qr.NewCompositor(nil)),
//	    pipeline.WithLogger(logger))
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    CardID: "42",
//	    Format: pipeline.FormatPDF,
//	    Mode:   pipeline.ModeSheet,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Artifact.Data, 0o644)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mwarrick/digital-business-card-sub004/pkg/content"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/prefs"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render"
	"github.com/mwarrick/digital-business-card-sub004/pkg/render/raster"
	"github.com/mwarrick/digital-business-card-sub004/pkg/typography"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Format constants for output formats.
const (
	FormatPDF  = string(render.FormatPDF)
	FormatPNG  = string(render.FormatPNG)
	FormatHTML = string(render.FormatHTML)
)

// Mode constants.
const (
	ModeCell  = string(render.ModeCell)
	ModeSheet = string(render.ModeSheet)
)

const (
	// DefaultFormat is the default output format.
	DefaultFormat = FormatPDF

	// DefaultMode is the default page mode.
	DefaultMode = ModeSheet

	// DefaultPreset is the default raster preset.
	DefaultPreset = "preview"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	CardID string `json:"card_id"`
	Format string `json:"format,omitempty"`
	Mode   string `json:"mode,omitempty"`

	// Preset selects the PNG resolution ("preview" or "print").
	Preset string `json:"preset,omitempty"`

	// RasterCells builds PDF sheets from 300 DPI bitmaps.
	RasterCells bool `json:"raster_cells,omitempty"`

	// Preferences defaults to prefs.Defaults() when nil.
	Preferences *prefs.Preferences `json:"preferences,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Artifact is the rendered output.
	Artifact *render.Artifact

	// Filename is the suggested download name.
	Filename string

	// RenderID identifies this render in logs, audit entries and responses.
	RenderID string

	// Lines are the content lines printed on each tag.
	Lines []content.Line

	// Typography is the effective font size and QR edge.
	Typography typography.Typography

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
	Bytes        int
	LongestLine  int
	HasSignature bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !render.ValidFormats[render.Format(format)] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: pdf, png, html)", format)
	}
	return nil
}

// ValidateMode checks that a mode is valid.
func ValidateMode(mode string) error {
	if !render.ValidModes[render.Mode(mode)] {
		return errs.New(errs.ErrCodeInvalidMode, "invalid mode: %q (must be one of: cell, sheet)", mode)
	}
	return nil
}

// ValidatePreset checks that a raster preset is valid.
func ValidatePreset(preset string) error {
	if _, ok := raster.Presets[preset]; !ok {
		return errs.New(errs.ErrCodeInvalidInput, "invalid preset: %q (must be one of: preview, print)", preset)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errs.ValidateCardID(o.CardID); err != nil {
		return err
	}
	o.SetDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if err := ValidatePreset(o.Preset); err != nil {
		return err
	}
	if err := o.Preferences.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills empty fields.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if o.Preferences == nil {
		p := prefs.Defaults()
		o.Preferences = &p
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsSheet reports whether a full sheet is requested.
func (o *Options) IsSheet() bool {
	return o.Mode == ModeSheet
}
