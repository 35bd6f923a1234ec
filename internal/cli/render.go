package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mwarrick/digital-business-card-sub004/pkg/pipeline"
	"github.com/mwarrick/digital-business-card-sub004/pkg/prefs"
)

// renderOpts holds the command-line flags for the render command that are
// not render preferences.
type renderOpts struct {
	format      string // output format: pdf, png or html
	mode        string // sheet (8-up page) or cell (one tag)
	preset      string // raster preset: preview or print
	rasterCells bool   // build PDF sheets from 300 DPI bitmaps
	output      string // output file, "-" for stdout, empty for the download name
}

// prefFlags maps preference flags to their query parameter names in
// prefs.FromValues.
var prefFlags = map[string]string{
	"include-name":    "include_name",
	"include-title":   "include_title",
	"include-company": "include_company",
	"include-phone":   "include_phone",
	"include-email":   "include_email",
	"include-website": "include_website",
	"include-address": "include_address",
	"font-family":     "font_family",
	"font-size":       "font_size",
	"line-spacing":    "line_spacing",
	"message-above":   "message_above",
	"message-below":   "message_below",
	"top-margin":      "top_margin",
	"left-margin":     "left_margin",
	"horizontal-gap":  "horizontal_gap",
	"vertical-gap":    "vertical_gap",
	"signature":       "signature_image",
	"cutting-guides":  "cutting_guides",
	"src":             "src",

	"variant":                   "variant",
	"top-banner-text":           "top_banner_text",
	"top-banner-color":          "top_banner_color",
	"top-banner-font-family":    "top_banner_font_family",
	"top-banner-font-size":      "top_banner_font_size",
	"bottom-banner-text":        "bottom_banner_text",
	"bottom-banner-color":       "bottom_banner_color",
	"bottom-banner-font-family": "bottom_banner_font_family",
	"bottom-banner-font-size":   "bottom_banner_font_size",
}

var bannerFamilies = []string{"caveat", "dancing-script", "kalam", "helvetica", "times", "courier"}

// renderCommand creates the render command.
//
// Default settings:
//   - format: pdf
//   - mode: sheet (eight tags on a Letter page)
//   - preset: preview for cells, print otherwise
//   - preferences: prefs.Defaults()
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts
	def := prefs.Defaults()

	cmd := &cobra.Command{
		Use:   "render <card-id>",
		Short: "Render name tags for a card to PDF, PNG or HTML",
		Long: `Render name tags for a card.

A sheet is eight identical tags on a US Letter page; a cell is a single tag.
Only the preference flags you pass override the defaults.`,
		Example: `  nametag render test
  nametag render test --format png --mode cell -o tag.png
  nametag render 42 --font-family times --message-above "Hello, my name is"
  nametag render test --variant qr-surround --top-banner-color "#336699"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := prefs.FromValues(prefValues(cmd))
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts, &p)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.DefaultFormat, "output format: pdf, png, html")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", pipeline.DefaultMode, "page mode: sheet, cell")
	cmd.Flags().StringVar(&opts.preset, "preset", "", "PNG resolution: preview, print (default print for sheets)")
	cmd.Flags().BoolVar(&opts.rasterCells, "raster-cells", false, "build PDF sheets from 300 DPI bitmaps")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: download name)")

	cmd.Flags().Bool("include-name", def.IncludeName, "print the full name")
	cmd.Flags().Bool("include-title", def.IncludeTitle, "print the job title")
	cmd.Flags().Bool("include-company", def.IncludeCompany, "print the company")
	cmd.Flags().Bool("include-phone", def.IncludePhone, "print the phone number")
	cmd.Flags().Bool("include-email", def.IncludeEmail, "print the email address")
	cmd.Flags().Bool("include-website", def.IncludeWebsite, "print the website")
	cmd.Flags().Bool("include-address", def.IncludeAddress, "print the postal address")
	cmd.Flags().String("font-family", string(def.FontFamily), "font family: helvetica, times, courier")
	cmd.Flags().Float64("font-size", def.FontSize, "base font size in points (8-20)")
	cmd.Flags().Float64("line-spacing", def.LineSpacing, "line spacing adjustment (-2 to 2)")
	cmd.Flags().String("message-above", "", "message printed above the tag content")
	cmd.Flags().String("message-below", "", "message printed below the tag content")
	cmd.Flags().Float64("top-margin", 0, "sheet top margin in points")
	cmd.Flags().Float64("left-margin", 0, "sheet left margin in points (default: centered)")
	cmd.Flags().Float64("horizontal-gap", 0, "gap between columns in points")
	cmd.Flags().Float64("vertical-gap", 0, "gap between rows in points")
	cmd.Flags().String("signature", string(def.SignatureImage), "signature image: none, profile, logo")
	cmd.Flags().Bool("cutting-guides", def.CuttingGuides, "draw dashed cutting guides")
	cmd.Flags().String("src", "", "source tag appended to the QR code URL")
	cmd.Flags().String("variant", string(def.Variant), "tag design: standard, qr-surround")
	cmd.Flags().String("top-banner-text", def.TopBanner.Text, "qr-surround top banner text")
	cmd.Flags().String("top-banner-color", def.TopBanner.Color, "qr-surround top banner colour (#RRGGBB)")
	cmd.Flags().String("top-banner-font-family", string(def.TopBanner.Family), "qr-surround top banner font")
	cmd.Flags().Float64("top-banner-font-size", def.TopBanner.Size, "qr-surround top banner font size (8-100)")
	cmd.Flags().String("bottom-banner-text", "", "qr-surround bottom banner text")
	cmd.Flags().String("bottom-banner-color", def.BottomBanner.Color, "qr-surround bottom banner colour (#RRGGBB)")
	cmd.Flags().String("bottom-banner-font-family", string(def.BottomBanner.Family), "qr-surround bottom banner font")
	cmd.Flags().Float64("bottom-banner-font-size", def.BottomBanner.Size, "qr-surround bottom banner font size (6-100)")

	for flag, values := range map[string][]string{
		"format":      {"pdf", "png", "html"},
		"mode":        {"sheet", "cell"},
		"preset":      {"preview", "print"},
		"font-family": {"helvetica", "times", "courier"},
		"signature":   {"none", "profile", "logo"},
		"variant":     {"standard", "qr-surround"},

		"top-banner-font-family":    bannerFamilies,
		"bottom-banner-font-family": bannerFamilies,
	} {
		_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}

	return cmd
}

// prefValues collects the preference flags that were set on the command
// line.
func prefValues(cmd *cobra.Command) url.Values {
	v := url.Values{}
	for name, key := range prefFlags {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
	return v
}

// renderPreset picks the raster preset when --preset is empty.
func renderPreset(opts *renderOpts) string {
	if opts.preset != "" {
		return opts.preset
	}
	if opts.mode == pipeline.ModeCell {
		return "preview"
	}
	return "print"
}

func (c *CLI) runRender(ctx context.Context, cardID string, opts *renderOpts, p *prefs.Preferences) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	spin := startSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s %s for %s", opts.mode, opts.format, cardID))
	res, err := a.runner.Execute(ctx, pipeline.Options{
		CardID:      cardID,
		Format:      opts.format,
		Mode:        opts.mode,
		Preset:      renderPreset(opts),
		RasterCells: opts.rasterCells,
		Preferences: p,
		Logger:      logger,
	})
	if err != nil {
		if spin.Cancelled() {
			spin.Stop()
			return err
		}
		spin.Fail("Render failed")
		return err
	}
	spin.Stop()
	logRenderStats(logger, res)

	if opts.output == "-" {
		_, err := os.Stdout.Write(res.Artifact.Data)
		return err
	}

	path := opts.output
	if path == "" {
		path = res.Filename
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, res.Artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Rendered %s %s", opts.mode, opts.format)
	printFile(path)
	printRenderStats(res)
	return nil
}
