// Package pkg provides the core libraries for laying out and rendering 8-up
// name tag sheets from business cards.
//
// # Overview
//
// A name tag sheet is a US Letter page holding eight identical tags in a
// 2×4 grid. Each tag shows selected card fields as text lines next to a QR
// code linking to the online card, with optional messages above and below
// and an optional signature image. The same layout is drawn by three
// backends (PDF, PNG and HTML) so that every format puts every element in
// the same place.
//
// # Architecture
//
// The typical data flow:
//
//	card.Store (memory, file, Redis, MongoDB)
//	         ↓
//	    [content] assemble the printed lines
//	         ↓
//	    [typography] scale font size and QR edge to the longest line
//	         ↓
//	    [layout] sheet geometry and per-tag placements
//	         ↓
//	    [render] vector (PDF) · raster (PNG) · markup (HTML)
//
// [pipeline] runs these stages for the CLI and the HTTP server, so both
// entry points produce identical artifacts.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(card.NewMemoryStore(card.Sample()))
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    CardID: card.SampleID,
//	    Format: pipeline.FormatPDF,
//	    Mode:   pipeline.ModeSheet,
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(res.Filename, res.Artifact.Data, 0o644)
//
// # Main Packages
//
// ## Domain
//
// [card] - The contact record and its read-only stores.
//
// [prefs] - Per-request render preferences, their validation and their
// query-string encoding.
//
// [content] - Ordered text lines selected from a card.
//
// [typography] - Font size and QR edge scaling from the longest line.
//
// [layout] - Sheet geometry, grid placements and the arrangement of the
// text column, QR column, messages and signature inside one tag.
//
// ## Rendering
//
// [render] - The backend-neutral Job and the Renderer interface.
//
//   - [render/vector]: PDF through go-pdf/fpdf
//   - [render/raster]: PNG through fogleman/gg
//   - [render/markup]: HTML/CSS through html/template
//
// [qr] - QR symbols from the local encoder or a remote image API.
//
// [media] - Profile photos and company logos used as signature images.
//
// [fonts] - TrueType lookup with a built-in fallback face.
//
// ## Infrastructure
//
// [cache] - Asset cache with file, Redis and null backends.
//
// [httputil] - HTTP client with retries and response caching.
//
// [audit] - Records of produced artifacts (log or MongoDB).
//
// [config] - TOML configuration of every backend.
//
// [observability] - Hooks for metrics and tracing.
//
// [errors] - Coded errors shared by every layer.
//
// [card]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/card
// [prefs]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/prefs
// [content]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/content
// [typography]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/typography
// [layout]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/layout
// [render]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/render
// [render/vector]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/render/vector
// [render/raster]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/render/raster
// [render/markup]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/render/markup
// [qr]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/qr
// [media]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/media
// [fonts]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/fonts
// [cache]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/httputil
// [audit]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/audit
// [config]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/config
// [observability]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/observability
// [errors]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/mwarrick/digital-business-card-sub004/pkg/pipeline
package pkg
