// Package render defines the backend-neutral render job and the Renderer
// interface implemented by the output backends.
//
// # Overview
//
// A [Job] carries everything a backend needs: the assembled content lines,
// the effective typography, the sheet geometry, the style derived from the
// request preferences, the QR target and an optional signature image. The
// backends never compute geometry of their own; they draw from the
// [layout.Placement] values returned by [Job.Placements] and
// [Job.CellPlacement].
//
// Backends:
//
//   - [vector]: PDF through codeberg.org/go-pdf/fpdf
//   - [raster]: PNG through github.com/fogleman/gg
//   - [markup]: HTML/CSS through html/template
//
// # Degraded assets
//
// A missing QR code, font or signature image never fails a render. The
// backend reports it with [AssetUnavailable], which logs a warning and
// notifies the observability hooks, and draws the tag without it.
//
// [vector]: github.com/mwarrick/digital-business-card-sub004/pkg/render/vector
// [raster]: github.com/mwarrick/digital-business-card-sub004/pkg/render/raster
// [markup]: github.com/mwarrick/digital-business-card-sub004/pkg/render/markup
package render
