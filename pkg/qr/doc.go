// Package qr produces the QR code printed on each name tag.
//
// The code encodes the public card URL built by [TargetURL]. Vector output
// draws the module matrix of a [Symbol] directly. Raster and markup output
// use [Compositor.Raster], which obtains a bitmap from a [Provider], crops
// the quiet zone and rescales it with nearest-neighbour sampling so module
// edges stay sharp.
//
// Providers:
//
//   - [LocalProvider] encodes in-process with github.com/boombuler/barcode.
//   - [RemoteProvider] calls the api.qrserver.com image endpoint through
//     the retrying, cached HTTP client.
//   - [FallbackProvider] tries providers in order.
//
// Every obtain is bounded by a short timeout. A failure is reported as an
// ASSET_UNAVAILABLE error; renderers omit the QR region and carry on.
package qr
