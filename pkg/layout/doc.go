// Package layout computes the physical geometry of a name tag sheet.
//
// # Sheet
//
// A sheet is a US Letter page (612 × 792 pt) holding eight cells of
// 243 × 168 pt in two columns and four rows. [Default] returns the standard
// [Geometry]; [Geometry.WithOverrides] derives a new value with request
// supplied margins and gaps. Overrides are applied uniformly to all eight
// cells and are never clamped: a geometry that pushes cells off the page is
// rendered as computed. Callers that want to reject such input can call
// [Geometry.Validate].
//
// # Cell arrangement
//
// [Arrange] positions everything inside one cell: the text column, the QR
// square, the optional signature image and the optional messages above and
// below the main block. Every backend draws from the same [Placement], so a
// PDF, a PNG and an HTML rendering of the same input share their proportions.
//
// All values are in PDF points (1/72 inch). Raster backends multiply by
// their scale factor with [Rect.Scale].
package layout
