package layout

import (
	"math"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// Physical constants of the standard sheet, in points.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
	CellWidth  = 243.0
	CellHeight = 168.0
	Columns    = 2
	Rows       = 4
	CellCount  = Columns * Rows

	DefaultTopMargin     = 42.0
	DefaultHorizontalGap = 47.0
	DefaultVerticalGap   = 22.0
	DefaultPadding       = 10.0
)

// Geometry describes the sheet and the placement of its cells. It is a
// value type: methods never modify the receiver.
type Geometry struct {
	PageWidth, PageHeight float64
	CellWidth, CellHeight float64
	Columns, Rows         int

	TopMargin     float64
	LeftMargin    float64
	HorizontalGap float64
	VerticalGap   float64
	Padding       float64
}

// Overrides holds optional per-request spacing values. Nil fields keep the
// current value.
type Overrides struct {
	TopMargin     *float64 `json:"top_margin,omitempty"`
	LeftMargin    *float64 `json:"left_margin,omitempty"`
	HorizontalGap *float64 `json:"horizontal_gap,omitempty"`
	VerticalGap   *float64 `json:"vertical_gap,omitempty"`
}

// Empty reports whether no override is set.
func (o Overrides) Empty() bool {
	return o.TopMargin == nil && o.LeftMargin == nil && o.HorizontalGap == nil && o.VerticalGap == nil
}

// Default returns the standard Letter sheet geometry with the two columns
// centred horizontally.
func Default() Geometry {
	g := Geometry{
		PageWidth:     PageWidth,
		PageHeight:    PageHeight,
		CellWidth:     CellWidth,
		CellHeight:    CellHeight,
		Columns:       Columns,
		Rows:          Rows,
		TopMargin:     DefaultTopMargin,
		HorizontalGap: DefaultHorizontalGap,
		VerticalGap:   DefaultVerticalGap,
		Padding:       DefaultPadding,
	}
	g.LeftMargin = g.centeredLeft()
	return g
}

// WithOverrides returns a copy of g with the set overrides applied. When the
// horizontal gap changes but no left margin is given, the columns are
// re-centred.
func (g Geometry) WithOverrides(o Overrides) Geometry {
	if o.TopMargin != nil {
		g.TopMargin = *o.TopMargin
	}
	if o.HorizontalGap != nil {
		g.HorizontalGap = *o.HorizontalGap
	}
	if o.VerticalGap != nil {
		g.VerticalGap = *o.VerticalGap
	}
	if o.LeftMargin != nil {
		g.LeftMargin = *o.LeftMargin
	} else {
		g.LeftMargin = g.centeredLeft()
	}
	return g
}

func (g Geometry) centeredLeft() float64 {
	used := float64(g.Columns)*g.CellWidth + float64(g.Columns-1)*g.HorizontalGap
	return (g.PageWidth - used) / 2
}

// Count returns the number of cells on the sheet.
func (g Geometry) Count() int { return g.Columns * g.Rows }

// Page returns the page rectangle.
func (g Geometry) Page() Rect { return Rect{W: g.PageWidth, H: g.PageHeight} }

// CellOrigins returns the top-left corner of every cell in row-major order.
func (g Geometry) CellOrigins() []Point {
	pts := make([]Point, 0, g.Count())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			pts = append(pts, Point{
				X: g.LeftMargin + float64(col)*(g.CellWidth+g.HorizontalGap),
				Y: g.TopMargin + float64(row)*(g.CellHeight+g.VerticalGap),
			})
		}
	}
	return pts
}

// Cells returns the cell rectangles in row-major order.
func (g Geometry) Cells() []Rect {
	origins := g.CellOrigins()
	cells := make([]Rect, len(origins))
	for i, p := range origins {
		cells[i] = g.CellAt(p)
	}
	return cells
}

// CellAt returns the cell rectangle whose top-left corner is origin.
func (g Geometry) CellAt(origin Point) Rect {
	return Rect{X: origin.X, Y: origin.Y, W: g.CellWidth, H: g.CellHeight}
}

// ContentArea returns the padded drawing area of the cell at origin.
func (g Geometry) ContentArea(origin Point) Rect {
	return g.CellAt(origin).Inset(g.Padding)
}

// CenterOffset returns the offset that centres a block of height block
// inside an area of height area. The result is negative when the block is
// taller than the area.
func CenterOffset(area, block float64) float64 {
	return (area - block) / 2
}

// Validate reports cells that fall outside the page or overlap each other.
// The renderers never call it; out-of-page geometry is drawn as computed.
func (g Geometry) Validate() error {
	for _, v := range []float64{g.TopMargin, g.LeftMargin, g.HorizontalGap, g.VerticalGap} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.New(errs.ErrCodeInvalidGeometry, "spacing must be a finite number")
		}
	}
	page := g.Page()
	cells := g.Cells()
	for i, c := range cells {
		if !page.Contains(c) {
			return errs.New(errs.ErrCodeInvalidGeometry,
				"cell %d at (%.1f, %.1f) extends past the page", i+1, c.X, c.Y)
		}
		for j := i + 1; j < len(cells); j++ {
			if c.Overlaps(cells[j]) {
				return errs.New(errs.ErrCodeInvalidGeometry, "cells %d and %d overlap", i+1, j+1)
			}
		}
	}
	return nil
}
