// Package raster carves road segments out of the buildable mask and splits
// what remains into blocks.
package raster

import (
	"math"

	"github.com/paulmach/orb"

	"citygen/internal/core"
	"citygen/internal/geom"
)

// Rasterizer owns the buildable mask of one generation run.
type Rasterizer struct {
	mask *core.Mask
}

// New seeds the mask from the field's land channel.
func New(field *core.Field) *Rasterizer {
	m := core.NewMask(field.W, field.H)
	land := field.Layer(core.ChannelLand)
	cells := m.Cells()
	for i := range cells {
		if land[i] > core.LandThreshold {
			cells[i] = 1
		}
	}
	return &Rasterizer{mask: m}
}

// FromMask wraps an existing mask. The rasterizer takes ownership.
func FromMask(m *core.Mask) *Rasterizer { return &Rasterizer{mask: m} }

// Mask exposes the current buildable mask.
func (r *Rasterizer) Mask() *core.Mask { return r.mask }

// Buildable reports whether the cell at (x, y) is still buildable.
func (r *Rasterizer) Buildable(x, y int) bool { return r.mask.Get(x, y) }

// Carve clears every cell covered by the segments thickened to thickness.
func (r *Rasterizer) Carve(segs []geom.Segment, thickness float64) {
	grid := orb.Bound{Max: orb.Point{float64(r.mask.W), float64(r.mask.H)}}
	for _, s := range segs {
		if !s.Bound().Pad(thickness).Intersects(grid) {
			continue
		}
		p1, p2, p3, p4, ok := quad(s, thickness)
		if !ok {
			continue
		}
		r.fillTriangle(p1, p2, p3)
		r.fillTriangle(p3, p4, p1)
	}
}

// quad offsets both endpoints by half the thickness along the segment normal.
func quad(s geom.Segment, thickness float64) (p1, p2, p3, p4 orb.Point, ok bool) {
	if s.Length() == 0 {
		return p1, p2, p3, p4, false
	}
	n := geom.Scale(geom.Perp(s.Direction()), thickness*0.5)
	p1 = geom.Add(s.Start, n)
	p2 = geom.Sub(s.Start, n)
	p3 = geom.Sub(s.End, n)
	p4 = geom.Add(s.End, n)
	return p1, p2, p3, p4, true
}

func (r *Rasterizer) fillTriangle(p1, p2, p3 orb.Point) {
	y0 := max(0, int(math.Floor(math.Min(p1[1], math.Min(p2[1], p3[1])))))
	y1 := min(r.mask.H-1, int(math.Floor(math.Max(p1[1], math.Max(p2[1], p3[1])))))
	for y := y0; y <= y1; y++ {
		x0, x1, ok := scanline(p1, p2, p3, float64(y))
		if !ok {
			continue
		}
		x0 = max(0, x0)
		x1 = min(r.mask.W, x1)
		for x := x0; x < x1; x++ {
			r.mask.Set(x, y, false)
		}
	}
}

// scanline returns the x span [x0, x1) covered by the triangle on row y. The
// span comes from the first pair of edges that both reach y.
func scanline(p1, p2, p3 orb.Point, y float64) (int, int, bool) {
	edges := [3][2]orb.Point{{p1, p2}, {p2, p3}, {p3, p1}}
	for i := 0; i < 3; i++ {
		a, b := edges[i], edges[(i+1)%3]
		if !spansY(a, y) || !spansY(b, y) {
			continue
		}
		alo, ahi := edgeX(a, y)
		blo, bhi := edgeX(b, y)
		return int(math.Floor(math.Min(alo, blo))), int(math.Ceil(math.Max(ahi, bhi))), true
	}
	return 0, 0, false
}

func spansY(e [2]orb.Point, y float64) bool {
	return y >= math.Min(e[0][1], e[1][1]) && y <= math.Max(e[0][1], e[1][1])
}

// edgeX interpolates the x coordinate of edge e at row y. A horizontal edge
// covers its whole extent.
func edgeX(e [2]orb.Point, y float64) (float64, float64) {
	dy := e[1][1] - e[0][1]
	if dy == 0 {
		return math.Min(e[0][0], e[1][0]), math.Max(e[0][0], e[1][0])
	}
	x := (y-e[0][1])*(e[1][0]-e[0][0])/dy + e[0][0]
	return x, x
}
