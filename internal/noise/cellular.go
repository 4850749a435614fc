// Package noise builds the terrain and population layers from cellular
// (Voronoi) noise.
package noise

import (
	"math"

	"citygen/internal/core"
)

// Feature is a jittered cell centre found by a cellular query.
type Feature struct {
	X, Y float64
	// Dist is the distance from the query point in cell units.
	Dist float64
}

// Cellular partitions the plane into square cells of Pitch size, each holding
// one jittered feature point. Jitter is a pure function of the cell
// coordinates and Seed.
type Cellular struct {
	Pitch float64
	Seed  uint64
}

// Sample returns the nearest and second-nearest features to (x, y).
func (c Cellular) Sample(x, y float64) (Feature, Feature) {
	px := x / c.Pitch
	py := y / c.Pitch
	nx := math.Floor(px)
	ny := math.Floor(py)
	px -= nx
	py -= ny

	md := c.Pitch * c.Pitch
	md2 := md
	var gx, gy, gx2, gy2 float64
	for j := -1; j <= 1; j++ {
		for i := -1; i <= 1; i++ {
			jx, jy := core.Jitter(c.Seed, int(nx)+i+1, int(ny)+j+1)
			cx := float64(i) + jx
			cy := float64(j) + jy
			d := math.Hypot(cx-px, cy-py)
			if d < md {
				md2, gx2, gy2 = md, gx, gy
				md, gx, gy = d, cx, cy
			} else if d < md2 {
				md2, gx2, gy2 = d, cx, cy
			}
		}
	}
	near := Feature{X: (gx + nx) * c.Pitch, Y: (gy + ny) * c.Pitch, Dist: md}
	second := Feature{X: (gx2 + nx) * c.Pitch, Y: (gy2 + ny) * c.Pitch, Dist: md2}
	return near, second
}
