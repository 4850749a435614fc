// Package buildings places layered building footprints on the buildable
// cells left between roads and turns them into wall and roof geometry.
package buildings

import (
	"math"

	"github.com/paulmach/orb"

	"citygen/internal/core"
	"citygen/internal/geom"
)

// Floor is one horizontal layer of a building. Rings holds the outlines of
// every layer from this one up to the roof, so walls run continuously down to
// this floor's base. The floor's own outline is last.
type Floor struct {
	Rings     []orb.Ring
	Top       float64
	Thickness float64
	Style     int
	Building  int
}

// Base returns the elevation of the bottom of the floor.
func (f Floor) Base() float64 { return f.Top - f.Thickness }

// Outline returns the floor's own ring.
func (f Floor) Outline() orb.Ring { return f.Rings[len(f.Rings)-1] }

// combine prepends the rings of the floor above.
func (f *Floor) combine(above Floor) {
	rings := make([]orb.Ring, 0, len(above.Rings)+len(f.Rings))
	rings = append(rings, above.Rings...)
	f.Rings = append(rings, f.Rings...)
}

// FloorRing builds a closed polygon with edges sides around center. Vertices
// start at radius scale; if any vertex falls outside box the whole polygon is
// shrunk uniformly until it fits. Four-sided floors alternate between a
// hashed angle and its supplement, which yields skewed quads rather than
// squares.
func FloorRing(center orb.Point, edges int, scale float64, box orb.Bound, seed float64) orb.Ring {
	n := max(3, edges)
	noise := core.Hash2to1(center[0]+seed, center[1]+seed)
	step := 2 * math.Pi / float64(n)
	if n == 4 {
		step = (noise*40 + 50) / 180 * math.Pi
	}

	a := noise * math.Pi
	l := scale
	ring := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		v := orb.Point{math.Cos(a)*scale + center[0], math.Sin(a)*scale + center[1]}
		l = math.Min(l, reach(center, v, box))
		ring = append(ring, v)
		if n == 4 && (i == 1 || i == 3) {
			a += math.Pi - step
		} else {
			a += step
		}
	}
	if l < scale {
		for i, v := range ring {
			d := geom.Sub(v, center)
			ring[i] = geom.Add(center, geom.Scale(d, l/geom.Length(d)))
		}
	}
	return append(ring, ring[0])
}

// reach returns the distance from center towards v at which the ray leaves
// box, considering only the box sides that v lies beyond.
func reach(center, v orb.Point, box orb.Bound) float64 {
	l := math.Inf(1)
	lo, hi := box.Min, box.Max
	sides := [4]struct {
		out    bool
		o0, o1 orb.Point
	}{
		{v[0] > hi[0], orb.Point{hi[0], hi[1]}, orb.Point{hi[0], lo[1]}},
		{v[0] < lo[0], orb.Point{lo[0], hi[1]}, orb.Point{lo[0], lo[1]}},
		{v[1] > hi[1], orb.Point{hi[0], hi[1]}, orb.Point{lo[0], hi[1]}},
		{v[1] < lo[1], orb.Point{hi[0], lo[1]}, orb.Point{lo[0], lo[1]}},
	}
	for _, s := range sides {
		if !s.out {
			continue
		}
		if p, ok := geom.Intersect(center, v, s.o0, s.o1); ok {
			l = math.Min(l, geom.Distance(p, center))
		}
	}
	return l
}
