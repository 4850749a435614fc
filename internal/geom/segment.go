package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// ParallelEpsilon is the determinant magnitude below which two lines are
// treated as parallel.
const ParallelEpsilon = 1e-5

// Segment is one straight stretch of road.
type Segment struct {
	Start orb.Point
	End   orb.Point
}

// Length returns the distance between the endpoints.
func (s Segment) Length() float64 { return Distance(s.Start, s.End) }

// Direction returns the unit vector from Start to End.
func (s Segment) Direction() orb.Point { return Normalize(Sub(s.End, s.Start)) }

// Bound returns the axis-aligned box covering the segment.
func (s Segment) Bound() orb.Bound {
	return orb.MultiPoint{s.Start, s.End}.Bound()
}

// Normalized maps grid coordinates into [-0.5, 0.5] on both axes.
func (s Segment) Normalized(w, h int) Segment {
	fw, fh := float64(w), float64(h)
	return Segment{
		Start: orb.Point{s.Start[0]/fw - 0.5, s.Start[1]/fh - 0.5},
		End:   orb.Point{s.End[0]/fw - 0.5, s.End[1]/fh - 0.5},
	}
}

// Intersect solves for the intersection of the infinite lines through e0-e1
// and o0-o1. Near-parallel lines report no intersection.
func Intersect(e0, e1, o0, o1 orb.Point) (orb.Point, bool) {
	a1 := e1[1] - e0[1]
	b1 := e0[0] - e1[0]
	c1 := a1*e0[0] + b1*e0[1]

	a2 := o1[1] - o0[1]
	b2 := o0[0] - o1[0]
	c2 := a2*o0[0] + b2*o0[1]

	det := a1*b2 - a2*b1
	if math.Abs(det) < ParallelEpsilon {
		return orb.Point{}, false
	}
	return orb.Point{(b2*c1 - b1*c2) / det, (a1*c2 - a2*c1) / det}, true
}

// Crossing intersects the ray e0->e1 with the segment o0-o1. The point must lie
// within o0-o1 (endpoints included) and on the e1 side of e0; it may lie past
// e1, so callers bound the distance themselves.
func Crossing(e0, e1, o0, o1 orb.Point) (orb.Point, bool) {
	p, ok := Intersect(e0, e1, o0, o1)
	if !ok {
		return orb.Point{}, false
	}
	if Dot(Sub(p, o0), Sub(p, o1)) > 0 {
		return orb.Point{}, false
	}
	if Dot(Sub(e0, e1), Sub(e0, p)) < 0 {
		return orb.Point{}, false
	}
	return p, true
}

// Nearest returns the crossing of e0->e1 with any of segs that is closest to
// e0 and strictly closer than limit. Crossings at e0 itself are ignored when
// skipStart is set.
func Nearest(e0, e1 orb.Point, segs []Segment, limit float64, skipStart bool) (orb.Point, float64, bool) {
	best := orb.Point{}
	found := false
	for _, o := range segs {
		p, ok := Crossing(e0, e1, o.Start, o.End)
		if !ok {
			continue
		}
		if skipStart && Near(p, e0) {
			continue
		}
		if d := Distance(p, e0); d < limit {
			limit = d
			best = p
			found = true
		}
	}
	return best, limit, found
}
