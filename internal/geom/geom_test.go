package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestIntersectPerpendicular(t *testing.T) {
	p, ok := Intersect(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, -5}, orb.Point{5, 5})
	if !ok {
		t.Fatal("expected perpendicular segments to intersect")
	}
	if math.Abs(p[0]-5) > 1e-12 || math.Abs(p[1]) > 1e-12 {
		t.Fatalf("expected intersection at (5,0), got %v", p)
	}
}

func TestIntersectParallel(t *testing.T) {
	if _, ok := Intersect(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{0, 1}, orb.Point{10, 1}); ok {
		t.Fatal("parallel segments must not intersect")
	}
}

func TestCrossingRespectsSpans(t *testing.T) {
	// The other segment ends before reaching the line.
	if _, ok := Crossing(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, 1}, orb.Point{5, 5}); ok {
		t.Fatal("crossing outside the other segment's span must be rejected")
	}
	// The crossing is behind the ray origin.
	if _, ok := Crossing(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{-3, -1}, orb.Point{-3, 1}); ok {
		t.Fatal("crossing behind the start must be rejected")
	}
	p, ok := Crossing(orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, 0}, orb.Point{5, 3})
	if !ok || !Near(p, orb.Point{5, 0}) {
		t.Fatalf("endpoint touch should count as crossing, got %v %v", p, ok)
	}
}

func TestNearestPicksClosestToStart(t *testing.T) {
	segs := []Segment{
		{Start: orb.Point{8, -1}, End: orb.Point{8, 1}},
		{Start: orb.Point{3, -1}, End: orb.Point{3, 1}},
		{Start: orb.Point{0, -1}, End: orb.Point{0, 1}},
	}
	p, d, ok := Nearest(orb.Point{0, 0}, orb.Point{10, 0}, segs, 15, true)
	if !ok {
		t.Fatal("expected a crossing")
	}
	if !Near(p, orb.Point{3, 0}) || math.Abs(d-3) > 1e-9 {
		t.Fatalf("expected nearest crossing at (3,0) dist 3, got %v dist %f", p, d)
	}
	if _, _, ok := Nearest(orb.Point{0, 0}, orb.Point{10, 0}, segs, 2, true); ok {
		t.Fatal("crossings beyond the limit must be ignored")
	}
}

func TestRotateAndNormalized(t *testing.T) {
	v := Rotate(orb.Point{1, 0}, 90)
	if !Near(v, orb.Point{0, 1}) {
		t.Fatalf("rotate 90 expected (0,1), got %v", v)
	}
	s := Segment{Start: orb.Point{0, 0}, End: orb.Point{64, 32}}.Normalized(64, 64)
	if !Near(s.Start, orb.Point{-0.5, -0.5}) || !Near(s.End, orb.Point{0.5, 0}) {
		t.Fatalf("unexpected normalized segment %+v", s)
	}
}

func TestSegmentDirectionAndBound(t *testing.T) {
	s := Segment{Start: orb.Point{4, 6}, End: orb.Point{1, 2}}
	if d := s.Direction(); !Near(d, orb.Point{-0.6, -0.8}) {
		t.Fatalf("expected unit direction (-0.6,-0.8), got %v", d)
	}
	b := s.Bound()
	if b.Min != (orb.Point{1, 2}) || b.Max != (orb.Point{4, 6}) {
		t.Fatalf("unexpected bound %+v", b)
	}
	if d := (Segment{Start: orb.Point{3, 3}, End: orb.Point{3, 3}}).Direction(); d != (orb.Point{}) {
		t.Fatalf("degenerate segment should have zero direction, got %v", d)
	}
}
