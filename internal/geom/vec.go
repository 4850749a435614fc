// Package geom holds the small amount of 2D vector math shared by the road
// and building generators. Points are orb.Point values.
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Epsilon is the relative tolerance used by Near.
const Epsilon = 1e-6

func Add(a, b orb.Point) orb.Point { return orb.Point{a[0] + b[0], a[1] + b[1]} }

func Sub(a, b orb.Point) orb.Point { return orb.Point{a[0] - b[0], a[1] - b[1]} }

func Scale(a orb.Point, s float64) orb.Point { return orb.Point{a[0] * s, a[1] * s} }

func Dot(a, b orb.Point) float64 { return a[0]*b[0] + a[1]*b[1] }

// Length returns the Euclidean norm of a.
func Length(a orb.Point) float64 { return math.Hypot(a[0], a[1]) }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b orb.Point) float64 { return planar.Distance(a, b) }

// Normalize returns a scaled to unit length. The zero vector is returned
// unchanged.
func Normalize(a orb.Point) orb.Point {
	l := Length(a)
	if l == 0 {
		return a
	}
	return orb.Point{a[0] / l, a[1] / l}
}

// Perp returns a rotated 90 degrees counter-clockwise.
func Perp(a orb.Point) orb.Point { return orb.Point{-a[1], a[0]} }

// Rotate turns a by deg degrees counter-clockwise.
func Rotate(a orb.Point, deg float64) orb.Point {
	s, c := math.Sincos(deg * math.Pi / 180)
	return orb.Point{a[0]*c - a[1]*s, a[0]*s + a[1]*c}
}

// Near reports whether a and b are equal within a tolerance relative to their
// magnitude.
func Near(a, b orb.Point) bool {
	for i := 0; i < 2; i++ {
		tol := Epsilon * math.Max(1, math.Max(math.Abs(a[i]), math.Abs(b[i])))
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
