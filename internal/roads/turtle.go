package roads

import (
	"github.com/paulmach/orb"

	"citygen/internal/geom"
)

// Turtle is a growth cursor: a position and a unit heading.
type Turtle struct {
	Pos orb.Point
	Dir orb.Point
}

// Move advances the turtle along its heading.
func (t *Turtle) Move(l float64) {
	t.Pos = geom.Add(t.Pos, geom.Scale(t.Dir, l))
}

// Rotate turns the heading by deg degrees counter-clockwise.
func (t *Turtle) Rotate(deg float64) {
	t.Dir = geom.Rotate(t.Dir, deg)
}

// Stack holds saved turtles still to be explored, most recent last.
type Stack struct {
	items []Turtle
}

// Push saves a copy of t.
func (s *Stack) Push(t Turtle) { s.items = append(s.items, t) }

// Pop removes and returns the most recently pushed turtle.
func (s *Stack) Pop() (Turtle, bool) {
	n := len(s.items)
	if n == 0 {
		return Turtle{}, false
	}
	t := s.items[n-1]
	s.items = s.items[:n-1]
	return t, true
}

// Len reports the number of pending branches.
func (s *Stack) Len() int { return len(s.items) }

// Reset drops every pending branch.
func (s *Stack) Reset() { s.items = s.items[:0] }
