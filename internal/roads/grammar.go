// Package roads grows highway and street networks over a terrain field with a
// stack-based turtle grammar.
package roads

import (
	"math"

	"github.com/paulmach/orb"

	"citygen/internal/core"
	"citygen/internal/geom"
)

// State is the lifecycle of a growing network.
type State uint8

const (
	// Growing means the last extension committed every sub-segment.
	Growing State = iota
	// BlockedButBranching means the current branch terminated but saved
	// branches remain to be explored.
	BlockedButBranching
	// Stopped means the stack ran dry; the network is final.
	Stopped
)

func (s State) String() string {
	switch s {
	case Growing:
		return "growing"
	case BlockedButBranching:
		return "blocked"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

const (
	// intersectReach bounds how far past a segment's length a crossing is
	// still accepted, as a multiple of the segment length.
	intersectReach = 1.5
)

// Network is the output of one grammar run.
type Network struct {
	Segments  []geom.Segment
	Crossings []orb.Point
}

// strategy supplies the parts of the grammar that differ between highways
// and streets.
type strategy interface {
	// start places the initial turtle and seeds the stack.
	start(g *Grammar)
	// step runs one iteration of the growth loop.
	step(g *Grammar)
	// extend grows the current branch and reports whether it may continue.
	extend(g *Grammar) bool
	// branch saves the forks at the current turtle position.
	branch(g *Grammar)
	// joint snaps seg's end onto a nearby crossing.
	joint(g *Grammar, seg *geom.Segment) bool
	// intersect truncates seg at the nearest road it crosses.
	intersect(g *Grammar, seg *geom.Segment) bool
}

// Grammar is the shared growth engine. A Grammar is owned by one goroutine;
// distinct grammars may run concurrently as long as the field and any parent
// network are not mutated.
type Grammar struct {
	field *core.Field
	kind  strategy

	seed  float64
	tur   Turtle
	stack Stack
	state State
	net   Network
}

// Process grows a fresh network from seed, running at most maxIter
// iterations. It returns the number of iterations used.
func (g *Grammar) Process(seed float64, maxIter int) int {
	g.seed = seed
	g.state = Growing
	g.net = Network{}
	g.stack.Reset()
	g.kind.start(g)

	i := 0
	for g.state != Stopped && i < maxIter {
		g.kind.step(g)
		i++
	}
	return i
}

// Network returns the segments and crossings grown by the last Process.
func (g *Grammar) Network() Network { return g.net }

// State reports where the last Process left the grammar.
func (g *Grammar) State() State { return g.state }

// Turtle returns the current cursor.
func (g *Grammar) Turtle() Turtle { return g.tur }

// Pending reports the number of saved branches.
func (g *Grammar) Pending() int { return g.stack.Len() }

func (g *Grammar) push() {
	if g.state == Stopped {
		return
	}
	g.stack.Push(g.tur)
}

func (g *Grammar) pop() {
	t, ok := g.stack.Pop()
	if !ok {
		g.state = Stopped
		return
	}
	g.tur = t
}

// settle records the outcome of an iteration before the next branch is
// resumed.
func (g *Grammar) settle(extended bool) {
	if extended {
		g.state = Growing
	} else {
		g.state = BlockedButBranching
	}
}

// commit runs joint, intersect and the bound test on seg, appends it and
// reports whether the branch may keep extending.
func (g *Grammar) commit(seg geom.Segment) bool {
	end := g.tur.Pos
	stop := g.kind.joint(g, &seg) || g.kind.intersect(g, &seg)
	if !g.field.Contains(end[0], end[1]) {
		stop = true
	}
	seg.End = clip(seg, g.field.W, g.field.H)
	g.net.Segments = append(g.net.Segments, seg)
	return !stop
}

// recordCrossing adds p to the grammar's own crossing list.
func (g *Grammar) recordCrossing(p orb.Point) {
	g.net.Crossings = append(g.net.Crossings, p)
}

// fork saves the current turtle and the perpendicular branches. With
// probability both the turtle forks left and right, otherwise it turns one
// way.
func (g *Grammar) fork(both float64) {
	g.push()
	pos := g.tur.Pos
	r0, r1 := core.Hash2(pos[0]+g.seed, pos[1]+g.seed)
	if r0 < both {
		g.tur.Rotate(90)
		g.push()
		g.tur.Rotate(180)
		g.push()
	} else {
		if r1 < 0.5 {
			g.tur.Rotate(90)
		} else {
			g.tur.Rotate(-90)
		}
		g.push()
	}
	g.recordCrossing(pos)
}

// snap moves seg's end to the closest crossing within radius, then re-runs
// intersect on the shortened segment.
func (g *Grammar) snap(seg *geom.Segment, radius float64, sets ...[]orb.Point) bool {
	var best orb.Point
	found := false
	for _, set := range sets {
		for _, c := range set {
			if d := geom.Distance(c, seg.End); d < radius {
				radius = d
				best = c
				found = true
			}
		}
	}
	if !found {
		return false
	}
	seg.End = best
	g.kind.intersect(g, seg)
	return true
}

// truncate cuts seg at the nearest crossing with any of the segment sets and
// records the crossing point.
func (g *Grammar) truncate(seg *geom.Segment, sets ...[]geom.Segment) bool {
	limit := seg.Length() * intersectReach
	var best orb.Point
	found := false
	for _, set := range sets {
		if p, d, ok := geom.Nearest(seg.Start, seg.End, set, limit, true); ok {
			best = p
			limit = d
			found = true
		}
	}
	if !found {
		return false
	}
	seg.End = best
	g.recordCrossing(best)
	return true
}

// clip pulls the end of s back onto the grid rectangle [0,w-1] x [0,h-1].
// The start is assumed to lie inside.
func clip(s geom.Segment, w, h int) orb.Point {
	maxX, maxY := float64(w-1), float64(h-1)
	end := s.End
	if end[0] >= 0 && end[0] <= maxX && end[1] >= 0 && end[1] <= maxY {
		return end
	}
	d := geom.Sub(end, s.Start)
	t := 1.0
	for i, hi := range [2]float64{maxX, maxY} {
		switch {
		case d[i] > 0 && end[i] > hi:
			t = math.Min(t, (hi-s.Start[i])/d[i])
		case d[i] < 0 && end[i] < 0:
			t = math.Min(t, -s.Start[i]/d[i])
		}
	}
	t = math.Max(t, 0)
	p := geom.Add(s.Start, geom.Scale(d, t))
	p[0] = math.Min(math.Max(p[0], 0), maxX)
	p[1] = math.Min(math.Max(p[1], 0), maxY)
	return p
}
