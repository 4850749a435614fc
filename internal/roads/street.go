package roads

import (
	"math"

	"github.com/paulmach/orb"

	"citygen/internal/core"
	"citygen/internal/geom"
)

// StreetConfig places one street grid inside a block.
type StreetConfig struct {
	// Width is the step along the grid axis, Height the step across it.
	Width, Height float64
	// Axis is the unit heading the grid is aligned to.
	Axis orb.Point
	// Root is where growth starts.
	Root orb.Point
}

type street struct {
	cfg    StreetConfig
	parent Network
	aspect float64
}

// NewStreet returns a grammar that grows a rectilinear street grid. The
// parent highway network is read but never modified.
func NewStreet(field *core.Field, cfg StreetConfig, parent Network) *Grammar {
	aspect := 1.0
	if cfg.Width > 0 && cfg.Height > 0 {
		aspect = math.Min(cfg.Width, cfg.Height) / math.Max(cfg.Width, cfg.Height)
	}
	return &Grammar{
		field: field,
		kind:  &street{cfg: cfg, parent: parent, aspect: aspect},
	}
}

func (s *street) start(g *Grammar) {
	g.tur = Turtle{Pos: s.cfg.Root, Dir: s.cfg.Axis}
	g.push()
	g.tur.Rotate(180)
}

func (s *street) step(g *Grammar) {
	extended := s.extend(g)
	g.settle(extended)
	if extended {
		s.branch(g)
	}
	g.pop()
}

func (s *street) extend(g *Grammar) bool {
	seg := geom.Segment{Start: g.tur.Pos}
	l := s.cfg.Width
	if math.Abs(geom.Dot(g.tur.Dir, s.cfg.Axis)) < 0.5 {
		l = s.cfg.Height
	}
	g.tur.Move(l)
	seg.End = g.tur.Pos
	if !g.field.IsLand(seg.End[0], seg.End[1]) {
		return false
	}
	return g.commit(seg)
}

func (s *street) branch(g *Grammar) { g.fork(0.8) }

func (s *street) joint(g *Grammar, seg *geom.Segment) bool {
	return g.snap(seg, seg.Length()*0.8*s.aspect, s.parent.Crossings, g.net.Crossings)
}

func (s *street) intersect(g *Grammar, seg *geom.Segment) bool {
	return g.truncate(seg, s.parent.Segments, g.net.Segments)
}
