package roads

import (
	"github.com/paulmach/orb"

	"citygen/internal/core"
	"citygen/internal/geom"
)

// HighwayConfig tunes highway growth.
type HighwayConfig struct {
	// Length is the distance covered by one full iteration.
	Length float64
	// Angle is the steering cone in degrees for one full iteration.
	Angle float64
	// SegmentCount splits each iteration into this many sub-segments.
	SegmentCount int
	// RayCount is the number of candidate headings probed per sub-segment.
	RayCount int
	// RaySamples is the number of density probes along each candidate.
	RaySamples int
	// StopDensity terminates a branch whose sub-segment ends at or below
	// this population density. Zero only stops on fully empty cells.
	StopDensity float64
}

// DefaultHighwayConfig returns the stock steering parameters.
func DefaultHighwayConfig() HighwayConfig {
	return HighwayConfig{
		Length:       100,
		Angle:        90,
		SegmentCount: 5,
		RayCount:     5,
		RaySamples:   5,
	}
}

type highway struct {
	cfg HighwayConfig
	// per sub-segment
	length float64
	cone   float64
	fork   float64
}

// NewHighway returns a grammar that grows the city's arterial network over
// the field, steering towards population.
func NewHighway(field *core.Field, cfg HighwayConfig) *Grammar {
	if cfg.SegmentCount < 1 {
		cfg.SegmentCount = 1
	}
	return &Grammar{
		field: field,
		kind: &highway{
			cfg:    cfg,
			length: cfg.Length / float64(cfg.SegmentCount),
			cone:   cfg.Angle / float64(cfg.SegmentCount),
			fork:   0.5,
		},
	}
}

// LandCells lists the land cells of the field in raster order.
func LandCells(field *core.Field) []orb.Point {
	var cells []orb.Point
	for y := 0; y < field.H; y++ {
		for x := 0; x < field.W; x++ {
			if field.At(core.ChannelLand, x, y) > core.LandThreshold {
				cells = append(cells, orb.Point{float64(x), float64(y)})
			}
		}
	}
	return cells
}

func (h *highway) start(g *Grammar) {
	land := LandCells(g.field)
	if len(land) == 0 {
		g.state = Stopped
		return
	}
	r0, r1 := core.Hash2(g.seed, g.seed)
	idx := min(int(r0*float64(len(land))), len(land)-1)
	g.tur = Turtle{Pos: land[idx], Dir: orb.Point{1, 0}}
	g.tur.Rotate(r1 * 360)
	g.push()
	g.tur.Rotate(180)
}

func (h *highway) step(g *Grammar) {
	extended := true
	for i := 0; i < h.cfg.SegmentCount; i++ {
		if !h.extend(g) {
			extended = false
			break
		}
	}
	g.settle(extended)
	pos := g.tur.Pos
	if g.field.IsLand(pos[0], pos[1]) {
		if extended {
			h.branch(g)
		}
		g.pop()
	} else if !extended {
		g.pop()
	}
	// A highway that reaches water without being blocked keeps going, so
	// arterials bridge narrow straits until the iteration cap.
}

func (h *highway) extend(g *Grammar) bool {
	if h.cfg.RayCount < 1 {
		return false
	}
	angle := 0.0
	if h.cfg.RayCount > 1 {
		angle = h.steer(g)
	}
	seg := geom.Segment{Start: g.tur.Pos}
	g.tur.Rotate(angle)
	g.tur.Move(h.length)
	seg.End = g.tur.Pos

	ok := g.commit(seg)
	end := g.tur.Pos
	if g.field.Sample(core.ChannelPopulation, end[0], end[1]) <= h.cfg.StopDensity {
		ok = false
	}
	return ok
}

// steer probes RayCount headings across the cone and returns the rotation
// whose samples collect the most population, weighting near samples higher.
func (h *highway) steer(g *Grammar) float64 {
	pos := g.tur.Pos
	step := h.cone / float64(h.cfg.RayCount)
	dl := h.length / float64(max(1, h.cfg.RaySamples))
	jitter := core.Hash1(pos[0]*pos[1] + g.seed)

	best, bestAngle := 0.0, 0.0
	for i := 0; i < h.cfg.RayCount; i++ {
		a := -h.cone/2 + step*(float64(i)+jitter)
		probe := g.tur
		probe.Rotate(a)
		s, l := 0.0, 0.0
		for j := 0; j < h.cfg.RaySamples; j++ {
			probe.Move(dl)
			if !g.field.Contains(probe.Pos[0], probe.Pos[1]) {
				break
			}
			l += dl
			s += g.field.Sample(core.ChannelPopulation, probe.Pos[0], probe.Pos[1]) / l
		}
		if s > best {
			best = s
			bestAngle = a
		}
	}
	return bestAngle
}

func (h *highway) branch(g *Grammar) { g.fork(h.fork) }

func (h *highway) joint(g *Grammar, seg *geom.Segment) bool {
	return g.snap(seg, seg.Length()*0.5, g.net.Crossings)
}

func (h *highway) intersect(g *Grammar, seg *geom.Segment) bool {
	return g.truncate(seg, g.net.Segments)
}
