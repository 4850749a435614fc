package roads

import (
	"context"
	"math"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"citygen/internal/core"
	"citygen/internal/geom"
	"citygen/internal/raster"
)

// DefaultSampleCount is the number of axes probed when orienting a street
// grid.
const DefaultSampleCount = 8

// Orientation is the axis chosen for a street grid and the open distance
// from the root along each of the four grid directions.
type Orientation struct {
	Axis                           orb.Point
	Forward, Backward, Left, Right float64
}

// SampleDirection probes samples axes spread over half a turn from pos and
// picks the one with the longest combined reach in both directions. Reach is
// cut short by the first highway crossing or the first water cell.
func SampleDirection(field *core.Field, highway []geom.Segment, pos orb.Point, seed float64, samples int) Orientation {
	if samples < 1 {
		samples = 1
	}
	step := 180.0 / float64(samples)
	jitter := core.Hash1(pos[0]*pos[1] + seed)

	var o Orientation
	bestSum := -1.0
	for i := 0; i < samples; i++ {
		a := (step * (float64(i) + jitter)) * math.Pi / 180
		dir := orb.Point{math.Cos(a), math.Sin(a)}
		d0 := RayDistance(field, highway, pos, dir)
		d1 := RayDistance(field, highway, pos, geom.Scale(dir, -1))
		if d0+d1 > bestSum {
			bestSum = d0 + d1
			o.Axis = dir
			o.Forward, o.Backward = d0, d1
		}
	}
	o.Left = RayDistance(field, highway, pos, geom.Perp(o.Axis))
	o.Right = RayDistance(field, highway, pos, geom.Scale(geom.Perp(o.Axis), -1))
	return o
}

// RayDistance returns how far a ray from pos along dir travels before it
// meets a highway segment or leaves land. Land is tested at whole steps.
func RayDistance(field *core.Field, highway []geom.Segment, pos, dir orb.Point) float64 {
	limit := float64(field.W * field.H)
	hit, hasHit := limit, false
	if _, d, ok := geom.Nearest(pos, geom.Add(pos, dir), highway, limit, false); ok {
		hit, hasHit = d, true
	}

	w, h := float64(field.W), float64(field.H)
	p := pos
	toSea := 0.0
	for p[0] >= 0 && p[0] < w && p[1] >= 0 && p[1] < h {
		if !field.IsLand(p[0], p[1]) {
			if hasHit {
				return math.Min(toSea, hit)
			}
			return toSea
		}
		toSea++
		p = geom.Add(pos, geom.Scale(dir, toSea))
	}
	if hasHit {
		return hit
	}
	return toSea
}

// StreetsConfig drives street growth across all blocks.
type StreetsConfig struct {
	BlockWidth, BlockHeight float64
	// Iterations caps each street grammar.
	Iterations int
	// SampleCount is the number of axes probed per root.
	SampleCount int
	// Workers bounds the number of blocks grown concurrently.
	Workers int
}

// Street is the street grid grown inside one block.
type Street struct {
	Block       int
	Root        orb.Point
	Orientation Orientation
	Network     Network
	Iterations  int
	Attempts    int
}

// GrowStreets grows at most one street grid per block. Blocks are processed
// concurrently, but roots and seeds depend only on the block, so the result
// matches a sequential run. Blocks where no root commits a segment are
// omitted. The result is ordered by block index.
func GrowStreets(ctx context.Context, field *core.Field, highway Network, blocks []raster.Block, cfg StreetsConfig, seed float64) ([]Street, error) {
	found := make([]*Street, len(blocks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))
	for i := range blocks {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found[i] = growBlock(field, highway, blocks[i], cfg, seed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var streets []Street
	for _, s := range found {
		if s != nil {
			streets = append(streets, *s)
		}
	}
	return streets, nil
}

// growBlock tries roots drawn from a hash chain seeded by the block's first
// cell until one yields a street.
func growBlock(field *core.Field, highway Network, block raster.Block, cfg StreetsConfig, seed float64) *Street {
	origin := block.Seed()
	chain := core.NewChain(core.Hash2to1(float64(origin.X), float64(origin.Y)))
	n := len(block.Cells)
	for attempt := 1; attempt <= n; attempt++ {
		c := block.Cells[chain.Intn(n)]
		root := orb.Point{float64(c.X), float64(c.Y)}
		o := SampleDirection(field, highway.Segments, root, seed, cfg.SampleCount)

		gr := NewStreet(field, StreetConfig{
			Width:  cfg.BlockWidth,
			Height: cfg.BlockHeight,
			Axis:   o.Axis,
			Root:   root,
		}, highway)
		iters := gr.Process(core.Hash1(root[0]+root[1]*float64(field.W)+seed), cfg.Iterations)
		if net := gr.Network(); len(net.Segments) > 0 {
			return &Street{
				Block:       block.Index,
				Root:        root,
				Orientation: o,
				Network:     net,
				Iterations:  iters,
				Attempts:    attempt,
			}
		}
	}
	return nil
}

// StreetSegments flattens the street segments in block order.
func StreetSegments(streets []Street) []geom.Segment {
	var segs []geom.Segment
	for _, s := range streets {
		segs = append(segs, s.Network.Segments...)
	}
	return segs
}
