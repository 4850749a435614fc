package raster

import (
	"image"

	"citygen/internal/core"
)

// MinBlockCells is the smallest component kept as a block.
const MinBlockCells = 5

// Block is a 4-connected region of buildable cells.
type Block struct {
	// Index is the block's position in raster discovery order.
	Index int
	// Cells lists the member cells in flood-fill order; Cells[0] is the seed.
	Cells  []image.Point
	Bounds image.Rectangle
}

// Seed returns the cell the flood fill started from.
func (b Block) Seed() image.Point { return b.Cells[0] }

// Partition flood-fills the buildable cells into blocks. Cells are scanned in
// raster order, so the result is ordered by each block's first cell, not by
// size or adjacency. Components smaller than MinBlockCells are dropped.
func (r *Rasterizer) Partition() []Block {
	work := r.mask.Clone()
	var blocks []Block
	for y := 0; y < work.H; y++ {
		for x := 0; x < work.W; x++ {
			if !work.Get(x, y) {
				continue
			}
			cells := extract(work, image.Pt(x, y))
			if len(cells) < MinBlockCells {
				continue
			}
			blocks = append(blocks, Block{
				Index:  len(blocks),
				Cells:  cells,
				Bounds: bounds(cells),
			})
		}
	}
	return blocks
}

var neighbors = [4]image.Point{{1, 0}, {0, -1}, {-1, 0}, {0, 1}}

// extract collects the component containing origin and clears it from work.
// The frontier is an explicit FIFO queue so block size is unbounded.
func extract(work *core.Mask, origin image.Point) []image.Point {
	work.Set(origin.X, origin.Y, false)
	cells := []image.Point{origin}
	frontier := []image.Point{origin}
	for len(frontier) > 0 {
		p := frontier[0]
		frontier = frontier[1:]
		for _, d := range neighbors {
			n := p.Add(d)
			if !work.Get(n.X, n.Y) {
				continue
			}
			work.Set(n.X, n.Y, false)
			frontier = append(frontier, n)
			cells = append(cells, n)
		}
	}
	return cells
}

func bounds(cells []image.Point) image.Rectangle {
	r := image.Rectangle{Min: cells[0], Max: cells[0].Add(image.Pt(1, 1))}
	for _, c := range cells[1:] {
		r = r.Union(image.Rectangle{Min: c, Max: c.Add(image.Pt(1, 1))})
	}
	return r
}

// Label writes a per-block colour into the field's block channel. Cells that
// belong to no block are zeroed.
func Label(field *core.Field, blocks []Block) {
	layer := field.Layer(core.ChannelBlock)
	for i := range layer {
		layer[i] = 0
	}
	n := float64(len(blocks))
	for i, b := range blocks {
		v := core.Hash1(float64(i+1) / n)
		for _, c := range b.Cells {
			layer[field.Index(c.X, c.Y)] = v
		}
	}
}
