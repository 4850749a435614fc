package buildings

import (
	"math"
	"slices"

	"github.com/paulmach/orb"

	"citygen/internal/core"
	"citygen/internal/geom"
)

// maxLayers bounds the layer count of a building at full population.
const maxLayers = 5

// Building is a stack of floors placed at a normalized position.
type Building struct {
	ID       int
	Position orb.Point
	// Height is the total height in normalized units.
	Height float64
	// Bound is the footprint box no floor vertex may leave.
	Bound orb.Bound
	Style int
	// Floors is ordered bottom to top.
	Floors []Floor
}

// NewBuilding stacks between one and five floors at pos. Denser areas get
// more layers. Every floor but the ground one gets a jittered thickness and
// the ground floor takes what is left, so the thicknesses add up to the full
// height.
func NewBuilding(id int, pos orb.Point, height, scale, population float64, style int, seed float64) Building {
	b := Building{
		ID:       id,
		Position: pos,
		Height:   height * scale,
		Bound: orb.Bound{
			Min: orb.Point{pos[0] - scale, pos[1] - scale},
			Max: orb.Point{pos[0] + scale, pos[1] + scale},
		},
		Style: style,
	}

	layers := int(math.Floor(core.Hash2to1(pos[0]+seed, pos[1]+seed)*maxLayers*population + 1))
	layers = max(1, layers)
	dH := b.Height / float64(layers)
	h := b.Height
	jitter := scale / 1.5
	n0, n1 := core.Hash2(pos[0]+seed, pos[1]+seed)

	// Floors are generated from the roof down.
	floors := make([]Floor, 0, layers)
	for i := 0; i < layers; i++ {
		n0, n1 = core.Hash2(n0+float64(i), n1+float64(i))
		center := geom.Add(pos, orb.Point{n0*jitter - jitter/2, n1*jitter - jitter/2})
		r := core.Hash2to1(n0, n1)
		edges := max(4, int(math.Floor(r*4*population+3)))

		// The last layer generated is the ground floor; it takes whatever
		// height remains so the floors sum to the building height.
		dh := h
		if i < layers-1 {
			dh = h - float64(layers-i)*dH + dH*(r*0.3+0.7)
		}
		f := Floor{
			Rings:     []orb.Ring{FloorRing(center, edges, scale, b.Bound, seed)},
			Top:       h,
			Thickness: dh,
			Style:     style,
			Building:  id,
		}
		if i > 0 {
			f.combine(floors[i-1])
		}
		floors = append(floors, f)
		h -= dh
	}
	slices.Reverse(floors)
	b.Floors = floors
	return b
}

// Roof returns the outline of the top floor.
func (b Building) Roof() orb.Ring {
	return b.Floors[len(b.Floors)-1].Outline()
}
