package buildings

import (
	"math"
	"slices"

	"github.com/paulmach/orb"

	"citygen/internal/core"
)

// Config tunes building placement.
type Config struct {
	// GridSize is the side of a candidate site in cells.
	GridSize int
	// MaxBuildings caps the number of placement attempts.
	MaxBuildings int
	MinHeight    float64
	MaxHeight    float64
}

// DefaultConfig returns the stock placement parameters.
func DefaultConfig() Config {
	return Config{
		GridSize:     5,
		MaxBuildings: 2000,
		MinHeight:    0.3,
		MaxHeight:    15,
	}
}

// Candidates returns the centres of every GridSize x GridSize site whose
// cells are all buildable. Sites are listed column by column.
func Candidates(mask *core.Mask, gridSize int) []orb.Point {
	if gridSize < 1 {
		return nil
	}
	cols := mask.W / gridSize
	rows := mask.H / gridSize
	var sites []orb.Point
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			if siteClear(mask, i*gridSize, j*gridSize, gridSize) {
				sites = append(sites, orb.Point{
					(float64(i) + 0.5) * float64(gridSize),
					(float64(j) + 0.5) * float64(gridSize),
				})
			}
		}
	}
	return sites
}

func siteClear(mask *core.Mask, x0, y0, size int) bool {
	for x := x0; x < x0+size; x++ {
		for y := y0; y < y0+size; y++ {
			if !mask.Get(x, y) {
				return false
			}
		}
	}
	return true
}

// Place draws candidate sites without replacement and stacks a building on
// each one that passes a population-weighted test. Rejected sites stay in the
// pool. Positions, heights and bounds are normalized to the grid width.
func Place(field *core.Field, mask *core.Mask, cfg Config, seed float64) []Building {
	sites := Candidates(mask, cfg.GridSize)
	attempts := min(cfg.MaxBuildings, len(sites))
	scale := float64(cfg.GridSize) / float64(field.W) / 2

	var out []Building
	sd := core.Hash1(seed)
	for i := 0; i < attempts && len(sites) > 0; i++ {
		sd = core.Hash1(sd)
		idx := min(int(sd*float64(len(sites))), len(sites)-1)
		site := sites[idx]
		pop := field.Sample(core.ChannelPopulation, site[0], site[1])
		if core.Hash2to1(site[0]+sd, site[1]+sd) > pop+0.4 {
			continue
		}

		pos := orb.Point{site[0]/float64(field.W) - 0.5, site[1]/float64(field.H) - 0.5}
		sd = core.Hash1(sd)
		t := core.Bias(pop/1.5, sd)*(0.5*pop+0.1) + pop*0.4
		height := (cfg.MaxHeight-cfg.MinHeight)*t + cfg.MinHeight

		sd = core.Hash1(sd)
		style := core.Bias(pop/1.2, sd)*(0.5*pop+0.1) + pop*0.4

		out = append(out, NewBuilding(len(out), pos, height, scale, pop, int(math.Floor(style*3)), sd))
		sites = slices.Delete(sites, idx, idx+1)
	}
	return out
}
