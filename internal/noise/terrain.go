package noise

import (
	"math"

	"citygen/internal/core"
)

// DefaultOctaves is the number of cellular layers summed into the fractal.
const DefaultOctaves = 4

// thresholdEpsilon guards the elevation normalization against a zero sea
// level.
const thresholdEpsilon = 1e-5

// populationPitch is the coarse population cell size relative to the width.
const populationPitch = 0.65

// Fractal sums octaves of cellular noise at halving pitch and halving weight.
// The first octave has a pitch of min(w,h) and weight 1/2.
func Fractal(w, h int, seed int64, octaves int) []float64 {
	out := make([]float64, w*h)
	maxSize := float64(min(w, h)) * 2
	coeff := 1.0
	for k := 0; k < octaves; k++ {
		coeff /= 2
		cell := Cellular{Pitch: maxSize * coeff, Seed: core.Mix(uint64(seed), k)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				near, _ := cell.Sample(float64(x), float64(y))
				if near.Dist <= 1 {
					out[y*w+x] += (1 - near.Dist) * coeff
				}
			}
		}
	}
	return out
}

// BuildMask thresholds a fractal into a land mask (1 land, 0 water) and a
// normalized elevation. Values at or below seaLevel are water.
func BuildMask(fbm []float64, seaLevel float64) (land, elevation []float64) {
	land = make([]float64, len(fbm))
	elevation = make([]float64, len(fbm))
	for i, v := range fbm {
		if seaLevel < thresholdEpsilon {
			land[i] = 1
			elevation[i] = 1
			continue
		}
		if v > seaLevel {
			land[i] = 1
		}
		elevation[i] = math.Min(1, v/seaLevel)
	}
	return land, elevation
}

// BuildPopulation blends the nearest and second-nearest cellular distances of
// a coarse noise into a density in [0,1], biased by the fractal itself.
func BuildPopulation(w, h int, seed int64, fbm []float64) []float64 {
	out := make([]float64, w*h)
	cell := Cellular{Pitch: float64(w) * populationPitch, Seed: uint64(seed)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			near, second := cell.Sample(float64(x), float64(y))
			pop := core.Smoothstep(0.3, 1, 1-near.Dist)
			pop2 := core.Smoothstep(0.3, 1, 1-second.Dist)
			var factor float64
			if sum := near.Dist + second.Dist; sum > 0 {
				factor = core.Smoothstep(0, 1, math.Min(near.Dist, second.Dist)/sum)
			}
			idx := y*w + x
			v := (pop*(1-factor)+pop2*factor)*0.7 + fbm[idx]*0.3
			out[idx] = math.Max(0, math.Min(1, v))
		}
	}
	return out
}

// Terrain builds the land, elevation and population channels of a w x h
// field. The result depends only on its arguments.
func Terrain(w, h int, seed int64, seaLevel float64, octaves int) *core.Field {
	if octaves <= 0 {
		octaves = DefaultOctaves
	}
	f := core.NewField(w, h)
	fbm := Fractal(f.W, f.H, seed, octaves)
	land, elevation := BuildMask(fbm, seaLevel)
	copy(f.Layer(core.ChannelLand), land)
	copy(f.Layer(core.ChannelElevation), elevation)
	copy(f.Layer(core.ChannelPopulation), BuildPopulation(f.W, f.H, seed, fbm))
	return f
}
