package core

import "math"

// Channel selects one scalar layer of a Field.
type Channel uint8

const (
	// ChannelLand holds 1 for land and 0 for water.
	ChannelLand Channel = iota
	// ChannelPopulation holds population density in [0,1].
	ChannelPopulation
	// ChannelBlock holds a per-block colour value used for visualization only.
	ChannelBlock
	// ChannelElevation holds normalized terrain height in [0,1].
	ChannelElevation

	channelCount
)

// LandThreshold is the value a sampled land channel must exceed to count as
// solid ground.
const LandThreshold = 0.999

// Field is a width x height grid of scalar channels stored row-major.
type Field struct {
	W, H   int
	layers [channelCount][]float64
}

// NewField allocates a zeroed field.
func NewField(w, h int) *Field {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	f := &Field{W: w, H: h}
	for i := range f.layers {
		f.layers[i] = make([]float64, w*h)
	}
	return f
}

// Layer exposes the backing slice of a channel.
func (f *Field) Layer(ch Channel) []float64 { return f.layers[ch] }

// Index returns the linear slice index for coordinates (x, y).
func (f *Field) Index(x, y int) int { return y*f.W + x }

// At returns the raw value of the cell at (x, y), clamping coordinates to the
// grid.
func (f *Field) At(ch Channel, x, y int) float64 {
	x = clampInt(x, 0, f.W-1)
	y = clampInt(y, 0, f.H-1)
	return f.layers[ch][y*f.W+x]
}

// Sample bilinearly interpolates a channel at a fractional position. The four
// taps are the cells at ceil(x-1)..ceil(x) and ceil(y-1)..ceil(y); taps that
// fall outside the grid are clamped to its edge.
func (f *Field) Sample(ch Channel, x, y float64) float64 {
	x1 := math.Ceil(x - 1)
	x2 := math.Ceil(x)
	y1 := math.Ceil(y - 1)
	y2 := math.Ceil(y)
	fx := x - x1
	fy := y - y1

	ix1, ix2 := int(x1), int(x2)
	iy1, iy2 := int(y1), int(y2)
	v11 := f.At(ch, ix1, iy1)
	v21 := f.At(ch, ix2, iy1)
	v12 := f.At(ch, ix1, iy2)
	v22 := f.At(ch, ix2, iy2)

	return (v11*(1-fx)+v21*fx)*(1-fy) + (v12*(1-fx)+v22*fx)*fy
}

// IsLand reports whether the sampled land channel at (x, y) is solid ground.
func (f *Field) IsLand(x, y float64) bool {
	return f.Sample(ChannelLand, x, y) > LandThreshold
}

// Contains reports whether a point lies strictly inside the open interior
// used by road growth: (0, W-1] x (0, H-1].
func (f *Field) Contains(x, y float64) bool {
	return x > 0 && x <= float64(f.W-1) && y > 0 && y <= float64(f.H-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
