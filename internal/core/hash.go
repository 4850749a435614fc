package core

import "math"

// All randomness in the generator is derived from these pure hash functions
// so that a layout is a function of its seed and parameters only.

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// unit maps the top 53 bits of h to [0,1).
func unit(h uint64) float64 {
	return float64(h>>11) * (1.0 / (1 << 53))
}

// Mix combines a seed with an integer salt into a new seed.
func Mix(seed uint64, salt int) uint64 {
	return splitmix64(seed ^ splitmix64(uint64(int64(salt))))
}

// Hash2D returns a deterministic 64-bit hash for (x,y) under the given seed.
func Hash2D(seed uint64, x, y int) uint64 {
	ux := uint64(uint32(x))
	uy := uint64(uint32(y))
	h := seed
	h ^= ux * 0x9E3779B185EBCA87
	h ^= uy * 0xC2B2AE3D27D4EB4F
	return splitmix64(h)
}

// Jitter returns two independent values in [0,1) for the integer cell (x,y).
func Jitter(seed uint64, x, y int) (float64, float64) {
	h := Hash2D(seed, x, y)
	return unit(h), unit(splitmix64(h))
}

// bits folds -0 into +0 so both hash identically.
func bits(x float64) uint64 { return math.Float64bits(x + 0) }

// Hash1 maps a real number to [0,1).
func Hash1(x float64) float64 {
	return unit(splitmix64(bits(x)))
}

// Hash2to1 maps a pair of real numbers to [0,1).
func Hash2to1(x, y float64) float64 {
	h := splitmix64(bits(x))
	return unit(splitmix64(h ^ bits(y)*0xC2B2AE3D27D4EB4F))
}

// Hash2 maps a pair of real numbers to two independent values in [0,1).
func Hash2(x, y float64) (float64, float64) {
	h := splitmix64(bits(x))
	h = splitmix64(h ^ bits(y)*0xC2B2AE3D27D4EB4F)
	return unit(h), unit(splitmix64(h))
}

// Smoothstep is the Hermite interpolation between edge0 and edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := math.Min(1, math.Max(0, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}

// Bias remaps t in [0,1] so that Bias(b, 0.5) == b.
func Bias(b, t float64) float64 {
	return math.Pow(t, math.Log(b)/math.Log(0.5))
}

// Chain is a deterministic sequence of values in [0,1) produced by repeatedly
// hashing the previous value.
type Chain struct {
	v float64
}

// NewChain starts a chain from the given seed.
func NewChain(seed float64) *Chain {
	return &Chain{v: Hash1(seed)}
}

// Value returns the current value without advancing.
func (c *Chain) Value() float64 { return c.v }

// Next advances the chain and returns the new value.
func (c *Chain) Next() float64 {
	c.v = Hash1(c.v)
	return c.v
}

// Intn returns the next value scaled to [0, n).
func (c *Chain) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(c.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
