package core

import (
	"math"
	"slices"
	"sort"
	"testing"
)

func TestMaskSetGetCount(t *testing.T) {
	m := NewMask(4, 3)
	m.Set(1, 2, true)
	m.Set(3, 0, true)
	m.Set(9, 9, true)
	if !m.Get(1, 2) || !m.Get(3, 0) {
		t.Fatalf("expected set cells to read back")
	}
	if m.Get(-1, 0) || m.Get(4, 0) {
		t.Fatalf("out of range cells must read unset")
	}
	if m.Count() != 2 {
		t.Fatalf("expected 2 set cells, got %d", m.Count())
	}
	c := m.Clone()
	c.Set(1, 2, false)
	if !m.Get(1, 2) {
		t.Fatalf("clone must not share storage")
	}
}

func TestFieldSampleInterpolatesAndClamps(t *testing.T) {
	f := NewField(2, 2)
	land := f.Layer(ChannelLand)
	land[f.Index(1, 0)] = 1
	land[f.Index(1, 1)] = 1

	cases := []struct {
		x, y, want float64
	}{
		{0.5, 0, 0.5},
		{1, 1, 1},
		{0, 0, 0},
		{0.25, 0.75, 0.25},
		{5, 5, 1},
		{-3, 0, 0},
	}
	for _, c := range cases {
		if got := f.Sample(ChannelLand, c.x, c.y); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("Sample(%v,%v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
	if f.IsLand(0.5, 0) {
		t.Fatalf("half-land sample must not count as land")
	}
	if !f.IsLand(1, 1) {
		t.Fatalf("expected full land sample at (1,1)")
	}
}

func TestFieldContainsOpenInterior(t *testing.T) {
	f := NewField(10, 10)
	if f.Contains(0, 5) || f.Contains(5, 0) {
		t.Fatalf("left and top edges are outside")
	}
	if !f.Contains(9, 9) || !f.Contains(0.1, 0.1) {
		t.Fatalf("interior and far edge are inside")
	}
	if f.Contains(9.01, 5) {
		t.Fatalf("points past W-1 are outside")
	}
}

func TestHashesDeterministicAndInRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		x := float64(i)*0.37 - 40
		a := Hash1(x)
		if a < 0 || a >= 1 {
			t.Fatalf("Hash1(%v) out of range: %v", x, a)
		}
		if a != Hash1(x) {
			t.Fatalf("Hash1 not deterministic at %v", x)
		}
		u, v := Hash2(x, -x)
		if u < 0 || u >= 1 || v < 0 || v >= 1 {
			t.Fatalf("Hash2(%v) out of range: %v %v", x, u, v)
		}
		if h := Hash2to1(x, 3); h < 0 || h >= 1 {
			t.Fatalf("Hash2to1(%v) out of range: %v", x, h)
		}
	}
	if Hash1(0) != Hash1(math.Copysign(0, -1)) {
		t.Fatalf("negative zero must hash like zero")
	}
	if Hash2to1(1, 2) == Hash2to1(2, 1) {
		t.Fatalf("Hash2to1 should depend on argument order")
	}
}

func TestJitterVariesByCell(t *testing.T) {
	ax, ay := Jitter(7, 3, 4)
	bx, by := Jitter(7, 4, 3)
	if ax == bx && ay == by {
		t.Fatalf("expected different jitter for swapped cells")
	}
	cx, cy := Jitter(Mix(7, 1), 3, 4)
	if ax == cx && ay == cy {
		t.Fatalf("expected salted seed to change jitter")
	}
}

func TestChainRepeatsAndStaysInBounds(t *testing.T) {
	a := NewChain(12.5)
	b := NewChain(12.5)
	var seqA, seqB []int
	for i := 0; i < 200; i++ {
		seqA = append(seqA, a.Intn(7))
		seqB = append(seqB, b.Intn(7))
	}
	if !slices.Equal(seqA, seqB) {
		t.Fatalf("chains from the same seed diverged")
	}
	for _, v := range seqA {
		if v < 0 || v >= 7 {
			t.Fatalf("Intn out of range: %d", v)
		}
	}
	if a.Intn(0) != 0 {
		t.Fatalf("Intn(0) should return 0")
	}
}

func TestChainValueTracksNext(t *testing.T) {
	c := NewChain(3)
	v := c.Value()
	if v != Hash1(3) {
		t.Fatalf("chain should start at Hash1(seed), got %v", v)
	}
	if c.Value() != v {
		t.Fatalf("Value must not advance the chain")
	}
	n := c.Next()
	if n != Hash1(v) || c.Value() != n {
		t.Fatalf("Next should rehash the current value: %v -> %v (value %v)", v, n, c.Value())
	}
}

func TestSmoothstepAndBias(t *testing.T) {
	if Smoothstep(0, 1, -1) != 0 || Smoothstep(0, 1, 2) != 1 {
		t.Fatalf("smoothstep must clamp")
	}
	if got := Smoothstep(0, 1, 0.5); got != 0.5 {
		t.Fatalf("smoothstep midpoint = %v", got)
	}
	if got := Bias(0.3, 0.5); math.Abs(got-0.3) > 1e-12 {
		t.Fatalf("Bias(0.3, 0.5) = %v", got)
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 1, Max: 4, HasMin: true, HasMax: true}
	if c.Clamp(0) != 1 || c.Clamp(9) != 4 || c.Clamp(2.5) != 2.5 {
		t.Fatalf("unexpected clamp results")
	}
	open := ParameterControl{HasMin: true}
	if open.Clamp(100) != 100 {
		t.Fatalf("missing max must not clamp")
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{{Key: "res", Value: "64"}}},
		{Name: "b", Params: []Parameter{{Key: "seed", Value: "3"}}},
	}}
	p, ok := s.Lookup("seed")
	if !ok || p.Value != "3" {
		t.Fatalf("expected seed lookup, got %+v %v", p, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Fatalf("unexpected lookup hit")
	}
}

type stubScene struct{}

func (stubScene) Name() string   { return "stub" }
func (stubScene) Size() Size     { return Size{W: 1, H: 1} }
func (stubScene) Reset(int64)    {}
func (stubScene) Cells() []uint8 { return []uint8{0} }

func TestRegistryIgnoresInvalidEntries(t *testing.T) {
	before := len(Scenes())
	Register("", func(map[string]string) Scene { return stubScene{} })
	Register("nil-factory", nil)
	if len(Scenes()) != before {
		t.Fatalf("invalid registrations must be ignored")
	}
	Register("core-test-stub", func(map[string]string) Scene { return stubScene{} })
	f, ok := Scenes()["core-test-stub"]
	if !ok || f(nil).Name() != "stub" {
		t.Fatalf("expected stub scene to be registered")
	}
	if !sort.StringsAreSorted(SceneNames()) {
		t.Fatalf("scene names must be sorted: %v", SceneNames())
	}
}
