package ui

import (
	"math"
	"testing"

	"citygen/internal/core"
)

func snapshot(params ...core.Parameter) core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{Name: "test", Params: params}}}
}

func TestRefreshControlsParsesValues(t *testing.T) {
	cs := []control{
		{ParameterControl: core.ParameterControl{Key: "res", Type: core.ParamTypeInt}},
		{ParameterControl: core.ParameterControl{Key: "sea_level", Type: core.ParamTypeFloat, Step: 0.05}},
		{ParameterControl: core.ParameterControl{Key: "missing", Type: core.ParamTypeFloat}},
		{ParameterControl: core.ParameterControl{Key: "broken", Type: core.ParamTypeFloat}},
	}
	refreshControls(cs, snapshot(
		core.Parameter{Key: "res", Value: "64"},
		core.Parameter{Key: "sea_level", Value: "0.5"},
		core.Parameter{Key: "broken", Value: "n/a"},
	))
	want := []string{"64", "0.50", "--", "--"}
	for i, c := range cs {
		if c.text() != want[i] {
			t.Fatalf("control %s: expected %q, got %q", c.Key, want[i], c.text())
		}
	}
}

func TestControlNextStepsAndClamps(t *testing.T) {
	sea := control{
		ParameterControl: core.ParameterControl{Key: "sea_level", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		value:            0.98,
		known:            true,
	}
	if v, ok := sea.next(1); !ok || v != 1 {
		t.Fatalf("expected clamp to 1, got %v %v", v, ok)
	}
	sea.value = 1
	if _, ok := sea.next(1); ok {
		t.Fatal("stepping past the max should be refused")
	}
	if v, ok := sea.next(-1); !ok || math.Abs(v-0.95) > 1e-12 {
		t.Fatalf("expected 0.95, got %v %v", v, ok)
	}

	iters := control{
		ParameterControl: core.ParameterControl{Key: "highway_iterations", Type: core.ParamTypeInt, Step: 100, Min: 0, HasMin: true},
		value:            50,
		known:            true,
	}
	if v, ok := iters.next(-1); !ok || v != 0 {
		t.Fatalf("expected clamp to 0, got %v %v", v, ok)
	}
	if v, ok := iters.next(1); !ok || v != 150 {
		t.Fatalf("expected 150, got %v %v", v, ok)
	}

	unknown := control{ParameterControl: core.ParameterControl{Type: core.ParamTypeFloat}}
	if _, ok := unknown.next(1); ok {
		t.Fatal("unknown values cannot be stepped")
	}
}

func TestDecimalsFollowStep(t *testing.T) {
	for _, c := range []struct {
		step float64
		want int
	}{{0.05, 2}, {0.25, 1}, {10, 0}, {2, 0}, {0.5, 1}, {0, 2}, {1e-9, 4}} {
		if got := decimals(c.step); got != c.want {
			t.Fatalf("decimals(%v) = %d, want %d", c.step, got, c.want)
		}
	}
}
