package city

import (
	"context"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"citygen/internal/core"
	"citygen/internal/roads"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Resolution = 64
	cfg.Seed = 1
	cfg.SeaLevel = 0.5
	cfg.HighwayLength = 50
	cfg.HighwayAngle = 90
	cfg.HighwayIterations = 200
	cfg.StreetIterations = 200
	cfg.Workers = 2
	return cfg
}

func TestFromMapOverridesDefaults(t *testing.T) {
	cfg := FromMap(map[string]string{
		"res":            "128",
		"seed":           "-7",
		"sea_level":      "0.35",
		"highway_length": "80",
		"workers":        "3",
		"octaves":        "nope",
	})
	if cfg.Resolution != 128 || cfg.Seed != -7 || cfg.SeaLevel != 0.35 || cfg.HighwayLength != 80 || cfg.Workers != 3 {
		t.Fatalf("overrides not applied: %s", spew.Sdump(cfg))
	}
	if cfg.Octaves != DefaultConfig().Octaves {
		t.Fatalf("unparseable value should keep default, got %d", cfg.Octaves)
	}
	if got := FromMap(nil); got.Resolution != 512 || got.Seed != 52 {
		t.Fatalf("nil map should yield defaults: %s", spew.Sdump(got))
	}
}

func TestValidateRejectsBadInput(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	bad := []func(*Config){
		func(c *Config) { c.Resolution = 4 },
		func(c *Config) { c.SeaLevel = 1.5 },
		func(c *Config) { c.HighwayLength = 0 },
		func(c *Config) { c.BlockHeight = -1 },
		func(c *Config) { c.Workers = 0 },
		func(c *Config) { c.SampleCount = 0 },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
		if _, err := Generate(context.Background(), cfg, quietLogger()); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: Generate should refuse invalid config, got %v", i, err)
		}
	}
}

func TestEndToEndScenario(t *testing.T) {
	l, err := Generate(context.Background(), smallConfig(), quietLogger())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(l.Highway.Segments) == 0 {
		t.Fatal("expected at least one highway segment")
	}
	if len(l.Blocks) == 0 {
		t.Fatal("expected at least one block")
	}
	for _, b := range l.Buildings {
		if len(b.Floors) < 1 {
			t.Fatalf("building %d has no floors", b.ID)
		}
		for _, f := range b.Floors {
			for _, ring := range f.Rings {
				for _, v := range ring {
					if v[0] < b.Bound.Min[0]-1e-9 || v[0] > b.Bound.Max[0]+1e-9 ||
						v[1] < b.Bound.Min[1]-1e-9 || v[1] > b.Bound.Max[1]+1e-9 {
						t.Fatalf("building %d vertex %v outside %s", b.ID, v, spew.Sdump(b.Bound))
					}
				}
			}
		}
	}
	if len(l.Timings) != 7 || l.Timings[0].Stage != StageTerrain || l.Timings[6].Stage != StageBuildings {
		t.Fatalf("unexpected stage timings: %s", spew.Sdump(l.Timings))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := smallConfig()
	a, err := Generate(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	cfg.Workers = 1
	b, err := Generate(context.Background(), cfg, quietLogger())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for ch := core.ChannelLand; ch <= core.ChannelElevation; ch++ {
		if !slices.Equal(a.Field.Layer(ch), b.Field.Layer(ch)) {
			t.Fatalf("channel %d differs", ch)
		}
	}
	if !slices.Equal(a.Mask.Cells(), b.Mask.Cells()) {
		t.Fatal("buildable masks differ")
	}
	if !slices.Equal(a.Highway.Segments, b.Highway.Segments) {
		t.Fatal("highways differ")
	}
	if !slices.Equal(roads.StreetSegments(a.Streets), roads.StreetSegments(b.Streets)) {
		t.Fatal("streets differ between worker counts")
	}
	if len(a.Buildings) != len(b.Buildings) {
		t.Fatalf("building counts differ: %d vs %d", len(a.Buildings), len(b.Buildings))
	}
	for i := range a.Buildings {
		if a.Buildings[i].Position != b.Buildings[i].Position || a.Buildings[i].Height != b.Buildings[i].Height {
			t.Fatalf("building %d differs", i)
		}
	}
}

func TestMaskOnlyClearsLand(t *testing.T) {
	l, err := Generate(context.Background(), smallConfig(), quietLogger())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	land := l.Field.Layer(core.ChannelLand)
	for i, c := range l.Mask.Cells() {
		if c != 0 && land[i] <= core.LandThreshold {
			t.Fatalf("cell %d buildable but not land", i)
		}
	}
}

func TestExports(t *testing.T) {
	l, err := Generate(context.Background(), smallConfig(), quietLogger())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	fe := l.ExportField()
	if fe.W != 64 || len(fe.Land) != 64*64 || len(fe.BlockColor) != 64*64 {
		t.Fatalf("unexpected field export size %dx%d", fe.W, fe.H)
	}
	re := l.ExportRoads()
	if len(re.Highway) != len(l.Highway.Segments) {
		t.Fatal("highway export count mismatch")
	}
	for _, s := range append(re.Highway, re.Streets...) {
		for _, p := range []float64{s.Start[0], s.Start[1], s.End[0], s.End[1]} {
			if p < -0.5-1e-9 || p > 0.5+1e-9 {
				t.Fatalf("exported coordinate %f out of range", p)
			}
		}
	}
	be := l.ExportBuildings()
	if len(be) != len(l.Buildings) {
		t.Fatal("building export count mismatch")
	}
	for _, b := range be {
		if len(b.Floors) == 0 || b.Floors[len(b.Floors)-1].Cap == nil {
			t.Fatalf("building %d export lacks a roof", b.ID)
		}
	}
}

func TestDisplayCodesWithinPalette(t *testing.T) {
	l, err := Generate(context.Background(), smallConfig(), quietLogger())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for v := ViewMap; v < viewCount; v++ {
		cells := l.Display(v)
		if len(cells) != 64*64 {
			t.Fatalf("view %s: expected %d cells, got %d", v, 64*64, len(cells))
		}
		pal := Palette(v)
		for _, c := range cells {
			if int(c) >= len(pal) {
				t.Fatalf("view %s: code %d outside palette", v, c)
			}
		}
	}
	kind, level := DecodeDisplay(EncodeDisplay(KindRoad, 2))
	if kind != KindRoad || level != displayShadeLevels-1 {
		t.Fatalf("shade should clamp, got kind %d level %d", kind, level)
	}
}

func TestCitySceneParameters(t *testing.T) {
	c := New(smallConfig(), quietLogger())
	if c.Name() != "city" || c.Size() != (core.Size{W: 64, H: 64}) {
		t.Fatalf("unexpected scene identity %s %v", c.Name(), c.Size())
	}
	if len(c.Cells()) != 64*64 {
		t.Fatal("display buffer not built")
	}
	if !c.SetParameter("highway_length", 40) {
		t.Fatal("highway_length should be settable")
	}
	if p, ok := c.Parameters().Lookup("highway_length"); !ok || p.Value != "40" {
		t.Fatalf("snapshot not refreshed: %+v", p)
	}
	if c.SetParameter("sea_level", 3) {
		t.Fatal("out-of-range sea level should be rejected")
	}
	if c.SetParameter("unknown", 1) {
		t.Fatal("unknown key should be rejected")
	}
	before := c.Layout()
	c.Reset(2)
	if c.Layout() == before || c.Config().Seed != 2 {
		t.Fatal("reset should rebuild from the new seed")
	}
	c.SetView(ViewBlocks)
	if c.View() != ViewBlocks || len(c.Palette()) != paletteSize {
		t.Fatal("view switch failed")
	}
	c.CycleView()
	if c.View() != ViewBlocks.Next() {
		t.Fatalf("cycle should advance past %s, got %s", ViewBlocks, c.View())
	}
	if lines := c.Summary(); len(lines) != 6 {
		t.Fatalf("unexpected summary %s", spew.Sdump(lines))
	}
}

func TestScenesRegistered(t *testing.T) {
	names := core.SceneNames()
	for _, want := range []string{"archipelago", "city"} {
		if !slices.Contains(names, want) {
			t.Fatalf("scene %q not registered: %v", want, names)
		}
	}
}
