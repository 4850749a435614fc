// Package city runs the full generation pipeline (terrain, highways, blocks,
// streets, buildings) and exposes the result to the preview and CLI shells.
package city

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"citygen/internal/buildings"
	"citygen/internal/core"
	"citygen/internal/noise"
	"citygen/internal/raster"
	"citygen/internal/roads"
)

// Stage names, in pipeline order.
const (
	StageTerrain      = "terrain"
	StageHighway      = "highway"
	StageCarveHighway = "carve_highway"
	StagePartition    = "partition"
	StageStreets      = "streets"
	StageCarveStreets = "carve_streets"
	StageBuildings    = "buildings"
)

// StageTiming records how long one pipeline stage took.
type StageTiming struct {
	Stage   string
	Elapsed time.Duration
}

// Layout is the complete output of one generation run.
type Layout struct {
	Config Config

	Field *core.Field
	// Mask is the buildable mask after both carving passes.
	Mask *core.Mask

	Highway           roads.Network
	HighwayIterations int
	HighwayState      roads.State

	Blocks    []raster.Block
	Streets   []roads.Street
	Buildings []buildings.Building

	Timings []StageTiming
}

// Generate builds a layout from cfg. Stages run strictly in order; only the
// street stage fans out, and its output does not depend on cfg.Workers.
func Generate(ctx context.Context, cfg Config, log logrus.FieldLogger) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("seed", cfg.Seed)
	l := &Layout{Config: cfg}
	seed := float64(cfg.Seed)
	res := cfg.Resolution

	start := time.Now()
	l.Field = noise.Terrain(res, res, cfg.Seed, cfg.SeaLevel, cfg.Octaves)
	l.track(log, StageTerrain, start, logrus.Fields{"res": res})

	start = time.Now()
	hw := roads.NewHighway(l.Field, roads.HighwayConfig{
		Length:       cfg.HighwayLength,
		Angle:        cfg.HighwayAngle,
		SegmentCount: 5,
		RayCount:     5,
		RaySamples:   5,
		StopDensity:  cfg.StopDensity,
	})
	l.HighwayIterations = hw.Process(seed, cfg.HighwayIterations)
	l.Highway = hw.Network()
	l.HighwayState = hw.State()
	l.track(log, StageHighway, start, logrus.Fields{
		"segments":   len(l.Highway.Segments),
		"crossings":  len(l.Highway.Crossings),
		"iterations": l.HighwayIterations,
		"state":      l.HighwayState,
	})

	start = time.Now()
	rast := raster.New(l.Field)
	rast.Carve(l.Highway.Segments, cfg.HighwayThickness*float64(res))
	l.track(log, StageCarveHighway, start, logrus.Fields{"buildable": rast.Mask().Count()})

	start = time.Now()
	l.Blocks = rast.Partition()
	raster.Label(l.Field, l.Blocks)
	l.track(log, StagePartition, start, logrus.Fields{"blocks": len(l.Blocks)})

	start = time.Now()
	streets, err := roads.GrowStreets(ctx, l.Field, l.Highway, l.Blocks, roads.StreetsConfig{
		BlockWidth:  cfg.BlockWidth,
		BlockHeight: cfg.BlockHeight,
		Iterations:  cfg.StreetIterations,
		SampleCount: cfg.SampleCount,
		Workers:     cfg.Workers,
	}, seed)
	if err != nil {
		return nil, err
	}
	l.Streets = streets
	l.track(log, StageStreets, start, logrus.Fields{
		"streets":  len(l.Streets),
		"segments": len(roads.StreetSegments(l.Streets)),
		"workers":  cfg.Workers,
	})

	start = time.Now()
	for _, s := range l.Streets {
		rast.Carve(s.Network.Segments, cfg.StreetThickness*float64(res))
	}
	l.Mask = rast.Mask()
	l.track(log, StageCarveStreets, start, logrus.Fields{"buildable": l.Mask.Count()})

	start = time.Now()
	bcfg := buildings.DefaultConfig()
	bcfg.GridSize = cfg.BuildingGrid
	bcfg.MaxBuildings = cfg.MaxBuildings
	l.Buildings = buildings.Place(l.Field, l.Mask, bcfg, seed)
	l.track(log, StageBuildings, start, logrus.Fields{"buildings": len(l.Buildings)})

	return l, nil
}

func (l *Layout) track(log logrus.FieldLogger, stage string, start time.Time, fields logrus.Fields) {
	elapsed := time.Since(start)
	l.Timings = append(l.Timings, StageTiming{Stage: stage, Elapsed: elapsed})
	log.WithFields(fields).WithFields(logrus.Fields{
		"stage":   stage,
		"elapsed": elapsed,
	}).Debug("stage complete")
}

// Elapsed sums the stage timings.
func (l *Layout) Elapsed() time.Duration {
	var d time.Duration
	for _, t := range l.Timings {
		d += t.Elapsed
	}
	return d
}
