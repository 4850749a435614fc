package city

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
)

// ErrInvalidConfig is returned by Validate and Generate for unusable inputs.
var ErrInvalidConfig = errors.New("invalid city config")

// Config holds every input of a generation run. Two runs with equal configs
// produce identical layouts.
type Config struct {
	// Resolution is the side of the square terrain grid in cells.
	Resolution int
	Seed       int64

	SeaLevel float64
	Octaves  int

	HighwayLength float64
	HighwayAngle  float64
	// StopDensity ends a highway branch on sparsely populated ground.
	StopDensity       float64
	HighwayIterations int

	BlockWidth       float64
	BlockHeight      float64
	StreetIterations int
	SampleCount      int

	// Road thickness when carving, as a fraction of Resolution.
	HighwayThickness float64
	StreetThickness  float64

	BuildingGrid int
	MaxBuildings int

	// Workers bounds concurrent street growth. It does not affect output.
	Workers int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Resolution:        512,
		Seed:              52,
		SeaLevel:          0.5,
		Octaves:           4,
		HighwayLength:     100,
		HighwayAngle:      90,
		HighwayIterations: 1000,
		BlockWidth:        16,
		BlockHeight:       12,
		StreetIterations:  1000,
		SampleCount:       8,
		HighwayThickness:  0.008,
		StreetThickness:   0.0025,
		BuildingGrid:      5,
		MaxBuildings:      2000,
		Workers:           runtime.NumCPU(),
	}
}

// Keys lists the map keys understood by FromMap.
func Keys() []string {
	return []string{
		"res", "seed", "sea_level", "octaves",
		"highway_length", "highway_angle", "stop_density", "highway_iterations",
		"block_width", "block_height", "street_iterations", "samples",
		"highway_thickness", "street_thickness",
		"building_grid", "max_buildings", "workers",
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults; range checks are left to Validate.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	setInt(cfg, "res", &c.Resolution)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	setFloat(cfg, "sea_level", &c.SeaLevel)
	setInt(cfg, "octaves", &c.Octaves)
	setFloat(cfg, "highway_length", &c.HighwayLength)
	setFloat(cfg, "highway_angle", &c.HighwayAngle)
	setFloat(cfg, "stop_density", &c.StopDensity)
	setInt(cfg, "highway_iterations", &c.HighwayIterations)
	setFloat(cfg, "block_width", &c.BlockWidth)
	setFloat(cfg, "block_height", &c.BlockHeight)
	setInt(cfg, "street_iterations", &c.StreetIterations)
	setInt(cfg, "samples", &c.SampleCount)
	setFloat(cfg, "highway_thickness", &c.HighwayThickness)
	setFloat(cfg, "street_thickness", &c.StreetThickness)
	setInt(cfg, "building_grid", &c.BuildingGrid)
	setInt(cfg, "max_buildings", &c.MaxBuildings)
	setInt(cfg, "workers", &c.Workers)
	return c
}

func setInt(cfg map[string]string, key string, dst *int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setFloat(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Resolution < 8:
		return fmt.Errorf("%w: resolution %d below 8", ErrInvalidConfig, c.Resolution)
	case c.SeaLevel < 0 || c.SeaLevel > 1:
		return fmt.Errorf("%w: sea level %g outside [0,1]", ErrInvalidConfig, c.SeaLevel)
	case c.Octaves < 1:
		return fmt.Errorf("%w: octaves %d below 1", ErrInvalidConfig, c.Octaves)
	case c.HighwayLength <= 0:
		return fmt.Errorf("%w: highway length %g must be positive", ErrInvalidConfig, c.HighwayLength)
	case c.BlockWidth <= 0 || c.BlockHeight <= 0:
		return fmt.Errorf("%w: block size %gx%g must be positive", ErrInvalidConfig, c.BlockWidth, c.BlockHeight)
	case c.HighwayIterations < 0 || c.StreetIterations < 0:
		return fmt.Errorf("%w: negative iteration cap", ErrInvalidConfig)
	case c.SampleCount < 1:
		return fmt.Errorf("%w: samples %d below 1", ErrInvalidConfig, c.SampleCount)
	case c.HighwayThickness < 0 || c.StreetThickness < 0:
		return fmt.Errorf("%w: negative road thickness", ErrInvalidConfig)
	case c.BuildingGrid < 1:
		return fmt.Errorf("%w: building grid %d below 1", ErrInvalidConfig, c.BuildingGrid)
	case c.MaxBuildings < 0:
		return fmt.Errorf("%w: max buildings %d negative", ErrInvalidConfig, c.MaxBuildings)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d below 1", ErrInvalidConfig, c.Workers)
	}
	return nil
}
