package city

import (
	"strconv"

	"citygen/internal/core"
)

// Parameters returns the inputs of the current layout for display.
func (c *City) Parameters() core.ParameterSnapshot {
	cfg := c.cfg
	groups := []core.ParameterGroup{
		{
			Name: "Terrain",
			Params: []core.Parameter{
				intParam("res", "Resolution", cfg.Resolution),
				int64Param("seed", "Seed", cfg.Seed),
				floatParam("sea_level", "Sea level", cfg.SeaLevel),
				intParam("octaves", "Octaves", cfg.Octaves),
			},
		},
		{
			Name: "Highways",
			Params: []core.Parameter{
				floatParam("highway_length", "Highway length", cfg.HighwayLength),
				floatParam("highway_angle", "Highway angle", cfg.HighwayAngle),
				floatParam("stop_density", "Stop density", cfg.StopDensity),
				intParam("highway_iterations", "Highway iterations", cfg.HighwayIterations),
				floatParam("highway_thickness", "Highway thickness", cfg.HighwayThickness),
			},
		},
		{
			Name: "Streets",
			Params: []core.Parameter{
				floatParam("block_width", "Block width", cfg.BlockWidth),
				floatParam("block_height", "Block height", cfg.BlockHeight),
				intParam("street_iterations", "Street iterations", cfg.StreetIterations),
				intParam("samples", "Direction samples", cfg.SampleCount),
				floatParam("street_thickness", "Street thickness", cfg.StreetThickness),
			},
		},
		{
			Name: "Buildings",
			Params: []core.Parameter{
				intParam("building_grid", "Building grid", cfg.BuildingGrid),
				intParam("max_buildings", "Max buildings", cfg.MaxBuildings),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the inputs adjustable from the HUD.
func (c *City) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "sea_level", Label: "Sea level", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "highway_length", Label: "Highway length", Type: core.ParamTypeFloat, Step: 10, Min: 10, HasMin: true},
		{Key: "highway_angle", Label: "Highway angle", Type: core.ParamTypeFloat, Step: 10, Min: 0, Max: 360, HasMin: true, HasMax: true},
		{Key: "highway_iterations", Label: "Highway iterations", Type: core.ParamTypeInt, Step: 100, Min: 0, HasMin: true},
		{Key: "block_width", Label: "Block width", Type: core.ParamTypeFloat, Step: 2, Min: 2, HasMin: true},
		{Key: "block_height", Label: "Block height", Type: core.ParamTypeFloat, Step: 2, Min: 2, HasMin: true},
		{Key: "max_buildings", Label: "Max buildings", Type: core.ParamTypeInt, Step: 250, Min: 0, HasMin: true},
	}
}

// SetParameter updates one input and regenerates the layout. Unknown keys and
// values rejected by Validate leave the city unchanged.
func (c *City) SetParameter(key string, value float64) bool {
	next := c.cfg
	switch key {
	case "sea_level":
		next.SeaLevel = value
	case "highway_length":
		next.HighwayLength = value
	case "highway_angle":
		next.HighwayAngle = value
	case "stop_density":
		next.StopDensity = value
	case "highway_iterations":
		next.HighwayIterations = int(value)
	case "block_width":
		next.BlockWidth = value
	case "block_height":
		next.BlockHeight = value
	case "street_iterations":
		next.StreetIterations = int(value)
	case "max_buildings":
		next.MaxBuildings = int(value)
	default:
		return false
	}
	if err := next.Validate(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("parameter rejected")
		return false
	}
	c.cfg = next
	c.regenerate()
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
