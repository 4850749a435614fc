package ui

import (
	"math"
	"strconv"

	"citygen/internal/core"
)

// control is one adjustable parameter with the value last reported by the
// scene.
type control struct {
	core.ParameterControl
	value float64
	known bool
}

func newControls(scene core.Scene) []control {
	provider, ok := scene.(core.ParameterControlsProvider)
	if !ok {
		return nil
	}
	var cs []control
	for _, pc := range provider.ParameterControls() {
		cs = append(cs, control{ParameterControl: pc})
	}
	return cs
}

// refreshControls copies current values out of snap. Controls missing from
// the snapshot or with unparsable values are marked unknown.
func refreshControls(cs []control, snap core.ParameterSnapshot) {
	for i := range cs {
		c := &cs[i]
		c.known = false
		p, ok := snap.Lookup(c.Key)
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			continue
		}
		c.value, c.known = v, true
	}
}

// next steps the control one notch in direction, clamped to its bounds. It
// reports false when the value would not change.
func (c control) next(direction int) (float64, bool) {
	if !c.known || direction == 0 {
		return 0, false
	}
	step := c.Step
	switch c.Type {
	case core.ParamTypeInt:
		step = math.Max(1, math.Round(step))
	case core.ParamTypeFloat:
		if step <= 0 {
			step = 0.05
		}
	default:
		return 0, false
	}
	v := c.Clamp(c.value + float64(direction)*step)
	if c.Type == core.ParamTypeInt {
		v = math.Round(v)
	}
	if math.Abs(v-c.value) < 1e-9 {
		return 0, false
	}
	return v, true
}

// text formats the value with as many decimals as the step needs.
func (c control) text() string {
	if !c.known {
		return "--"
	}
	if c.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(c.value)))
	}
	return strconv.FormatFloat(c.value, 'f', decimals(c.Step), 64)
}

func decimals(step float64) int {
	if step <= 0 {
		return 2
	}
	return min(4, max(0, int(math.Ceil(-math.Log10(step)))))
}
