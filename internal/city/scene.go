package city

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/sirupsen/logrus"

	"citygen/internal/core"
)

// City is the interactive scene: a config, the layout built from it and the
// display buffer for the current view.
type City struct {
	name    string
	cfg     Config
	layout  *Layout
	view    View
	display []uint8
	log     logrus.FieldLogger
}

// New builds a city from cfg. An invalid config falls back to the defaults
// with cfg's seed.
func New(cfg Config, log logrus.FieldLogger) *City {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Warn("using default config")
		seed := cfg.Seed
		cfg = DefaultConfig()
		cfg.Seed = seed
	}
	c := &City{name: "city", cfg: cfg, log: log}
	c.regenerate()
	return c
}

// Name returns the scene's registry name.
func (c *City) Name() string { return c.name }

// Size reports the grid dimensions.
func (c *City) Size() core.Size { return core.Size{W: c.cfg.Resolution, H: c.cfg.Resolution} }

// Reset rebuilds the whole layout from seed.
func (c *City) Reset(seed int64) {
	c.cfg.Seed = seed
	c.regenerate()
}

// Cells exposes the display buffer.
func (c *City) Cells() []uint8 { return c.display }

// Palette exposes the colours for the current view.
func (c *City) Palette() []color.RGBA { return Palette(c.view) }

// Layout returns the latest generation result.
func (c *City) Layout() *Layout { return c.layout }

// Config returns the inputs of the latest layout.
func (c *City) Config() Config { return c.cfg }

// View reports the current display view.
func (c *City) View() View { return c.view }

// SetView switches the display view without regenerating.
func (c *City) SetView(v View) {
	if v >= viewCount {
		v = ViewMap
	}
	c.view = v
	if c.layout != nil {
		c.display = c.layout.Display(v)
	}
}

// CycleView advances to the next display view.
func (c *City) CycleView() { c.SetView(c.view.Next()) }

// Summary describes the current layout in a few short lines.
func (c *City) Summary() []string {
	l := c.layout
	if l == nil {
		return []string{"no layout"}
	}
	return []string{
		fmt.Sprintf("view: %s", c.view),
		fmt.Sprintf("highway: %d segs, %s", len(l.Highway.Segments), l.HighwayState),
		fmt.Sprintf("blocks: %d", len(l.Blocks)),
		fmt.Sprintf("streets: %d", len(l.Streets)),
		fmt.Sprintf("buildings: %d", len(l.Buildings)),
		fmt.Sprintf("built in %s", l.Elapsed().Round(time.Millisecond)),
	}
}

func (c *City) regenerate() {
	l, err := Generate(context.Background(), c.cfg, c.log)
	if err != nil {
		c.log.WithError(err).Error("generation failed")
		return
	}
	c.layout = l
	c.display = l.Display(c.view)
	c.log.WithFields(logrus.Fields{
		"seed":      c.cfg.Seed,
		"highway":   len(l.Highway.Segments),
		"blocks":    len(l.Blocks),
		"streets":   len(l.Streets),
		"buildings": len(l.Buildings),
		"elapsed":   l.Elapsed(),
	}).Info("city generated")
}

func init() {
	core.Register("city", func(cfg map[string]string) core.Scene {
		return New(FromMap(cfg), nil)
	})
	// Higher sea level and shorter highways give scattered island towns.
	core.Register("archipelago", func(cfg map[string]string) core.Scene {
		base := map[string]string{
			"sea_level":      "0.65",
			"highway_length": "60",
			"block_width":    "12",
			"block_height":   "10",
		}
		for k, v := range cfg {
			base[k] = v
		}
		c := New(FromMap(base), nil)
		c.name = "archipelago"
		return c
	})
}
