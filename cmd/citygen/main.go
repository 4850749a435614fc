// Command citygen generates city layouts headlessly, sweeping a range of
// seeds across worker goroutines and optionally writing PNG previews and
// JSON exports for each.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"citygen/internal/city"
	"citygen/internal/render"
	"citygen/internal/roads"
)

type seedResult struct {
	seed      int64
	highway   int
	state     string
	blocks    int
	streets   int
	buildings int
	elapsed   time.Duration
}

func main() {
	seeds := flag.Int("seeds", 1, "number of consecutive seeds to generate")
	from := flag.Int64("from", 52, "first seed")
	workers := flag.Int("workers", runtime.NumCPU(), "number of seeds generated concurrently")
	configPath := flag.String("config", "", "config file (yaml, toml or json)")
	pngDir := flag.String("png", "", "directory for PNG previews")
	jsonDir := flag.String("json", "", "directory for JSON exports")
	pngScale := flag.Int("png-scale", 2, "PNG pixel scale")
	logLevel := flag.String("log-level", "info", "log level")
	logFile := flag.String("log-file", "", "also log to this rotating file")
	var sets setFlags
	flag.Var(&sets, "set", "config override key=value (repeatable)")
	flag.Parse()

	log, err := newLogger(*logLevel, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	settings, err := loadSettings(*configPath, sets)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	base := city.FromMap(settings)
	if err := base.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	for _, dir := range []string{*pngDir, *jsonDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.WithError(err).Fatal("create output dir")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.WithFields(logrus.Fields{
		"seeds":   *seeds,
		"from":    *from,
		"workers": *workers,
		"res":     base.Resolution,
	}).Info("sweeping seeds")

	results := make([]seedResult, *seeds)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, *workers))
	start := time.Now()
	for i := 0; i < *seeds; i++ {
		i := i
		g.Go(func() error {
			cfg := base
			cfg.Seed = *from + int64(i)
			l, err := city.Generate(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("seed %d: %w", cfg.Seed, err)
			}
			if *pngDir != "" {
				if err := writePNG(filepath.Join(*pngDir, fmt.Sprintf("city-%d.png", cfg.Seed)), l, *pngScale); err != nil {
					return err
				}
			}
			if *jsonDir != "" {
				if err := writeJSON(filepath.Join(*jsonDir, fmt.Sprintf("city-%d.json", cfg.Seed)), l); err != nil {
					return err
				}
			}
			results[i] = seedResult{
				seed:      cfg.Seed,
				highway:   len(l.Highway.Segments),
				state:     l.HighwayState.String(),
				blocks:    len(l.Blocks),
				streets:   len(l.Streets),
				buildings: len(l.Buildings),
				elapsed:   l.Elapsed(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("generation failed")
	}

	fmt.Printf("\n%d layouts (elapsed %s):\n", len(results), time.Since(start).Round(time.Millisecond))
	for _, r := range results {
		fmt.Printf("seed=%d highway=%d (%s) blocks=%d streets=%d buildings=%d took=%s\n",
			r.seed, r.highway, r.state, r.blocks, r.streets, r.buildings, r.elapsed.Round(time.Millisecond))
	}
}

var (
	highwayColor = color.RGBA{R: 250, G: 200, B: 70, A: 255}
	streetColor  = color.RGBA{R: 235, G: 235, B: 225, A: 255}
)

func writePNG(path string, l *city.Layout, scale int) error {
	res := l.Config.Resolution
	img := render.PaletteImage(l.Display(city.ViewMap), res, res, city.Palette(city.ViewMap))
	img = render.Upscale(img, scale)
	s := float64(max(1, scale))
	for _, st := range l.Streets {
		render.StrokeSegments(img, st.Network.Segments, 0.5, s, streetColor)
	}
	render.StrokeSegments(img, l.Highway.Segments, 1.5, s, highwayColor)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

type jsonExport struct {
	Seed      int64                 `json:"seed"`
	Field     city.FieldExport      `json:"field"`
	Roads     roads.Export          `json:"roads"`
	Buildings []city.BuildingExport `json:"buildings"`
}

func writeJSON(path string, l *city.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	err = enc.Encode(jsonExport{
		Seed:      l.Config.Seed,
		Field:     l.ExportField(),
		Roads:     l.ExportRoads(),
		Buildings: l.ExportBuildings(),
	})
	if err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
