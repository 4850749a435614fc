//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"citygen/internal/app"
	_ "citygen/internal/city"
	"citygen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Scenes()[cfg.Scene]
	if !ok {
		log.Fatalf("unknown preset %q (have %v)", cfg.Scene, core.SceneNames())
	}

	scene := factory(map[string]string{})
	scene.Reset(cfg.Seed)

	game := app.New(scene, cfg.Scale, cfg.Seed)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("citygen: " + scene.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
