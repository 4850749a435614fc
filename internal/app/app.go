//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"citygen/internal/core"
	"citygen/internal/render"
	"citygen/internal/ui"
)

// hudWidth is the width of the parameter panel in screen pixels.
const hudWidth = 280

type paletteProvider interface {
	Palette() []color.RGBA
}

type viewCycler interface {
	CycleView()
}

// Game adapts a scene to the ebiten.Game interface. Scenes are static until
// reset or re-parameterized, so Update only handles input.
type Game struct {
	scene   core.Scene
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale int
	seed  int64
}

// New constructs a Game for the provided scene.
func New(scene core.Scene, scale int, seed int64) *Game {
	size := scene.Size()
	return &Game{
		scene:   scene,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(scene, scale),
		hud:     ui.NewHUD(scene, hudWidth),
		scale:   scale,
		seed:    seed,
	}
}

// Reset regenerates the scene from the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.scene.Reset(seed)
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		if c, ok := g.scene.(viewCycler); ok {
			c.CycleView()
		}
	}

	g.overlay.Update()
	g.hud.Update(g.mapWidth())
	size := g.scene.Size()
	g.painter.Resize(size.W, size.H)
	return nil
}

// Draw renders the current layout.
func (g *Game) Draw(screen *ebiten.Image) {
	var palette []color.RGBA
	if p, ok := g.scene.(paletteProvider); ok {
		palette = p.Palette()
	}
	g.painter.Blit(screen, g.scene.Cells(), palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.mapWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.scene.Size()
	return s.W*g.scale + hudWidth, s.H * g.scale
}

func (g *Game) mapWidth() int { return g.scene.Size().W * g.scale }
