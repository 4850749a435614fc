//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"citygen/internal/city"
	"citygen/internal/core"
	"citygen/internal/geom"
)

type layoutProvider interface {
	Layout() *city.Layout
}

// Overlay draws the road network and debugging visuals on top of the cell
// view.
type Overlay struct {
	scene core.Scene
	scale int

	showHighways  bool
	showStreets   bool
	showCrossings bool
	showRoots     bool
	showElev      bool

	elevationImg *ebiten.Image
	elevationBuf []byte
	elevationOf  *city.Layout
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(scene core.Scene, scale int) *Overlay {
	return &Overlay{scene: scene, scale: scale, showHighways: true, showStreets: true}
}

// Update toggles layers from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHighways = !o.showHighways
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showStreets = !o.showStreets
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showCrossings = !o.showCrossings
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit4) {
		o.showRoots = !o.showRoots
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit5) {
		o.showElev = !o.showElev
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.scene.(layoutProvider)
	if !ok {
		return
	}
	l := provider.Layout()
	if l == nil {
		return
	}
	scale := float64(o.scale)
	if scale <= 0 {
		scale = 1
	}

	if o.showElev {
		o.drawElevation(screen, l, scale)
	}
	if o.showStreets {
		for _, s := range l.Streets {
			o.drawSegments(screen, s.Network.Segments, scale, 1, color.RGBA{R: 235, G: 235, B: 225, A: 220})
		}
	}
	if o.showHighways {
		o.drawSegments(screen, l.Highway.Segments, scale, 2.5, color.RGBA{R: 250, G: 200, B: 70, A: 255})
	}
	if o.showCrossings {
		for _, c := range l.Highway.Crossings {
			vector.DrawFilledCircle(screen, float32(c[0]*scale), float32(c[1]*scale), 2.5, color.RGBA{R: 230, G: 60, B: 60, A: 255}, true)
		}
	}
	if o.showRoots {
		for _, s := range l.Streets {
			x, y := s.Root[0]*scale, s.Root[1]*scale
			reach := math.Min(s.Orientation.Forward, 12) * scale
			ax := s.Orientation.Axis[0] * reach
			ay := s.Orientation.Axis[1] * reach
			vector.StrokeLine(screen, float32(x), float32(y), float32(x+ax), float32(y+ay), 1.5, color.RGBA{R: 90, G: 220, B: 255, A: 255}, true)
			vector.DrawFilledCircle(screen, float32(x), float32(y), 2, color.RGBA{R: 90, G: 220, B: 255, A: 255}, true)
		}
	}
}

func (o *Overlay) drawSegments(screen *ebiten.Image, segs []geom.Segment, scale float64, width float32, col color.RGBA) {
	for _, s := range segs {
		vector.StrokeLine(screen,
			float32(s.Start[0]*scale), float32(s.Start[1]*scale),
			float32(s.End[0]*scale), float32(s.End[1]*scale),
			width, col, true)
	}
}

func (o *Overlay) drawElevation(screen *ebiten.Image, l *city.Layout, scale float64) {
	w, h := l.Field.W, l.Field.H
	total := w * h
	if o.elevationImg == nil || o.elevationImg.Bounds().Dx() != w || o.elevationImg.Bounds().Dy() != h {
		o.elevationImg = ebiten.NewImage(w, h)
		o.elevationBuf = make([]byte, 4*total)
		o.elevationOf = nil
	}
	if o.elevationOf != l {
		field := l.Field.Layer(core.ChannelElevation)
		for i := 0; i < total; i++ {
			col := elevationColor(field[i])
			base := i * 4
			o.elevationBuf[base+0] = col.R
			o.elevationBuf[base+1] = col.G
			o.elevationBuf[base+2] = col.B
			o.elevationBuf[base+3] = col.A
		}
		o.elevationImg.WritePixels(o.elevationBuf)
		o.elevationOf = l
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(o.elevationImg, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func elevationColor(t float64) color.RGBA {
	t = clamp01(t)
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 150}},
		{0.25, color.RGBA{R: 70, G: 105, B: 160, A: 165}},
		{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 185}},
		{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 205}},
		{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 215}},
	}
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, clamp01(local))
		}
	}
	return stops[len(stops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
