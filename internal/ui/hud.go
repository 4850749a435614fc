//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"citygen/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type summaryProvider interface {
	Summary() []string
}

const (
	panelPadding   = 12
	rowHeight      = 32
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 20
	summarySpacing = 16
	controlsTop    = panelPadding + headerBaseline + 14
)

var (
	panelColor   = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor   = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor   = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonColor  = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	disabledFill = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

// HUD is the parameter panel drawn to the right of the map. Clicking a
// control's -/+ button regenerates the scene with the stepped value.
type HUD struct {
	scene    core.Scene
	setter   core.ParameterSetter
	width    int
	controls []control
	offsetX  int
	panel    *ebiten.Image
}

// NewHUD constructs a HUD for scene with a panel width in pixels.
func NewHUD(scene core.Scene, width int) *HUD {
	h := &HUD{scene: scene, width: max(0, width), controls: newControls(scene)}
	h.setter, _ = scene.(core.ParameterSetter)
	return h
}

// Update refreshes control values and handles clicks. offsetX is the panel's
// left edge in screen pixels.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	if p, ok := h.scene.(parameterProvider); ok {
		refreshControls(h.controls, p.Parameters())
	}
	if h.setter == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.controls {
		minus, plus := h.buttons(i)
		switch {
		case pt.In(minus):
			h.adjust(i, -1)
			return
		case pt.In(plus):
			h.adjust(i, 1)
			return
		}
	}
}

func (h *HUD) adjust(i, direction int) {
	c := &h.controls[i]
	if v, ok := c.next(direction); ok && h.setter.SetParameter(c.Key, v) {
		c.value = v
	}
}

// buttons returns the minus and plus rectangles of row i in panel space.
func (h *HUD) buttons(i int) (image.Rectangle, image.Rectangle) {
	y := controlsTop + i*rowHeight + (rowHeight-buttonSize)/2
	x := h.width - panelPadding - buttonSize
	plus := image.Rect(x, y, x+buttonSize, y+buttonSize)
	return plus.Sub(image.Pt(buttonSize+buttonGap, 0)), plus
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width == 0 {
		return
	}
	height := h.scene.Size().H * max(1, scale)
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.scene.Name()+" parameters", face, panelPadding, panelPadding+headerBaseline, titleColor)
	for i, c := range h.controls {
		top := controlsTop + i*rowHeight
		text.Draw(h.panel, c.Label, face, panelPadding, top+labelBaseline, labelColor)
		minus, plus := h.buttons(i)
		value := c.text()
		col := labelColor
		if !c.known {
			col = mutedColor
		}
		w := text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, minus.Min.X-buttonGap-w, top+labelBaseline, col)
		h.drawButton(minus, "-", h.canStep(c, -1))
		h.drawButton(plus, "+", h.canStep(c, 1))
	}
	if p, ok := h.scene.(summaryProvider); ok {
		top := controlsTop + len(h.controls)*rowHeight + rowHeight
		for i, line := range p.Summary() {
			text.Draw(h.panel, line, face, panelPadding, top+i*summarySpacing, mutedColor)
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) canStep(c control, direction int) bool {
	_, ok := c.next(direction)
	return ok && h.setter != nil
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	fill, fg := buttonColor, labelColor
	if !enabled {
		fill, fg = disabledFill, mutedColor
	}
	vector.DrawFilledRect(h.panel, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)
	b := text.BoundString(basicfont.Face7x13, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()+b.Dy())/2
	text.Draw(h.panel, label, basicfont.Face7x13, x, y, fg)
}
