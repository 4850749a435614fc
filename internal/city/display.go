package city

import (
	"image/color"
	"math"

	"citygen/internal/core"
)

// View selects which channel shades the display.
type View uint8

const (
	ViewMap View = iota
	ViewPopulation
	ViewBlocks
	ViewElevation

	viewCount
)

func (v View) String() string {
	switch v {
	case ViewMap:
		return "map"
	case ViewPopulation:
		return "population"
	case ViewBlocks:
		return "blocks"
	case ViewElevation:
		return "elevation"
	}
	return "unknown"
}

// Next cycles through the views.
func (v View) Next() View { return (v + 1) % viewCount }

// Kind is what occupies a display cell.
type Kind uint8

const (
	KindWater Kind = iota
	KindLand
	KindRoad
	KindBuilding
)

const (
	displayKindMask    = 0x03
	displayShadeShift  = 2
	displayShadeLevels = 16
	paletteSize        = 1 << (displayShadeShift + 4)
)

var palettes = buildPalettes()

// EncodeDisplay packs a cell kind and a shade in [0,1] into a display code.
func EncodeDisplay(kind Kind, shade float64) uint8 {
	level := int(math.Floor(shade * displayShadeLevels))
	level = max(0, min(displayShadeLevels-1, level))
	return uint8(kind)&displayKindMask | uint8(level)<<displayShadeShift
}

// DecodeDisplay unpacks a display code.
func DecodeDisplay(code uint8) (Kind, int) {
	return Kind(code & displayKindMask), int(code >> displayShadeShift)
}

// Palette returns the colours for display codes under view v.
func Palette(v View) []color.RGBA {
	if v >= viewCount {
		v = ViewMap
	}
	return palettes[v]
}

func buildPalettes() [viewCount][]color.RGBA {
	var out [viewCount][]color.RGBA
	for v := View(0); v < viewCount; v++ {
		p := make([]color.RGBA, paletteSize)
		for i := range p {
			kind, level := DecodeDisplay(uint8(i))
			p[i] = toRGBA(paletteColorFor(v, kind, float64(level)/(displayShadeLevels-1)))
		}
		out[v] = p
	}
	return out
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func paletteColorFor(v View, kind Kind, t float64) color.NRGBA {
	switch kind {
	case KindRoad:
		return color.NRGBA{R: 40, G: 40, B: 44, A: 255}
	case KindBuilding:
		return blendColors(color.NRGBA{R: 150, G: 146, B: 140, A: 255}, color.NRGBA{R: 235, G: 225, B: 200, A: 255}, t)
	case KindWater:
		deep := color.NRGBA{R: 18, G: 40, B: 90, A: 255}
		shallow := color.NRGBA{R: 60, G: 120, B: 180, A: 255}
		return blendColors(deep, shallow, t)
	}
	switch v {
	case ViewPopulation:
		return blendColors(color.NRGBA{R: 30, G: 30, B: 60, A: 255}, color.NRGBA{R: 250, G: 170, B: 60, A: 255}, t)
	case ViewBlocks:
		return hueColor(t)
	case ViewElevation:
		return blendColors(color.NRGBA{R: 60, G: 90, B: 50, A: 255}, color.NRGBA{R: 230, G: 230, B: 220, A: 255}, t)
	default:
		return blendColors(color.NRGBA{R: 90, G: 130, B: 70, A: 255}, color.NRGBA{R: 200, G: 190, B: 150, A: 255}, t)
	}
}

// hueColor spreads t around the colour wheel at fixed saturation.
func hueColor(t float64) color.NRGBA {
	h := t * 6
	x := 1 - math.Abs(math.Mod(h, 2)-1)
	var r, g, b float64
	switch int(h) % 6 {
	case 0:
		r, g = 1, x
	case 1:
		r, g = x, 1
	case 2:
		g, b = 1, x
	case 3:
		g, b = x, 1
	case 4:
		r, b = x, 1
	default:
		r, b = 1, x
	}
	return color.NRGBA{R: uint8(60 + r*170), G: uint8(60 + g*170), B: uint8(60 + b*170), A: 255}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}

// Display encodes the layout into one code per cell under view v. Land cells
// cleared by road carving show as roads; building footprints are stamped on
// top.
func (l *Layout) Display(v View) []uint8 {
	f := l.Field
	land := f.Layer(core.ChannelLand)
	shadeCh := core.ChannelPopulation
	switch v {
	case ViewBlocks:
		shadeCh = core.ChannelBlock
	case ViewElevation:
		shadeCh = core.ChannelElevation
	}
	shade := f.Layer(shadeCh)
	elev := f.Layer(core.ChannelElevation)
	mask := l.Mask.Cells()

	out := make([]uint8, f.W*f.H)
	for i := range out {
		switch {
		case land[i] <= core.LandThreshold:
			out[i] = EncodeDisplay(KindWater, elev[i])
		case mask[i] == 0:
			out[i] = EncodeDisplay(KindRoad, 0)
		default:
			out[i] = EncodeDisplay(KindLand, shade[i])
		}
	}

	half := float64(l.Config.BuildingGrid) / 2
	for _, b := range l.Buildings {
		cx := (b.Position[0] + 0.5) * float64(f.W)
		cy := (b.Position[1] + 0.5) * float64(f.H)
		t := b.Height / (float64(l.Config.BuildingGrid) / float64(f.W) / 2) / 15
		for y := int(cy - half + 1); y < int(cy+half); y++ {
			for x := int(cx - half + 1); x < int(cx+half); x++ {
				if x < 0 || y < 0 || x >= f.W || y >= f.H {
					continue
				}
				out[f.Index(x, y)] = EncodeDisplay(KindBuilding, t)
			}
		}
	}
	return out
}
