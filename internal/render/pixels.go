// Package render turns layouts into pixels: palette-coded cell buffers into
// RGBA images and road segments into anti-aliased strokes.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"citygen/internal/core"
	"citygen/internal/geom"
)

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// PaletteImage renders a w x h display buffer.
func PaletteImage(cells []uint8, w, h int, palette []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillPaletteRGBA(img.Pix, cells[:min(len(cells), w*h)], palette)
	return img
}

// MaskImage renders a buildable mask, on for buildable cells.
func MaskImage(m *core.Mask, on, off color.Color) *image.RGBA {
	img := image.NewRGBA(m.Bounds())
	fillBinaryRGBA(img.Pix, m.Cells(), on, off)
	return img
}

// Upscale returns img enlarged by an integer factor with nearest sampling.
func Upscale(img *image.RGBA, scale int) *image.RGBA {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < out.Bounds().Dy(); y++ {
		for x := 0; x < out.Bounds().Dx(); x++ {
			si := img.PixOffset(b.Min.X+x/scale, b.Min.Y+y/scale)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+4], img.Pix[si:si+4])
		}
	}
	return out
}

// StrokeSegments draws each segment onto dst as a quad of the given width.
// Coordinates are in grid cells and multiplied by scale.
func StrokeSegments(dst draw.Image, segs []geom.Segment, width, scale float64, col color.Color) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	drawn := false
	for _, s := range segs {
		if s.Length() == 0 {
			continue
		}
		n := geom.Scale(geom.Perp(s.Direction()), width/2)
		corners := [4][2]float64{
			{s.Start[0] + n[0], s.Start[1] + n[1]},
			{s.End[0] + n[0], s.End[1] + n[1]},
			{s.End[0] - n[0], s.End[1] - n[1]},
			{s.Start[0] - n[0], s.Start[1] - n[1]},
		}
		z.MoveTo(float32(corners[0][0]*scale), float32(corners[0][1]*scale))
		for _, c := range corners[1:] {
			z.LineTo(float32(c[0]*scale), float32(c[1]*scale))
		}
		z.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}
	z.Draw(dst, b, image.NewUniform(col), image.Point{})
}
