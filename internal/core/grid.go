package core

import "image"

// Mask stores a 2D occupancy grid of byte-sized cell values in row-major
// order. A non-zero cell is buildable.
type Mask struct {
	W, H int
	data []uint8
}

// NewMask allocates a mask with the given dimensions.
func NewMask(w, h int) *Mask {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Mask{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (m *Mask) Cells() []uint8 { return m.data }

// Index returns the linear slice index for coordinates (x, y).
func (m *Mask) Index(x, y int) int { return y*m.W + x }

// InBounds reports whether (x, y) addresses a cell.
func (m *Mask) InBounds(x, y int) bool {
	return x >= 0 && x < m.W && y >= 0 && y < m.H
}

// Get reports whether the cell at (x, y) is set. Out of range cells are unset.
func (m *Mask) Get(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.data[m.Index(x, y)] != 0
}

// Set writes the cell at (x, y). Out of range writes are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if !m.InBounds(x, y) {
		return
	}
	if v {
		m.data[m.Index(x, y)] = 1
		return
	}
	m.data[m.Index(x, y)] = 0
}

// Count returns the number of set cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	out := &Mask{W: m.W, H: m.H, data: make([]uint8, len(m.data))}
	copy(out.data, m.data)
	return out
}

// Bounds returns the grid extent as a rectangle.
func (m *Mask) Bounds() image.Rectangle { return image.Rect(0, 0, m.W, m.H) }
