package buildings

import (
	"github.com/paulmach/orb"

	"citygen/internal/geom"
)

// WallQuad is one side face of a floor. Corners run base-left, base-right,
// top-right, top-left; Z is elevation.
type WallQuad struct {
	Corners [4][3]float64
	Normal  orb.Point
	// U0 and U1 are the running perimeter distances at the quad's ends.
	U0, U1 float64
	Style  int
}

// FloorMesh is the geometry of one floor: its walls and, for the top floor
// only, the roof polygon at its top elevation.
type FloorMesh struct {
	Walls []WallQuad
	Cap   orb.Ring
	CapZ  float64
}

// Walls emits a quad for every edge of every ring of the floor, spanning the
// floor's base to its top. The normal points out of a counter-clockwise ring.
func (f Floor) Walls() []WallQuad {
	var quads []WallQuad
	base, top := f.Base(), f.Top
	u := 0.0
	for _, ring := range f.Rings {
		for i := 0; i+1 < len(ring); i++ {
			v0, v1 := ring[i], ring[i+1]
			edge := geom.Sub(v1, v0)
			l := geom.Length(edge)
			quads = append(quads, WallQuad{
				Corners: [4][3]float64{
					{v0[0], v0[1], base},
					{v1[0], v1[1], base},
					{v1[0], v1[1], top},
					{v0[0], v0[1], top},
				},
				Normal: geom.Normalize(orb.Point{edge[1], -edge[0]}),
				U0:     u,
				U1:     u + l,
				Style:  f.Style,
			})
			u += l
		}
	}
	return quads
}

// Meshes returns the per-floor geometry, bottom to top. Only the top floor
// carries a cap.
func (b Building) Meshes() []FloorMesh {
	out := make([]FloorMesh, len(b.Floors))
	for i, f := range b.Floors {
		out[i].Walls = f.Walls()
		if i == len(b.Floors)-1 {
			out[i].Cap = f.Outline()
			out[i].CapZ = f.Top
		}
	}
	return out
}

// Mesh is flat vertex data ready for upload. Positions carry (x, y, z,
// style), normals carry (nx, ny, nz, building id) and UVs carry (u, v).
type Mesh struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
}

// Vertices returns the number of vertices in the mesh.
func (m Mesh) Vertices() int { return len(m.Positions) / 4 }

// Mesh flattens every floor into one indexed triangle list. Walls are two
// triangles per quad; the roof is fan triangulated.
func (b Building) Mesh() Mesh {
	var m Mesh
	for _, fm := range b.Meshes() {
		for _, q := range fm.Walls {
			idx := uint32(m.Vertices())
			m.Indices = append(m.Indices, idx, idx+1, idx+2, idx, idx+2, idx+3)
			us := [4]float64{q.U0, q.U1, q.U1, q.U0}
			for k, c := range q.Corners {
				m.Positions = append(m.Positions, float32(c[0]), float32(c[1]), float32(c[2]), float32(q.Style))
				m.Normals = append(m.Normals, float32(q.Normal[0]), float32(q.Normal[1]), 0, float32(b.ID))
				m.UVs = append(m.UVs, float32(us[k]), float32(c[2]))
			}
		}
		if len(fm.Cap) < 4 {
			continue
		}
		idx := uint32(m.Vertices())
		n := len(fm.Cap) - 1
		for i := 1; i < n-1; i++ {
			m.Indices = append(m.Indices, idx, idx+uint32(i), idx+uint32(i)+1)
		}
		for _, v := range fm.Cap[:n] {
			m.Positions = append(m.Positions, float32(v[0]), float32(v[1]), float32(fm.CapZ), float32(b.Style))
			m.Normals = append(m.Normals, 0, 0, 1, float32(b.ID))
			m.UVs = append(m.UVs, float32(v[0]), float32(v[1]))
		}
	}
	return m
}
