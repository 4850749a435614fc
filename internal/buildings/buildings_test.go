package buildings

import (
	"math"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/paulmach/orb"

	"citygen/internal/core"
)

const tol = 1e-9

func inside(p orb.Point, b orb.Bound) bool {
	return p[0] >= b.Min[0]-tol && p[0] <= b.Max[0]+tol && p[1] >= b.Min[1]-tol && p[1] <= b.Max[1]+tol
}

func populatedField(w, h int, pop float64) (*core.Field, *core.Mask) {
	f := core.NewField(w, h)
	m := core.NewMask(w, h)
	for i := range f.Layer(core.ChannelLand) {
		f.Layer(core.ChannelLand)[i] = 1
		f.Layer(core.ChannelPopulation)[i] = pop
		m.Cells()[i] = 1
	}
	return f, m
}

func TestCandidatesRequireFullNeighborhood(t *testing.T) {
	m := core.NewMask(12, 12)
	for i := range m.Cells() {
		m.Cells()[i] = 1
	}
	m.Set(7, 2, false)
	got := Candidates(m, 5)
	want := []orb.Point{{2.5, 2.5}, {2.5, 7.5}, {7.5, 7.5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFloorRingStaysInBox(t *testing.T) {
	box := orb.Bound{Min: orb.Point{-0.1, -0.1}, Max: orb.Point{0.1, 0.1}}
	for edges := 3; edges <= 8; edges++ {
		for k := 0; k < 20; k++ {
			off := float64(k)/20*0.066 - 0.033
			center := orb.Point{off, -off / 2}
			ring := FloorRing(center, edges, 0.1, box, float64(k)*0.37)
			if len(ring) != edges+1 {
				t.Fatalf("expected %d vertices for %d edges, got %d", edges+1, edges, len(ring))
			}
			if ring[0] != ring[len(ring)-1] {
				t.Fatal("ring must be closed")
			}
			for _, v := range ring {
				if !inside(v, box) {
					t.Fatalf("vertex %v escapes box for %d edges at %v", v, edges, center)
				}
			}
		}
	}
}

func TestFloorRingMinimumEdges(t *testing.T) {
	box := orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{1, 1}}
	if got := len(FloorRing(orb.Point{}, 1, 0.5, box, 3)); got != 4 {
		t.Fatalf("expected a triangle, got %d vertices", got)
	}
}

func TestBuildingLayersConserveHeight(t *testing.T) {
	for k := 0; k < 50; k++ {
		seed := float64(k) * 0.173
		pos := orb.Point{float64(k%7)*0.05 - 0.2, float64(k%5)*0.04 - 0.1}
		b := NewBuilding(k, pos, 10, 0.005, 1, 1, seed)
		if len(b.Floors) < 1 || len(b.Floors) > maxLayers {
			t.Fatalf("unexpected floor count %d", len(b.Floors))
		}
		sum := 0.0
		for i, f := range b.Floors {
			if f.Thickness <= 0 {
				t.Fatalf("floor %d has non-positive thickness %f", i, f.Thickness)
			}
			if want := len(b.Floors) - i; len(f.Rings) != want {
				t.Fatalf("floor %d should carry %d rings, got %d", i, want, len(f.Rings))
			}
			if i > 0 && math.Abs(b.Floors[i-1].Top-f.Base()) > tol {
				t.Fatalf("floor %d does not sit on the one below", i)
			}
			sum += f.Thickness
		}
		if math.Abs(sum-b.Height) > tol {
			t.Fatalf("thicknesses sum to %f, building height %f", sum, b.Height)
		}
		if math.Abs(b.Floors[0].Base()) > tol {
			t.Fatalf("ground floor should start at zero, got %f", b.Floors[0].Base())
		}
		if roof := b.Floors[len(b.Floors)-1]; math.Abs(roof.Top-b.Height) > tol {
			t.Fatalf("roof floor should top out at %f, got %f", b.Height, roof.Top)
		}
		if g := b.Floors[0]; math.Abs(g.Thickness-g.Top) > tol {
			t.Fatalf("ground floor should fill the remaining %f, got %f", g.Top, g.Thickness)
		}
	}
}

func TestPlaceDeterministicAndClamped(t *testing.T) {
	f, m := populatedField(64, 64, 1)
	cfg := DefaultConfig()
	a := Place(f, m, cfg, 1)
	b := Place(f, m, cfg, 1)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("placement differs between identical runs")
	}
	// Full population never rejects a site, so every candidate is used.
	if len(a) != 144 {
		t.Fatalf("expected 144 buildings, got %d", len(a))
	}
	seen := map[orb.Point]bool{}
	for i, bl := range a {
		if bl.ID != i {
			t.Fatalf("building %d has id %d", i, bl.ID)
		}
		if seen[bl.Position] {
			t.Fatalf("site %v used twice", bl.Position)
		}
		seen[bl.Position] = true
		if len(bl.Floors) < 1 {
			t.Fatalf("building %d has no floors", i)
		}
		for _, fl := range bl.Floors {
			for _, ring := range fl.Rings {
				for _, v := range ring {
					if !inside(v, bl.Bound) {
						t.Fatalf("building %d vertex %v outside %s", i, v, spew.Sdump(bl.Bound))
					}
				}
			}
		}
	}
}

func TestPlaceCapsAttempts(t *testing.T) {
	f, m := populatedField(64, 64, 1)
	cfg := DefaultConfig()
	cfg.MaxBuildings = 10
	if got := len(Place(f, m, cfg, 3)); got != 10 {
		t.Fatalf("expected 10 buildings, got %d", got)
	}
	empty := core.NewMask(64, 64)
	if got := Place(f, empty, cfg, 3); len(got) != 0 {
		t.Fatalf("expected no buildings without sites, got %d", len(got))
	}
}

func TestMeshLayout(t *testing.T) {
	b := NewBuilding(3, orb.Point{}, 4, 0.01, 0.8, 2, 0.5)
	quads := 0
	for _, f := range b.Floors {
		for _, r := range f.Rings {
			quads += len(r) - 1
		}
	}
	roof := len(b.Roof()) - 1

	meshes := b.Meshes()
	for i, fm := range meshes {
		if (fm.Cap != nil) != (i == len(meshes)-1) {
			t.Fatalf("floor %d cap presence wrong", i)
		}
		for _, q := range fm.Walls {
			if n := math.Hypot(q.Normal[0], q.Normal[1]); math.Abs(n-1) > 1e-6 {
				t.Fatalf("wall normal not unit: %f", n)
			}
			if q.U1 < q.U0 {
				t.Fatal("u coordinate must grow along the perimeter")
			}
		}
	}

	m := b.Mesh()
	if want := 4*quads + roof; m.Vertices() != want {
		t.Fatalf("expected %d vertices, got %d", want, m.Vertices())
	}
	if want := 6*quads + 3*(roof-2); len(m.Indices) != want {
		t.Fatalf("expected %d indices, got %d", want, len(m.Indices))
	}
	if len(m.Normals) != len(m.Positions) || len(m.UVs) != 2*m.Vertices() {
		t.Fatal("vertex attribute arrays disagree")
	}
	for _, idx := range m.Indices {
		if int(idx) >= m.Vertices() {
			t.Fatalf("index %d out of range", idx)
		}
	}
}
