package city

import (
	"github.com/paulmach/orb"

	"citygen/internal/buildings"
	"citygen/internal/core"
	"citygen/internal/roads"
)

// FieldExport is the per-cell terrain data consumed by a renderer.
type FieldExport struct {
	W, H       int
	Land       []float64
	Population []float64
	BlockColor []float64
	Elevation  []float64
}

// BuildingExport is one building as floors of wall quads, bottom to top.
type BuildingExport struct {
	ID       int
	Position orb.Point
	Height   float64
	Style    int
	Floors   []buildings.FloorMesh
}

// ExportField copies the field channels.
func (l *Layout) ExportField() FieldExport {
	f := l.Field
	return FieldExport{
		W:          f.W,
		H:          f.H,
		Land:       append([]float64(nil), f.Layer(core.ChannelLand)...),
		Population: append([]float64(nil), f.Layer(core.ChannelPopulation)...),
		BlockColor: append([]float64(nil), f.Layer(core.ChannelBlock)...),
		Elevation:  append([]float64(nil), f.Layer(core.ChannelElevation)...),
	}
}

// ExportRoads returns highway and street segments in normalized coordinates.
func (l *Layout) ExportRoads() roads.Export {
	return roads.NewExport(l.Field.W, l.Field.H, l.Highway, l.Streets)
}

// ExportBuildings returns the wall and roof geometry of every building.
func (l *Layout) ExportBuildings() []BuildingExport {
	out := make([]BuildingExport, 0, len(l.Buildings))
	for _, b := range l.Buildings {
		out = append(out, BuildingExport{
			ID:       b.ID,
			Position: b.Position,
			Height:   b.Height,
			Style:    b.Style,
			Floors:   b.Meshes(),
		})
	}
	return out
}
