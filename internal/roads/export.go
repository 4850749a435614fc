package roads

import "citygen/internal/geom"

// Export is the road network in normalized coordinates: both axes span
// [-0.5, 0.5] with the grid origin at (-0.5, -0.5).
type Export struct {
	Highway []geom.Segment
	Streets []geom.Segment
}

// NewExport normalizes the highway and street segments of a w x h grid.
func NewExport(w, h int, highway Network, streets []Street) Export {
	e := Export{
		Highway: make([]geom.Segment, 0, len(highway.Segments)),
	}
	for _, s := range highway.Segments {
		e.Highway = append(e.Highway, s.Normalized(w, h))
	}
	for _, s := range StreetSegments(streets) {
		e.Streets = append(e.Streets, s.Normalized(w, h))
	}
	return e
}
