package laser

import "github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"

// ComputeIsolation returns the board area not covered by copper: the
// regions a laser removes to separate conductors. Both operands are cloned
// before the subtraction; neither is offset.
func ComputeIsolation(e geometry.Engine, outline, copper geometry.PolygonSet) geometry.PolygonSet {
	return e.Subtract(outline.Clone(), copper.Clone())
}
