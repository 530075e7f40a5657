package pcb

import (
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
)

// Polygon returns the copper outline of the track with vertices on the
// nominal shape.
func (t Track) Polygon(maxError int64) geometry.Contour {
	if t.IsArc {
		if arc, ok := geometry.ArcThrough(t.Start, t.Mid, t.End); ok {
			return geometry.ArcBand(arc, t.Width, maxError)
		}
	}
	return geometry.Segment(t.Start, t.End, t.Width, maxError)
}

// Polygon returns the copper disc of the via.
func (v Via) Polygon(maxError int64) geometry.Contour {
	return geometry.Circle(v.Position, v.Size/2, maxError)
}

// Polygon returns the pad outline. Shapes without a dedicated outline
// (custom, chamfered_rect) fall back to their bounding rectangle.
func (p Pad) Polygon(maxError int64) geometry.Contour {
	switch p.Shape {
	case "circle":
		return geometry.Circle(p.Position, p.Width/2, maxError)
	case "oval":
		return geometry.Oval(p.Position, p.Width, p.Height, p.Angle, maxError)
	case "roundrect":
		r := int64(float64(min(p.Width, p.Height)) * p.RoundRectRatio)
		return geometry.RoundRect(p.Position, p.Width, p.Height, r, p.Angle, maxError)
	case "trapezoid":
		return geometry.Trapezoid(p.Position, p.Width, p.Height, p.Delta, p.Angle)
	default:
		return geometry.Box(p.Position, p.Width, p.Height, p.Angle)
	}
}

// Contour returns the closed outline of a drawing, or nil for open shapes
// (lines, arcs, text).
func (d Drawing) Contour(maxError int64) geometry.Contour {
	switch d.Kind {
	case DrawRect:
		return geometry.Rect{Min: d.Start, Max: d.Start}.Expand(d.End).Contour()
	case DrawCircle:
		return geometry.Circle(d.Center, d.Radius(), maxError)
	case DrawPoly:
		if len(d.Points) >= 3 {
			return geometry.Contour(d.Points).Clone()
		}
	}
	return nil
}

// Polyline returns the path of an open drawing: two points for a line, the
// tessellated arc for an arc.
func (d Drawing) Polyline(maxError int64) []geometry.Point {
	switch d.Kind {
	case DrawLine:
		return []geometry.Point{d.Start, d.End}
	case DrawArc:
		if arc, ok := geometry.ArcThrough(d.Start, d.Mid, d.End); ok {
			return arc.Points(maxError)
		}
		return []geometry.Point{d.Start, d.End}
	}
	return nil
}
