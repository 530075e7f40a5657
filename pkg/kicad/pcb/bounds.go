package pcb

import "github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"

// computeBoundingBox encloses the outline and every board item: tracks by
// their half width, pads and vias by their size, zone fills and drawings
// by their points.
func (b *Board) computeBoundingBox() geometry.Rect {
	bbox := b.Outline.Bounds()

	for _, track := range b.Tracks {
		seg := geometry.EmptyRect().Expand(track.Start).Expand(track.End)
		if track.IsArc {
			seg = seg.Expand(track.Mid)
		}
		bbox = bbox.Union(seg.Inflate(track.Width / 2))
	}

	for _, via := range b.Vias {
		bbox = bbox.Union(geometry.EmptyRect().Expand(via.Position).Inflate(via.Size / 2))
	}

	for _, fp := range b.Footprints {
		bbox = bbox.Union(fp.GetBoundingBox())
	}

	for _, zone := range b.Zones {
		bbox = bbox.Union(zone.FillSet().Bounds())
	}

	for _, d := range b.Drawings {
		bbox = bbox.Union(d.bounds())
	}

	return bbox
}

// GetBoundingBox returns the box around all pads of the footprint, or the
// anchor point for a footprint without pads.
func (fp *Footprint) GetBoundingBox() geometry.Rect {
	bbox := geometry.EmptyRect()
	for _, pad := range fp.Pads {
		// Approximate rotated pads by their larger dimension.
		half := max(pad.Width, pad.Height) / 2
		if pad.Angle == 0 || pad.Shape == "circle" {
			bbox = bbox.Union(geometry.Rect{
				Min: geometry.Pt(pad.Position.X-pad.Width/2, pad.Position.Y-pad.Height/2),
				Max: geometry.Pt(pad.Position.X+pad.Width/2, pad.Position.Y+pad.Height/2),
			})
			continue
		}
		bbox = bbox.Union(geometry.EmptyRect().Expand(pad.Position).Inflate(half))
	}
	if len(fp.Pads) == 0 {
		bbox = bbox.Expand(fp.Position.Point)
	}
	return bbox
}

func (d Drawing) bounds() geometry.Rect {
	r := geometry.EmptyRect()
	switch d.Kind {
	case DrawCircle:
		return r.Expand(d.Center).Inflate(d.Radius())
	case DrawArc:
		r = r.Expand(d.Start).Expand(d.Mid).Expand(d.End)
	case DrawPoly, DrawCurve:
		for _, p := range d.Points {
			r = r.Expand(p)
		}
	case DrawText:
		return r.Expand(d.Start)
	default:
		r = r.Expand(d.Start).Expand(d.End)
	}
	return r.Inflate(d.Stroke.Width / 2)
}
