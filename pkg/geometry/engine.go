package geometry

import (
	"math"

	"github.com/ctessum/geom"
)

// Engine performs boolean operations on polygon sets. Implementations must
// not modify their arguments.
type Engine interface {
	// Union returns the area covered by a or b.
	Union(a, b PolygonSet) PolygonSet
	// Subtract returns the area of a not covered by b.
	Subtract(a, b PolygonSet) PolygonSet
}

// ClipEngine is the default Engine, backed by the polygon clipper in
// github.com/ctessum/geom. Results are rounded back to whole nanometres and
// re-nested into outline/hole form.
type ClipEngine struct{}

// NewEngine returns the default geometry engine.
func NewEngine() *ClipEngine {
	return &ClipEngine{}
}

// Union implements Engine.
func (ClipEngine) Union(a, b PolygonSet) PolygonSet {
	switch {
	case a.IsEmpty():
		return b.Clone()
	case b.IsEmpty():
		return a.Clone()
	}
	return fromClip(toClip(a).Union(toClip(b)))
}

// Subtract implements Engine.
func (ClipEngine) Subtract(a, b PolygonSet) PolygonSet {
	switch {
	case a.IsEmpty():
		return PolygonSet{}
	case b.IsEmpty():
		return a.Clone()
	}
	return fromClip(toClip(a).Difference(toClip(b)))
}

// UnionAll merges every set into one using a balanced pairwise reduction,
// which keeps intermediate results small for boards with many pads.
func UnionAll(e Engine, sets []PolygonSet) PolygonSet {
	if len(sets) == 0 {
		return PolygonSet{}
	}
	work := make([]PolygonSet, len(sets))
	copy(work, sets)
	for len(work) > 1 {
		next := make([]PolygonSet, 0, (len(work)+1)/2)
		for i := 0; i < len(work); i += 2 {
			if i+1 == len(work) {
				next = append(next, work[i])
				continue
			}
			next = append(next, e.Union(work[i], work[i+1]))
		}
		work = next
	}
	return work[0].Clone()
}

func toClip(ps PolygonSet) geom.Polygon {
	out := make(geom.Polygon, 0, ps.OutlineCount())
	for _, p := range ps.Polygons {
		out = append(out, toPath(p.Outline))
		for _, h := range p.Holes {
			out = append(out, toPath(h))
		}
	}
	return out
}

func toPath(c Contour) geom.Path {
	path := make(geom.Path, len(c))
	for i, p := range c {
		path[i] = geom.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return path
}

// fromClip flattens every ring of a clipper result and re-nests them.
func fromClip(result geom.Polygonal) PolygonSet {
	var rings []Contour
	for _, poly := range result.Polygons() {
		for _, path := range poly {
			if ring := roundRing(path); ring != nil {
				rings = append(rings, ring)
			}
		}
	}
	return Nest(rings)
}

// roundRing converts a clipper ring to nanometres, dropping repeated points,
// the closing duplicate and rings that collapse to nothing.
func roundRing(path geom.Path) Contour {
	ring := make(Contour, 0, len(path))
	for _, p := range path {
		pt := Point{X: int64(math.Round(p.X)), Y: int64(math.Round(p.Y))}
		if n := len(ring); n > 0 && ring[n-1] == pt {
			continue
		}
		ring = append(ring, pt)
	}
	for len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if len(ring) < 3 || ring.Area() < 1 {
		return nil
	}
	return ring
}
