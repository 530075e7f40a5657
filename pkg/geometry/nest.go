package geometry

import "sort"

// Nest sorts a flat list of non-intersecting rings into outlines and holes.
// A ring enclosed by an odd number of other rings is a hole of its nearest
// enclosing ring; rings at even depth (including islands inside holes) start
// new outlines. Outline order follows the input order, as does hole order
// within an outline.
func Nest(rings []Contour) PolygonSet {
	n := len(rings)
	if n == 0 {
		return PolygonSet{}
	}

	areas := make([]float64, n)
	for i, r := range rings {
		areas[i] = r.Area()
	}

	// parents[i] lists every ring enclosing ring i.
	parents := make([][]int, n)
	for i := range rings {
		for j := range rings {
			if i == j || areas[j] <= areas[i] {
				continue
			}
			if encloses(rings[j], rings[i]) {
				parents[i] = append(parents[i], j)
			}
		}
	}

	outlineIndex := make(map[int]int, n)
	var ps PolygonSet
	for i, r := range rings {
		if len(parents[i])%2 == 0 {
			outlineIndex[i] = len(ps.Polygons)
			ps.Polygons = append(ps.Polygons, Polygon{Outline: r})
		}
	}

	for i, r := range rings {
		if len(parents[i])%2 == 0 {
			continue
		}
		// The immediate parent is the smallest enclosing ring.
		enc := parents[i]
		sort.Slice(enc, func(a, b int) bool { return areas[enc[a]] < areas[enc[b]] })
		idx, ok := outlineIndex[enc[0]]
		if !ok {
			continue
		}
		ps.Polygons[idx].Holes = append(ps.Polygons[idx].Holes, r)
	}
	return ps
}

// encloses reports whether inner lies inside outer. Vertices of inner that
// sit on outer's boundary are inconclusive and skipped.
func encloses(outer, inner Contour) bool {
	if !outer.Bounds().containsRect(inner.Bounds()) {
		return false
	}
	for _, p := range inner {
		if onBoundary(outer, p) {
			continue
		}
		return outer.Contains(p)
	}
	return false
}

func (r Rect) containsRect(o Rect) bool {
	return o.Min.X >= r.Min.X && o.Min.Y >= r.Min.Y &&
		o.Max.X <= r.Max.X && o.Max.Y <= r.Max.Y
}

func onBoundary(c Contour, p Point) bool {
	n := len(c)
	for i := 0; i < n; i++ {
		a, b := c[i], c[(i+1)%n]
		cross := float64(b.X-a.X)*float64(p.Y-a.Y) - float64(b.Y-a.Y)*float64(p.X-a.X)
		if cross != 0 {
			continue
		}
		if p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
			p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y) {
			return true
		}
	}
	return false
}
