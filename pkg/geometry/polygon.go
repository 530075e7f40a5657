// Package geometry provides the polygon model shared by the board loader and
// the laser pipeline, plus boolean operations and shape tessellation.
//
// All coordinates are internal board units: integer nanometres, X to the
// right and Y down (KiCad convention).
package geometry

import "math"

// Point is a 2D coordinate in nanometres.
type Point struct {
	X, Y int64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int64) Point {
	return Point{X: x, Y: y}
}

// Add returns a + b.
func (a Point) Add(b Point) Point {
	return Point{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a - b.
func (a Point) Sub(b Point) Point {
	return Point{X: a.X - b.X, Y: a.Y - b.Y}
}

// Contour is a closed ring of points. The edge from the last point back to
// the first is implicit.
type Contour []Point

// Clone returns an independent copy of the contour.
func (c Contour) Clone() Contour {
	if c == nil {
		return nil
	}
	out := make(Contour, len(c))
	copy(out, c)
	return out
}

// SignedArea returns twice the signed area of the contour. Positive values
// are counter-clockwise in a Y-up frame (clockwise on screen).
func (c Contour) SignedArea() float64 {
	var sum float64
	n := len(c)
	for i := 0; i < n; i++ {
		a := c[i]
		b := c[(i+1)%n]
		sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}
	return sum
}

// Area returns the absolute enclosed area in square nanometres.
func (c Contour) Area() float64 {
	return math.Abs(c.SignedArea()) / 2
}

// Contains reports whether p lies strictly inside the contour using the
// even-odd crossing rule. Points on an edge may report either way.
func (c Contour) Contains(p Point) bool {
	inside := false
	n := len(c)
	px, py := float64(p.X), float64(p.Y)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := float64(c[i].X), float64(c[i].Y)
		xj, yj := float64(c[j].X), float64(c[j].Y)
		if (yi > py) != (yj > py) {
			x := (xj-xi)*(py-yi)/(yj-yi) + xi
			if px < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Bounds returns the bounding rectangle of the contour.
func (c Contour) Bounds() Rect {
	r := EmptyRect()
	for _, p := range c {
		r = r.Expand(p)
	}
	return r
}

// Polygon is one outline together with the holes cut out of it.
type Polygon struct {
	Outline Contour
	Holes   []Contour
}

// Clone returns an independent copy of the polygon.
func (p Polygon) Clone() Polygon {
	out := Polygon{Outline: p.Outline.Clone()}
	if len(p.Holes) > 0 {
		out.Holes = make([]Contour, len(p.Holes))
		for i, h := range p.Holes {
			out.Holes[i] = h.Clone()
		}
	}
	return out
}

// PolygonSet is an ordered collection of polygons. The zero value is an
// empty, valid set.
type PolygonSet struct {
	Polygons []Polygon
}

// NewPolygonSet builds a set with one hole-free polygon per contour.
func NewPolygonSet(outlines ...Contour) PolygonSet {
	var ps PolygonSet
	for _, o := range outlines {
		ps.AddOutline(o)
	}
	return ps
}

// OutlineCount returns the number of outlines in the set.
func (ps PolygonSet) OutlineCount() int {
	return len(ps.Polygons)
}

// HoleCount returns the number of holes owned by outline i.
func (ps PolygonSet) HoleCount(i int) int {
	return len(ps.Polygons[i].Holes)
}

// Outline returns outline i.
func (ps PolygonSet) Outline(i int) Contour {
	return ps.Polygons[i].Outline
}

// Hole returns hole j of outline i.
func (ps PolygonSet) Hole(i, j int) Contour {
	return ps.Polygons[i].Holes[j]
}

// IsEmpty reports whether the set has no outlines.
func (ps PolygonSet) IsEmpty() bool {
	return len(ps.Polygons) == 0
}

// TotalVertices counts the points of every outline and hole.
func (ps PolygonSet) TotalVertices() int {
	n := 0
	for _, p := range ps.Polygons {
		n += len(p.Outline)
		for _, h := range p.Holes {
			n += len(h)
		}
	}
	return n
}

// AddOutline appends a hole-free outline. Contours with fewer than three
// points are ignored.
func (ps *PolygonSet) AddOutline(c Contour) {
	if len(c) < 3 {
		return
	}
	ps.Polygons = append(ps.Polygons, Polygon{Outline: c})
}

// Append copies every polygon of other onto the end of ps. Overlaps are not
// resolved; use an Engine union for that.
func (ps *PolygonSet) Append(other PolygonSet) {
	for _, p := range other.Polygons {
		ps.Polygons = append(ps.Polygons, p.Clone())
	}
}

// Clone returns a deep copy. Boolean operations always work on clones so
// that board-owned sets are never aliased.
func (ps PolygonSet) Clone() PolygonSet {
	if ps.Polygons == nil {
		return PolygonSet{}
	}
	out := PolygonSet{Polygons: make([]Polygon, len(ps.Polygons))}
	for i, p := range ps.Polygons {
		out.Polygons[i] = p.Clone()
	}
	return out
}

// Bounds returns the bounding rectangle of all outlines.
func (ps PolygonSet) Bounds() Rect {
	r := EmptyRect()
	for _, p := range ps.Polygons {
		r = r.Union(p.Outline.Bounds())
	}
	return r
}

// Rect is an axis-aligned rectangle in nanometres.
type Rect struct {
	Min, Max Point
}

// EmptyRect returns a rectangle that any Expand call will replace.
func EmptyRect() Rect {
	return Rect{
		Min: Point{X: math.MaxInt64, Y: math.MaxInt64},
		Max: Point{X: math.MinInt64, Y: math.MinInt64},
	}
}

// IsEmpty reports whether the rectangle contains no points.
func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

// Expand grows r to include p.
func (r Rect) Expand(p Point) Rect {
	if p.X < r.Min.X {
		r.Min.X = p.X
	}
	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	}
	if p.X > r.Max.X {
		r.Max.X = p.X
	}
	if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}
	return r
}

// Union returns the smallest rectangle holding both r and o.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	return r.Expand(o.Min).Expand(o.Max)
}

// Inflate grows the rectangle by d on every side.
func (r Rect) Inflate(d int64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() int64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() int64 {
	return r.Max.Y - r.Min.Y
}

// Contour returns the rectangle as a four-point ring.
func (r Rect) Contour() Contour {
	return Contour{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Max.Y},
	}
}
