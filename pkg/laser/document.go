package laser

import "github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"

// Shape is a primitive drawn as its own SVG element. The implementations
// are Segment, Rectangle, Circle, Ellipse and Polyline.
type Shape interface {
	shape()
}

// Segment is a straight stroke.
type Segment struct {
	Start, End  geometry.Point
	StrokeWidth int64
}

// Rectangle is an axis-aligned rectangle given by two opposite corners.
type Rectangle struct {
	Corner1, Corner2 geometry.Point
	StrokeWidth      int64
}

// Circle is a circle, stroked or filled depending on its style. Radius is
// in nanometres and may be fractional, as for a hole of odd diameter.
type Circle struct {
	Center      geometry.Point
	Radius      float64
	StrokeWidth int64
}

// Ellipse is an axis-aligned ellipse rotated by Rotation degrees about its
// center. Mirroring moves the center but leaves Rotation unchanged. The
// radii are in nanometres.
type Ellipse struct {
	Center   geometry.Point
	RX, RY   float64
	Rotation float64
}

// Polyline is a set of closed rings drawn as a single path.
type Polyline struct {
	Polygons    geometry.PolygonSet
	StrokeWidth int64
}

func (Segment) shape()   {}
func (Rectangle) shape() {}
func (Circle) shape()    {}
func (Ellipse) shape()   {}
func (Polyline) shape()  {}

// Item is a shape with its presentation.
type Item struct {
	Shape Shape
	Style Style
}

// RenderedLayer is the drawable form of one catalog layer: either a
// polygon set painted with Style, or a list of individually styled items.
// Each composition builds fresh layers; they share no mutable state with
// the board.
type RenderedLayer struct {
	Selector Selector
	Polygons geometry.PolygonSet
	Style    Style
	Items    []Item
}

// IsEmpty reports whether the layer would produce no elements.
func (l RenderedLayer) IsEmpty() bool {
	return l.Polygons.IsEmpty() && len(l.Items) == 0
}

// ElementCount returns the number of SVG elements the layer produces.
func (l RenderedLayer) ElementCount() int {
	n := len(l.Items)
	if !l.Polygons.IsEmpty() {
		n++
	}
	return n
}

// Document is an ordered stack of rendered layers on a canvas. Layers are
// drawn in slice order. Transform is applied to every coordinate at output
// time.
type Document struct {
	Canvas    geometry.Rect
	Transform Transform
	Layers    []RenderedLayer
}

// ViewBox returns the canvas origin and size in millimetres.
func (d *Document) ViewBox() (x, y, w, h float64) {
	c := d.Transform.Rect(d.Canvas)
	return ToMM(c.Min.X), ToMM(c.Min.Y), ToMM(c.Width()), ToMM(c.Height())
}

// Layer returns the first layer rendered for sel.
func (d *Document) Layer(sel Selector) (RenderedLayer, bool) {
	for _, l := range d.Layers {
		if l.Selector == sel {
			return l, true
		}
	}
	return RenderedLayer{}, false
}

// ElementCount returns the total number of drawable elements.
func (d *Document) ElementCount() int {
	n := 0
	for _, l := range d.Layers {
		n += l.ElementCount()
	}
	return n
}
