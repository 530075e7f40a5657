package laser

import (
	"log/slog"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/pcb"
)

// viaMaskSegments is the fixed vertex count of a via's mask relief.
const viaMaskSegments = 32

// Extractor pulls per-layer geometry out of a board. It only reads the
// board; every returned set is freshly allocated.
type Extractor struct {
	board    *pcb.Board
	source   string
	engine   geometry.Engine
	maxError int64
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithEngine selects the boolean engine.
func WithEngine(e geometry.Engine) ExtractorOption {
	return func(x *Extractor) { x.engine = e }
}

// WithMaxError sets the arc tessellation error in nanometres.
func WithMaxError(nm int64) ExtractorOption {
	return func(x *Extractor) {
		if nm > 0 {
			x.maxError = nm
		}
	}
}

// WithSource records the board path used in error messages.
func WithSource(path string) ExtractorOption {
	return func(x *Extractor) { x.source = path }
}

// NewExtractor returns an extractor over b.
func NewExtractor(b *pcb.Board, opts ...ExtractorOption) *Extractor {
	x := &Extractor{
		board:    b,
		engine:   geometry.NewEngine(),
		maxError: geometry.DefaultMaxError,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Board returns the board being read.
func (x *Extractor) Board() *pcb.Board {
	return x.board
}

// Engine returns the boolean engine in use.
func (x *Extractor) Engine() geometry.Engine {
	return x.engine
}

func (x *Extractor) resolve(name string) (string, error) {
	canonical, ok := x.board.ResolveLayer(name)
	if !ok {
		return "", &LayerError{Board: x.source, Layer: name}
	}
	return canonical, nil
}

// Outline returns the board outline with its cutouts.
func (x *Extractor) Outline() geometry.PolygonSet {
	return x.board.Outline.Clone()
}

// Copper returns the merged conductor area of a side: tracks and arcs,
// vias, pads and zone fills, with zero clearance.
func (x *Extractor) Copper(side Side) (geometry.PolygonSet, error) {
	layer, err := x.resolve(side.CopperLayer())
	if err != nil {
		return geometry.PolygonSet{}, err
	}

	var sets []geometry.PolygonSet
	add := func(c geometry.Contour) {
		if len(c) >= 3 {
			sets = append(sets, geometry.NewPolygonSet(c))
		}
	}

	for _, t := range x.board.Tracks {
		if t.Layer == layer {
			add(t.Polygon(x.maxError))
		}
	}
	for _, v := range x.board.Vias {
		if v.Layers.Contains(layer) {
			add(v.Polygon(x.maxError))
		}
	}
	for _, p := range x.board.Pads() {
		if p.Layers.Contains(layer) {
			add(p.Polygon(x.maxError))
		}
	}
	for _, z := range x.board.Zones {
		if z.Layer == layer {
			sets = append(sets, z.FillSet())
		}
	}

	copper := geometry.UnionAll(x.engine, sets)
	Logger().Debug("extracted copper",
		slog.String("layer", layer),
		slog.Int("shapes", len(sets)),
		slog.Int("outlines", copper.OutlineCount()),
		slog.Int("vertices", copper.TotalVertices()))
	return copper, nil
}

// Mask returns the solder-mask openings of a side: pads and zone fills on
// the mask layer with zero margin, plus a relief for every via.
func (x *Extractor) Mask(side Side) (geometry.PolygonSet, error) {
	layer, err := x.resolve(side.MaskLayer())
	if err != nil {
		return geometry.PolygonSet{}, err
	}

	var sets []geometry.PolygonSet
	for _, p := range x.board.Pads() {
		if !p.Layers.Contains(layer) {
			continue
		}
		if c := p.Polygon(x.maxError); len(c) >= 3 {
			sets = append(sets, geometry.NewPolygonSet(c))
		}
	}
	for _, z := range x.board.Zones {
		if z.Layer == layer {
			sets = append(sets, z.FillSet())
		}
	}
	for _, v := range x.board.Vias {
		if c := geometry.RegularPolygon(v.Position, v.Size/2, viaMaskSegments); c != nil {
			sets = append(sets, geometry.NewPolygonSet(c))
		}
	}

	mask := geometry.UnionAll(x.engine, sets)
	Logger().Debug("extracted mask",
		slog.String("layer", layer),
		slog.Int("openings", mask.OutlineCount()))
	return mask, nil
}

// DrillHoles returns one shape per drilled pad and via in board order. Round
// pad holes are circles, slots are ellipses turned by the pad orientation.
func (x *Extractor) DrillHoles() []Item {
	var items []Item
	for _, p := range x.board.Pads() {
		d := p.Drill
		if d.Width <= 0 || d.Height <= 0 {
			continue
		}
		if d.Width == d.Height {
			items = append(items, Item{
				Shape: Circle{Center: p.Position, Radius: half(d.Width)},
				Style: PadHoleStyle,
			})
			continue
		}
		items = append(items, Item{
			Shape: Ellipse{Center: p.Position, RX: half(d.Width), RY: half(d.Height), Rotation: p.Angle},
			Style: PadHoleStyle,
		})
	}
	for _, v := range x.board.Vias {
		if v.Drill <= 0 {
			continue
		}
		items = append(items, Item{
			Shape: Circle{Center: v.Position, Radius: half(v.Drill)},
			Style: ViaHoleStyle,
		})
	}
	return items
}

// half returns the radius of a hole diameter without rounding.
func half(diameter int64) float64 {
	return float64(diameter) / 2
}

// Comments returns the annotation drawings as stroked shapes. Arcs, text
// and curves have no laser equivalent and are skipped.
func (x *Extractor) Comments() ([]Item, error) {
	layer, err := x.resolve(CommentsLayerName)
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, d := range x.board.DrawingsOn(layer) {
		w := d.Stroke.Width
		var s Shape
		switch d.Kind {
		case pcb.DrawLine:
			s = Segment{Start: d.Start, End: d.End, StrokeWidth: w}
		case pcb.DrawRect:
			s = Rectangle{Corner1: d.Start, Corner2: d.End, StrokeWidth: w}
		case pcb.DrawCircle:
			s = Circle{Center: d.Center, Radius: float64(d.Radius()), StrokeWidth: w}
		case pcb.DrawPoly:
			c := d.Contour(x.maxError)
			if c == nil {
				continue
			}
			s = Polyline{Polygons: geometry.NewPolygonSet(c), StrokeWidth: w}
		default:
			Logger().Debug("skipping comment drawing", slog.String("kind", d.Kind.String()))
			continue
		}
		items = append(items, Item{Shape: s, Style: CommentStyle(w)})
	}
	return items, nil
}
