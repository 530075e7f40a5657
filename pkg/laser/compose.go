package laser

import (
	"fmt"
	"log/slog"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
)

// Composer turns extracted geometry into documents. Single-layer and
// composite documents are built from the same extraction, so a layer looks
// identical in both.
type Composer struct {
	x *Extractor
}

// NewComposer returns a composer reading from x.
func NewComposer(x *Extractor) *Composer {
	return &Composer{x: x}
}

// Render produces the drawable form of one catalog layer. Copper selectors
// render as isolation.
func (c *Composer) Render(sel Selector) (RenderedLayer, error) {
	layer := RenderedLayer{Selector: sel}
	switch s := sel.(type) {
	case EdgeLayer:
		layer.Polygons = c.x.Outline()
		layer.Style = EdgeStyle

	case CopperLayer:
		copper, err := c.x.Copper(s.Side)
		if err != nil {
			return layer, err
		}
		layer.Polygons = ComputeIsolation(c.x.Engine(), c.x.Board().Outline, copper)
		layer.Style = IsolationStyle
		Logger().Debug("computed isolation",
			slog.String("layer", s.Name()),
			slog.Int("outlines", layer.Polygons.OutlineCount()),
			slog.Int("vertices", layer.Polygons.TotalVertices()))

	case DrillLayer:
		layer.Items = c.x.DrillHoles()

	case MaskLayer:
		mask, err := c.x.Mask(s.Side)
		if err != nil {
			return layer, err
		}
		layer.Polygons = mask
		layer.Style = MaskStyle

	case CommentsLayer:
		items, err := c.x.Comments()
		if err != nil {
			return layer, err
		}
		layer.Items = items

	default:
		return layer, fmt.Errorf("unknown layer selector %T", sel)
	}
	return layer, nil
}

// Single returns a document holding only sel, on the board's bounding box.
// An empty layer yields a document with no layers.
func (c *Composer) Single(sel Selector) (*Document, error) {
	layer, err := c.Render(sel)
	if err != nil {
		return nil, err
	}
	doc := c.newDocument(Identity())
	if !layer.IsEmpty() {
		doc.Layers = append(doc.Layers, layer)
	}
	return doc, nil
}

// CompositeOrder returns the layers of a side's composite document in
// drawing order.
func CompositeOrder(side Side) []Selector {
	return []Selector{
		EdgeOutline,
		CopperLayer{Side: side},
		DrillHoles,
		MaskLayer{Side: side},
		Comments,
	}
}

// Composite returns every layer of a side stacked in one document. The back
// composite is mirrored about the horizontal center of the board so it
// reads as seen from the back. Empty layers are left out.
func (c *Composer) Composite(side Side) (*Document, error) {
	xf := Identity()
	if side == Back {
		xf = MirrorAbout(c.x.Board().BBox)
	}
	doc := c.newDocument(xf)
	for _, sel := range CompositeOrder(side) {
		layer, err := c.Render(sel)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", sel.Name(), err)
		}
		if layer.IsEmpty() {
			continue
		}
		doc.Layers = append(doc.Layers, layer)
	}
	return doc, nil
}

func (c *Composer) newDocument(xf Transform) *Document {
	canvas := c.x.Board().BBox
	if canvas.IsEmpty() {
		canvas = geometry.Rect{}
	}
	return &Document{Canvas: canvas, Transform: xf}
}
