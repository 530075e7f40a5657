package pcb

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp/kicadsexp"
)

// DrawingKind is the shape of a board drawing.
type DrawingKind int

const (
	DrawLine DrawingKind = iota
	DrawRect
	DrawCircle
	DrawArc
	DrawPoly
	DrawText
	DrawCurve
)

var drawingNodes = []struct {
	node string
	kind DrawingKind
}{
	{"gr_line", DrawLine},
	{"gr_rect", DrawRect},
	{"gr_circle", DrawCircle},
	{"gr_arc", DrawArc},
	{"gr_poly", DrawPoly},
	{"gr_text", DrawText},
	{"gr_curve", DrawCurve},
}

func (k DrawingKind) String() string {
	for _, d := range drawingNodes {
		if d.kind == k {
			return d.node
		}
	}
	return fmt.Sprintf("DrawingKind(%d)", int(k))
}

// Drawing is a board-level graphic item. Which points are meaningful
// depends on Kind:
//
//	DrawLine, DrawRect: Start, End
//	DrawCircle:         Center, End (a point on the circumference)
//	DrawArc:            Start, Mid, End
//	DrawPoly, DrawCurve: Points
//	DrawText:           Start (anchor), Text
type Drawing struct {
	Kind   DrawingKind
	Layer  string
	Start  geometry.Point
	Mid    geometry.Point
	End    geometry.Point
	Center geometry.Point
	Points []geometry.Point
	Stroke sexp.Stroke
	Filled bool
	Text   string
}

// Radius returns the radius of a circle drawing.
func (d Drawing) Radius() int64 {
	dx := float64(d.End.X - d.Center.X)
	dy := float64(d.End.Y - d.Center.Y)
	return int64(math.Round(math.Hypot(dx, dy)))
}

func parseDrawing(node *kicadsexp.List, kind DrawingKind) (*Drawing, error) {
	d := &Drawing{Kind: kind, Stroke: sexp.GetStroke(node)}

	layerNode, found := sexp.FindNode(node, "layer")
	if !found {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	layer, err := sexp.GetString(layerNode, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}
	d.Layer = layer

	if fillNode, found := sexp.FindNode(node, "fill"); found {
		// (fill solid) in KiCad 6, (fill (type solid)) in later versions
		d.Filled = sexp.HasSymbol(fillNode, "solid") || sexp.HasSymbol(fillNode, "yes")
		if typeNode, ok := sexp.FindNode(fillNode, "type"); ok {
			d.Filled = sexp.HasSymbol(typeNode, "solid")
		}
	}

	switch kind {
	case DrawLine, DrawRect:
		if d.Start, err = sexp.GetChildPoint(node, "start"); err != nil {
			return nil, err
		}
		if d.End, err = sexp.GetChildPoint(node, "end"); err != nil {
			return nil, err
		}
	case DrawCircle:
		if d.Center, err = sexp.GetChildPoint(node, "center"); err != nil {
			return nil, err
		}
		if d.End, err = sexp.GetChildPoint(node, "end"); err != nil {
			return nil, err
		}
	case DrawArc:
		if d.Start, err = sexp.GetChildPoint(node, "start"); err != nil {
			return nil, err
		}
		if d.Mid, err = sexp.GetChildPoint(node, "mid"); err != nil {
			return nil, err
		}
		if d.End, err = sexp.GetChildPoint(node, "end"); err != nil {
			return nil, err
		}
	case DrawPoly, DrawCurve:
		ptsNode, found := sexp.FindNode(node, "pts")
		if !found {
			return nil, fmt.Errorf("missing required 'pts' field")
		}
		if d.Points, err = sexp.GetPoints(ptsNode); err != nil {
			return nil, err
		}
	case DrawText:
		d.Text, _ = sexp.GetString(node, 1)
		if atNode, found := sexp.FindNode(node, "at"); found {
			if at, err := sexp.GetPosition(atNode); err == nil {
				d.Start = at.Point
			}
		}
	}
	return d, nil
}

// parseDrawings extracts gr_* items in file order.
func (p *Parser) parseDrawings(root *kicadsexp.List) []Drawing {
	kinds := make(map[string]DrawingKind, len(drawingNodes))
	for _, d := range drawingNodes {
		kinds[d.node] = d.kind
	}

	var drawings []Drawing
	for _, item := range root.Items() {
		node, ok := item.(*kicadsexp.List)
		if !ok {
			continue
		}
		kind, ok := kinds[node.Name()]
		if !ok {
			continue
		}
		d, err := parseDrawing(node, kind)
		if err != nil {
			p.log().Warn("skipping drawing", "kind", node.Name(), "at", sexp.Where(node), "err", err)
			continue
		}
		drawings = append(drawings, *d)
	}
	return drawings
}
