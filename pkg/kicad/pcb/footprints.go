package pcb

import (
	"fmt"
	"math"
	"strings"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp/kicadsexp"
)

// DefaultRoundRectRatio is KiCad's corner ratio for roundrect pads that do
// not specify one.
const DefaultRoundRectRatio = 0.25

// Footprint represents a component footprint
type Footprint struct {
	Library   string             // Library name
	Name      string             // Footprint name
	Layer     string             // Layer (F.Cu or B.Cu typically)
	Position  sexp.PositionAngle // Position and rotation
	Pads      []Pad              // Pads, in absolute coordinates
	Reference string             // Reference designator (e.g., "R1")
	Value     string             // Component value
}

// Pad represents a footprint pad. Position is absolute; Angle is the
// absolute pad orientation in degrees, as stored in KiCad 6+ files.
type Pad struct {
	Number         string         // Pad number/name
	Type           string         // thru_hole, np_thru_hole, smd, connect
	Shape          string         // circle, rect, oval, roundrect, trapezoid, ...
	Position       geometry.Point // Absolute center
	Angle          float64        // Absolute orientation
	Width, Height  int64          // Pad size
	Drill          Drill          // Zero for SMD pads
	Layers         LayerSet       // Layers the pad appears on
	Net            *Net           // Connected net (if any)
	RoundRectRatio float64        // Corner radius / min(size) for roundrect
	Delta          geometry.Point // rect_delta for trapezoids
}

// Drill is a pad hole. Round holes have Width == Height.
type Drill struct {
	Width, Height int64
}

// IsZero reports whether the pad has no hole.
func (d Drill) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}

// TransformPosition turns a footprint-relative position into board
// coordinates.
func (fp *Footprint) TransformPosition(rel geometry.Point) geometry.Point {
	x, y := float64(rel.X), float64(rel.Y)

	// Apply footprint rotation (negated: KiCad angles are clockwise in Y-down)
	if fp.Position.Angle != 0 {
		angleRad := -fp.Position.Angle * math.Pi / 180.0
		cos := math.Cos(angleRad)
		sin := math.Sin(angleRad)
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	return geometry.Point{
		X: fp.Position.X + int64(math.Round(x)),
		Y: fp.Position.Y + int64(math.Round(y)),
	}
}

// parsePad extracts a pad definition from a footprint
// Expected format: (pad "number" type shape (at x y [angle]) (size w h) (layers ...) (net n) ...)
func parsePad(node *kicadsexp.List, fp *Footprint, netMap *NetMap) (*Pad, error) {
	pad := &Pad{}

	var err error
	if pad.Number, err = sexp.GetString(node, 1); err != nil {
		return nil, fmt.Errorf("failed to parse pad number: %w", err)
	}
	if pad.Type, err = sexp.GetString(node, 2); err != nil {
		return nil, fmt.Errorf("failed to parse pad type: %w", err)
	}
	if pad.Shape, err = sexp.GetString(node, 3); err != nil {
		return nil, fmt.Errorf("failed to parse pad shape: %w", err)
	}

	atNode, found := sexp.FindNode(node, "at")
	if !found {
		return nil, fmt.Errorf("missing required 'at' position")
	}
	at, err := sexp.GetPosition(atNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad position: %w", err)
	}
	pad.Position = fp.TransformPosition(at.Point)
	pad.Angle = at.Angle

	sizeNode, found := sexp.FindNode(node, "size")
	if !found {
		return nil, fmt.Errorf("missing required 'size' field")
	}
	size, err := sexp.GetPoint(sizeNode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pad size: %w", err)
	}
	pad.Width, pad.Height = size.X, size.Y

	if drillNode, found := sexp.FindNode(node, "drill"); found {
		if pad.Drill, err = parseDrill(drillNode); err != nil {
			return nil, err
		}
	}

	layersNode, found := sexp.FindNode(node, "layers")
	if !found {
		return nil, fmt.Errorf("missing required 'layers' field")
	}
	pad.Layers = LayerSet(sexp.GetSymbols(layersNode))

	pad.RoundRectRatio = DefaultRoundRectRatio
	if ratioNode, found := sexp.FindNode(node, "roundrect_rratio"); found {
		if r, err := sexp.GetFloat(ratioNode, 1); err == nil {
			pad.RoundRectRatio = r
		}
	}
	if deltaNode, found := sexp.FindNode(node, "rect_delta"); found {
		if d, err := sexp.GetPoint(deltaNode); err == nil {
			pad.Delta = d
		}
	}

	if netNode, found := sexp.FindNode(node, "net"); found {
		pad.Net = lookupNet(netNode, netMap)
	}

	return pad, nil
}

// parseDrill reads (drill d), (drill oval w h) or (drill d (offset x y)).
func parseDrill(node *kicadsexp.List) (Drill, error) {
	syms := sexp.GetSymbols(node)
	if len(syms) == 0 {
		return Drill{}, nil
	}
	idx := 1
	oval := syms[0] == "oval"
	if oval {
		idx = 2
	}
	w, err := sexp.GetLength(node, idx)
	if err != nil {
		return Drill{}, fmt.Errorf("failed to parse drill: %w", err)
	}
	h := w
	if oval {
		if v, err := sexp.GetLength(node, idx+1); err == nil {
			h = v
		}
	}
	return Drill{Width: w, Height: h}, nil
}

// lookupNet resolves (net n ["name"]) and the name-only (net "name") form.
func lookupNet(node *kicadsexp.List, netMap *NetMap) *Net {
	if netMap == nil {
		return nil
	}
	if num, err := sexp.GetInt(node, 1); err == nil {
		if net, ok := netMap.GetByNumber(num); ok {
			return net
		}
		return nil
	}
	if name, err := sexp.GetString(node, 1); err == nil {
		if net, ok := netMap.GetByName(name); ok {
			return net
		}
	}
	return nil
}

// parseFootprint extracts a footprint (component) definition
// Expected format: (footprint "library:name" (layer "layer") (at x y [angle]) ...)
func (p *Parser) parseFootprint(node *kicadsexp.List, netMap *NetMap) (*Footprint, error) {
	footprint := &Footprint{}

	fpName, err := sexp.GetString(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse footprint name: %w", err)
	}
	// Example: "Resistor_SMD:R_0603_1608Metric"
	if lib, name, ok := strings.Cut(fpName, ":"); ok {
		footprint.Library, footprint.Name = lib, name
	} else {
		footprint.Name = fpName
	}

	layerNode, found := sexp.FindNode(node, "layer")
	if !found {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	if footprint.Layer, err = sexp.GetString(layerNode, 1); err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}

	atNode, found := sexp.FindNode(node, "at")
	if !found {
		return nil, fmt.Errorf("missing required 'at' position")
	}
	if footprint.Position, err = sexp.GetPosition(atNode); err != nil {
		return nil, fmt.Errorf("failed to parse footprint position: %w", err)
	}

	// KiCad 8 uses (property ...), KiCad 6/7 (fp_text reference ...)
	for _, propNode := range sexp.FindAllNodes(node, "property") {
		propName, err := sexp.GetString(propNode, 1)
		if err != nil {
			continue
		}
		propValue, err := sexp.GetString(propNode, 2)
		if err != nil {
			continue
		}
		switch propName {
		case "Reference":
			footprint.Reference = propValue
		case "Value":
			footprint.Value = propValue
		}
	}
	for _, textNode := range sexp.FindAllNodes(node, "fp_text") {
		kind, _ := sexp.GetString(textNode, 1)
		text, _ := sexp.GetString(textNode, 2)
		switch {
		case kind == "reference" && footprint.Reference == "":
			footprint.Reference = text
		case kind == "value" && footprint.Value == "":
			footprint.Value = text
		}
	}

	for _, padNode := range sexp.FindAllNodes(node, "pad") {
		pad, err := parsePad(padNode, footprint, netMap)
		if err != nil {
			p.log().Warn("skipping pad", "footprint", fpName, "at", sexp.Where(padNode), "err", err)
			continue
		}
		footprint.Pads = append(footprint.Pads, *pad)
	}

	return footprint, nil
}

// parseFootprints extracts all footprint definitions from the root node
func (p *Parser) parseFootprints(root kicadsexp.Sexp, netMap *NetMap) []Footprint {
	var footprints []Footprint
	// Older files call them modules.
	nodes := append(sexp.FindAllNodes(root, "footprint"), sexp.FindAllNodes(root, "module")...)
	for _, fpNode := range nodes {
		footprint, err := p.parseFootprint(fpNode, netMap)
		if err != nil {
			p.log().Warn("skipping footprint", "at", sexp.Where(fpNode), "err", err)
			continue
		}
		footprints = append(footprints, *footprint)
	}
	return footprints
}
