package laser

import (
	"fmt"
	"strings"
)

// Side is a board face.
type Side int

const (
	Front Side = iota
	Back
)

func (s Side) String() string {
	if s == Back {
		return "back"
	}
	return "front"
}

// CopperLayer returns the outer copper layer of the side.
func (s Side) CopperLayer() string {
	if s == Back {
		return "B.Cu"
	}
	return "F.Cu"
}

// MaskLayer returns the solder-mask layer paired with the side's copper.
func (s Side) MaskLayer() string {
	return maskLayerFor(s.CopperLayer())
}

// maskLayerFor derives the mask layer from a copper layer name: any name
// containing "F" selects the front mask.
func maskLayerFor(copper string) string {
	if strings.Contains(copper, "F") {
		return "F.Mask"
	}
	return "B.Mask"
}

// ParseSides converts a side selection ("front", "back" or "both") into the
// sides to generate, front first.
func ParseSides(s string) ([]Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front":
		return []Side{Front}, nil
	case "back":
		return []Side{Back}, nil
	case "both", "":
		return []Side{Front, Back}, nil
	}
	return nil, fmt.Errorf("invalid side %q: must be front, back or both", s)
}

// Selector names one entry of the fixed layer catalog. The set of
// implementations is closed: CopperLayer, EdgeLayer, DrillLayer, MaskLayer
// and CommentsLayer.
type Selector interface {
	// Name is the logical layer name, e.g. "F.Cu" or "User.Comments".
	Name() string
	// Filename is the single-layer output file for the selector.
	Filename() string
	selector()
}

// CopperLayer selects the isolation of one side's copper.
type CopperLayer struct{ Side Side }

// EdgeLayer selects the board outline.
type EdgeLayer struct{}

// DrillLayer selects pad and via holes.
type DrillLayer struct{}

// MaskLayer selects one side's solder-mask openings.
type MaskLayer struct{ Side Side }

// CommentsLayer selects the annotation drawings on User.Comments.
type CommentsLayer struct{}

// The layer catalog.
var (
	FrontCopper Selector = CopperLayer{Side: Front}
	BackCopper  Selector = CopperLayer{Side: Back}
	EdgeOutline Selector = EdgeLayer{}
	DrillHoles  Selector = DrillLayer{}
	FrontMask   Selector = MaskLayer{Side: Front}
	BackMask    Selector = MaskLayer{Side: Back}
	Comments    Selector = CommentsLayer{}
)

// Catalog returns every selector in composite z-order.
func Catalog() []Selector {
	return []Selector{EdgeOutline, FrontCopper, BackCopper, DrillHoles, FrontMask, BackMask, Comments}
}

// CommentsLayerName is the logical name of the annotation layer.
const CommentsLayerName = "User.Comments"

func (c CopperLayer) Name() string { return c.Side.CopperLayer() }
func (c CopperLayer) Filename() string {
	return "isolation_" + fileSafe(c.Name()) + ".svg"
}
func (CopperLayer) selector() {}

func (EdgeLayer) Name() string     { return "Edge.Cuts" }
func (EdgeLayer) Filename() string { return "edge_cuts.svg" }
func (EdgeLayer) selector()        {}

func (DrillLayer) Name() string     { return "Drill" }
func (DrillLayer) Filename() string { return "drill_holes.svg" }
func (DrillLayer) selector()        {}

func (m MaskLayer) Name() string { return m.Side.MaskLayer() }

// Filename is named after the copper layer the mask belongs to.
func (m MaskLayer) Filename() string {
	return "solder_mask_" + fileSafe(m.Side.CopperLayer()) + ".svg"
}
func (MaskLayer) selector() {}

func (CommentsLayer) Name() string     { return CommentsLayerName }
func (CommentsLayer) Filename() string { return "user_comments.svg" }
func (CommentsLayer) selector()        {}

// CompositeFilename returns the multi-layer output file for a side.
func CompositeFilename(s Side) string {
	if s == Back {
		return "multi_color_pcb_back.svg"
	}
	return "multi_color_pcb.svg"
}

func fileSafe(layer string) string {
	return strings.ReplaceAll(layer, ".", "_")
}
