package pcb

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp/kicadsexp"
)

// DefaultTrackWidth is used for segments that omit (width).
const DefaultTrackWidth = 150_000

// Track represents a copper track: a straight segment, or an arc through
// Mid when IsArc is set.
type Track struct {
	Start  geometry.Point
	Mid    geometry.Point
	End    geometry.Point
	IsArc  bool
	Width  int64
	Layer  string
	Net    *Net
	Locked bool
}

// Via represents a via
type Via struct {
	Position geometry.Point // Via position
	Size     int64          // Copper diameter
	Drill    int64          // Drill diameter
	Layers   LayerSet       // Layer pair
	Net      *Net           // Connected net
	Locked   bool           // Whether via is locked
}

// parseTrack extracts a (segment ...) or (arc ...) item
// Expected format: (segment (start x y) (end x y) (width w) (layer "layer") (net n) ...)
func parseTrack(node *kicadsexp.List, netMap *NetMap) (*Track, error) {
	track := &Track{Width: DefaultTrackWidth, IsArc: node.Name() == "arc"}

	var err error
	if track.Start, err = sexp.GetChildPoint(node, "start"); err != nil {
		return nil, err
	}
	if track.End, err = sexp.GetChildPoint(node, "end"); err != nil {
		return nil, err
	}
	if track.IsArc {
		if track.Mid, err = sexp.GetChildPoint(node, "mid"); err != nil {
			return nil, err
		}
	}

	if widthNode, found := sexp.FindNode(node, "width"); found {
		if track.Width, err = sexp.GetLength(widthNode, 1); err != nil {
			return nil, fmt.Errorf("failed to parse width: %w", err)
		}
	}

	layerNode, found := sexp.FindNode(node, "layer")
	if !found {
		return nil, fmt.Errorf("missing required 'layer' field")
	}
	if track.Layer, err = sexp.GetString(layerNode, 1); err != nil {
		return nil, fmt.Errorf("failed to parse layer: %w", err)
	}

	if netNode, found := sexp.FindNode(node, "net"); found {
		track.Net = lookupNet(netNode, netMap)
	}
	track.Locked = isLocked(node)

	return track, nil
}

// parseVia extracts a via definition
// Expected format: (via (at x y) (size diameter) (drill diameter) (layers "L1" "L2") (net n) ...)
func parseVia(node *kicadsexp.List, netMap *NetMap) (*Via, error) {
	via := &Via{}

	var err error
	if via.Position, err = sexp.GetChildPoint(node, "at"); err != nil {
		return nil, err
	}

	sizeNode, found := sexp.FindNode(node, "size")
	if !found {
		return nil, fmt.Errorf("missing required 'size' field")
	}
	if via.Size, err = sexp.GetLength(sizeNode, 1); err != nil {
		return nil, fmt.Errorf("failed to parse size: %w", err)
	}

	drillNode, found := sexp.FindNode(node, "drill")
	if !found {
		return nil, fmt.Errorf("missing required 'drill' field")
	}
	if via.Drill, err = sexp.GetLength(drillNode, 1); err != nil {
		return nil, fmt.Errorf("failed to parse drill: %w", err)
	}

	layersNode, found := sexp.FindNode(node, "layers")
	if !found {
		return nil, fmt.Errorf("missing required 'layers' field")
	}
	via.Layers = LayerSet(sexp.GetSymbols(layersNode))

	if netNode, found := sexp.FindNode(node, "net"); found {
		via.Net = lookupNet(netNode, netMap)
	}
	via.Locked = isLocked(node)

	return via, nil
}

// isLocked accepts both the bare "locked" flag and (locked yes).
func isLocked(node *kicadsexp.List) bool {
	if sexp.HasSymbol(node, "locked") {
		return true
	}
	if lockedNode, found := sexp.FindNode(node, "locked"); found {
		return !sexp.HasSymbol(lockedNode, "no")
	}
	return false
}

// parseTracks extracts every segment and arc in file order.
func parseTracks(root *kicadsexp.List, netMap *NetMap) ([]Track, error) {
	var tracks []Track
	for _, item := range root.Items() {
		node, ok := item.(*kicadsexp.List)
		if !ok || (node.Name() != "segment" && node.Name() != "arc") {
			continue
		}
		track, err := parseTrack(node, netMap)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s at %s: %w", node.Name(), sexp.Where(node), err)
		}
		tracks = append(tracks, *track)
	}
	return tracks, nil
}

// parseVias extracts all via definitions from the root node
func parseVias(root *kicadsexp.List, netMap *NetMap) ([]Via, error) {
	var vias []Via
	for _, viaNode := range sexp.FindAllNodes(root, "via") {
		via, err := parseVia(viaNode, netMap)
		if err != nil {
			return nil, fmt.Errorf("failed to parse via at %s: %w", sexp.Where(viaNode), err)
		}
		vias = append(vias, *via)
	}
	return vias, nil
}
