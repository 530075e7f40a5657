package pcb

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp/kicadsexp"
)

// Zone is the filled area of a zone on one layer. Multi-layer zones are
// split into one Zone per layer that carries fill.
type Zone struct {
	Net     *Net
	Layer   string
	Outline geometry.Contour   // Zone boundary as drawn
	Fills   []geometry.Contour // Filled polygons computed by KiCad
}

// FillSet returns the fill as a polygon set. KiCad stores fills already
// fractured into simple outlines.
func (z Zone) FillSet() geometry.PolygonSet {
	return geometry.NewPolygonSet(z.Fills...)
}

// parseZone extracts a zone definition. It returns one Zone per layer.
func parseZone(node *kicadsexp.List, netMap *NetMap) ([]Zone, error) {
	base := Zone{}

	if netNode, found := sexp.FindNode(node, "net"); found {
		base.Net = lookupNet(netNode, netMap)
	}

	if polyNode, found := sexp.FindNode(node, "polygon"); found {
		if ptsNode, found := sexp.FindNode(polyNode, "pts"); found {
			points, err := sexp.GetPoints(ptsNode)
			if err != nil {
				return nil, fmt.Errorf("failed to parse zone outline: %w", err)
			}
			base.Outline = points
		}
	}

	var declared []string
	if layerNode, found := sexp.FindNode(node, "layer"); found {
		declared = sexp.GetSymbols(layerNode)
	}
	if layersNode, found := sexp.FindNode(node, "layers"); found {
		declared = sexp.GetSymbols(layersNode)
	}
	if len(declared) == 0 {
		return nil, fmt.Errorf("zone has no layer")
	}

	// Fills of multi-layer zones name their layer; single-layer fills
	// inherit the zone layer.
	var order []string
	fills := make(map[string][]geometry.Contour)
	for _, fpNode := range sexp.FindAllNodes(node, "filled_polygon") {
		layer := declared[0]
		if layerNode, found := sexp.FindNode(fpNode, "layer"); found {
			if l, err := sexp.GetString(layerNode, 1); err == nil {
				layer = l
			}
		}
		ptsNode, found := sexp.FindNode(fpNode, "pts")
		if !found {
			continue
		}
		points, err := sexp.GetPoints(ptsNode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse filled polygon: %w", err)
		}
		if _, seen := fills[layer]; !seen {
			order = append(order, layer)
		}
		fills[layer] = append(fills[layer], points)
	}

	if len(order) == 0 {
		// Unfilled zone: keep one entry per declared layer for reporting.
		zones := make([]Zone, 0, len(declared))
		for _, layer := range declared {
			z := base
			z.Layer = layer
			zones = append(zones, z)
		}
		return zones, nil
	}

	zones := make([]Zone, 0, len(order))
	for _, layer := range order {
		z := base
		z.Layer = layer
		z.Fills = fills[layer]
		zones = append(zones, z)
	}
	return zones, nil
}

// parseZones extracts all zone definitions
func (p *Parser) parseZones(root kicadsexp.Sexp, netMap *NetMap) []Zone {
	zoneNodes := sexp.FindAllNodes(root, "zone")
	zones := make([]Zone, 0, len(zoneNodes))

	for i, zoneNode := range zoneNodes {
		parsed, err := parseZone(zoneNode, netMap)
		if err != nil {
			p.log().Warn("skipping zone", "index", i, "at", sexp.Where(zoneNode), "err", err)
			continue
		}
		for _, zone := range parsed {
			if len(zone.Fills) == 0 {
				p.log().Debug("zone has no fills", "index", i, "layer", zone.Layer)
			}
			zones = append(zones, zone)
		}
	}

	p.log().Debug("parsed zones", "zones", len(zones), "nodes", len(zoneNodes))
	return zones
}
