package pcb

import "github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"

// Board represents a complete KiCad PCB. All lengths are nanometres and all
// positions are absolute board coordinates. A Board is never modified after
// parsing.
type Board struct {
	Version    int         // File format version
	Generator  string      // Generator info (e.g., "pcbnew")
	General    General     // General board properties
	Layers     []Layer     // Layer definitions
	Nets       []Net       // Electrical nets
	Footprints []Footprint // Component footprints
	Drawings   []Drawing   // Board-level graphics (gr_*)
	Tracks     []Track     // Track segments and arcs
	Vias       []Via       // Vias
	Zones      []Zone      // Filled zones, one per layer

	// Outline is the board shape assembled from Edge.Cuts, with cutouts
	// as holes.
	Outline geometry.PolygonSet
	// BBox encloses the outline and every item.
	BBox geometry.Rect

	layerMap *LayerMap
}

// General contains general board properties
type General struct {
	Thickness float64 // Board thickness in mm
	Title     string  // Board title
	Date      string  // Design date
	Revision  string  // Board revision
	Company   string  // Company name
}

// LayerMap returns the lookup table for the board's layers.
func (b *Board) LayerMap() *LayerMap {
	if b.layerMap == nil {
		b.layerMap = NewLayerMap(b.Layers)
	}
	return b.layerMap
}

// ResolveLayer maps a logical layer name to the canonical file name.
func (b *Board) ResolveLayer(name string) (string, bool) {
	return b.LayerMap().Resolve(name)
}

// GetNet returns a net by name, or nil if not found
func (b *Board) GetNet(name string) *Net {
	for i := range b.Nets {
		if b.Nets[i].Name == name {
			return &b.Nets[i]
		}
	}
	return nil
}

// Pads returns every pad of every footprint in file order.
func (b *Board) Pads() []Pad {
	var pads []Pad
	for _, fp := range b.Footprints {
		pads = append(pads, fp.Pads...)
	}
	return pads
}

// DrawingsOn returns the board drawings on a canonical layer.
func (b *Board) DrawingsOn(layer string) []Drawing {
	var out []Drawing
	for _, d := range b.Drawings {
		if d.Layer == layer {
			out = append(out, d)
		}
	}
	return out
}

// Stats summarises the item counts of a board.
type Stats struct {
	Layers     int
	Nets       int
	Footprints int
	Pads       int
	Tracks     int
	Vias       int
	Zones      int
	Drawings   int
}

// Stats returns the item counts of the board.
func (b *Board) Stats() Stats {
	return Stats{
		Layers:     len(b.Layers),
		Nets:       len(b.Nets),
		Footprints: len(b.Footprints),
		Pads:       len(b.Pads()),
		Tracks:     len(b.Tracks),
		Vias:       len(b.Vias),
		Zones:      len(b.Zones),
		Drawings:   len(b.Drawings),
	}
}
