package pcb

import (
	"fmt"
	"strings"
)

// Layer represents a PCB layer
type Layer struct {
	Number   int    // Layer number (ordinal)
	Name     string // Canonical name (e.g., "F.Cu", "Cmts.User")
	Type     string // Layer type (e.g., "signal", "user")
	UserName string // Optional display name (e.g., "User.Comments")
}

// Net represents an electrical net
type Net struct {
	Number int    // Net number (ordinal)
	Name   string // Net name
}

// LayerSet is the layer list of a pad or via. Entries may be wildcards such
// as "*.Cu", "*.Mask" or "F&B.Cu".
type LayerSet []string

// Contains reports whether the set includes the canonical layer name.
func (ls LayerSet) Contains(name string) bool {
	for _, entry := range ls {
		if layerMatches(entry, name) {
			return true
		}
	}
	return false
}

func layerMatches(pattern, name string) bool {
	if pattern == name {
		return true
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(name, suffix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "F&B"); ok {
		return name == "F"+suffix || name == "B"+suffix
	}
	return false
}

// standardLayers is the KiCad 6+ default layer table, used for files
// without a (layers ...) section.
var standardLayers = func() []Layer {
	layers := []Layer{{Number: 0, Name: "F.Cu", Type: "signal"}}
	for i := 1; i <= 30; i++ {
		layers = append(layers, Layer{Number: i, Name: fmt.Sprintf("In%d.Cu", i), Type: "signal"})
	}
	layers = append(layers, Layer{Number: 31, Name: "B.Cu", Type: "signal"})
	for i, name := range []string{
		"B.Adhes", "F.Adhes", "B.Paste", "F.Paste", "B.SilkS", "F.SilkS",
		"B.Mask", "F.Mask", "Dwgs.User", "Cmts.User", "Eco1.User", "Eco2.User",
		"Edge.Cuts", "Margin", "B.CrtYd", "F.CrtYd", "B.Fab", "F.Fab",
	} {
		layers = append(layers, Layer{Number: 32 + i, Name: name, Type: "user"})
	}
	return layers
}()

// layerAliases maps the names shown in the KiCad UI to the names stored in
// board files.
var layerAliases = map[string]string{
	"User.Drawings": "Dwgs.User",
	"User.Comments": "Cmts.User",
	"User.Eco1":     "Eco1.User",
	"User.Eco2":     "Eco2.User",
	"F.Silkscreen":  "F.SilkS",
	"B.Silkscreen":  "B.SilkS",
	"F.Adhesive":    "F.Adhes",
	"B.Adhesive":    "B.Adhes",
	"F.Courtyard":   "F.CrtYd",
	"B.Courtyard":   "B.CrtYd",
}

// LayerMap provides efficient lookup of layers by number or name
type LayerMap struct {
	byNumber map[int]*Layer
	byName   map[string]*Layer
	byUser   map[string]*Layer
}

// NewLayerMap creates a LayerMap from a slice of layers. An empty slice
// yields the standard KiCad layer table.
func NewLayerMap(layers []Layer) *LayerMap {
	if len(layers) == 0 {
		layers = standardLayers
	}
	lm := &LayerMap{
		byNumber: make(map[int]*Layer),
		byName:   make(map[string]*Layer),
		byUser:   make(map[string]*Layer),
	}
	for i := range layers {
		layer := &layers[i]
		lm.byNumber[layer.Number] = layer
		lm.byName[layer.Name] = layer
		if layer.UserName != "" {
			lm.byUser[layer.UserName] = layer
		}
	}
	return lm
}

// GetByName retrieves a layer by its canonical name (e.g., "F.Cu")
func (lm *LayerMap) GetByName(name string) (*Layer, bool) {
	layer, ok := lm.byName[name]
	return layer, ok
}

// GetByNumber retrieves a layer by its number
func (lm *LayerMap) GetByNumber(num int) (*Layer, bool) {
	layer, ok := lm.byNumber[num]
	return layer, ok
}

// Resolve maps a logical layer name to the canonical name used in the
// file. Canonical names, user-assigned names and the standard KiCad UI
// aliases are accepted.
func (lm *LayerMap) Resolve(name string) (string, bool) {
	if layer, ok := lm.byName[name]; ok {
		return layer.Name, true
	}
	if layer, ok := lm.byUser[name]; ok {
		return layer.Name, true
	}
	if canonical, ok := layerAliases[name]; ok {
		if layer, ok := lm.byName[canonical]; ok {
			return layer.Name, true
		}
	}
	return "", false
}

// IsCopperLayer checks if a layer is a copper layer
func (lm *LayerMap) IsCopperLayer(name string) bool {
	if _, ok := lm.byName[name]; !ok {
		return false
	}
	return strings.HasSuffix(name, ".Cu")
}

// CopperLayers returns the copper layers in stack order.
func (lm *LayerMap) CopperLayers() []string {
	var out []string
	for n := 0; n <= 31; n++ {
		if layer, ok := lm.byNumber[n]; ok && strings.HasSuffix(layer.Name, ".Cu") {
			out = append(out, layer.Name)
		}
	}
	return out
}

// NetMap provides efficient lookup of nets by number or name
type NetMap struct {
	byNumber map[int]*Net
	byName   map[string]*Net
}

// NewNetMap creates a NetMap from a slice of nets
func NewNetMap(nets []Net) *NetMap {
	nm := &NetMap{
		byNumber: make(map[int]*Net),
		byName:   make(map[string]*Net),
	}
	for i := range nets {
		net := &nets[i]
		nm.byNumber[net.Number] = net
		if net.Name != "" {
			nm.byName[net.Name] = net
		}
	}
	return nm
}

// GetByName retrieves a net by its name (e.g., "GND", "+5V")
func (nm *NetMap) GetByName(name string) (*Net, bool) {
	net, ok := nm.byName[name]
	return net, ok
}

// GetByNumber retrieves a net by its number
func (nm *NetMap) GetByNumber(num int) (*Net, bool) {
	net, ok := nm.byNumber[num]
	return net, ok
}
