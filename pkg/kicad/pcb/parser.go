package pcb

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp/kicadsexp"
)

// Minimum supported KiCad version (6.0 = 20211014)
const MinSupportedVersion = 20211014

// Parser handles parsing of KiCad board files
type Parser struct {
	logger   *slog.Logger
	maxError int64
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger routes skipped-item warnings to l.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) { p.logger = l }
}

// WithMaxError sets the arc tessellation error used for the board outline.
func WithMaxError(nm int64) Option {
	return func(p *Parser) { p.maxError = nm }
}

// NewParser creates a new KiCad board parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{maxError: geometry.DefaultMaxError}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}

// ParseFile reads and parses a KiCad board file
func ParseFile(filename string) (*Board, error) {
	return NewParser().ParseFile(filename)
}

// Parse reads and parses a KiCad board from an io.Reader
func Parse(r io.Reader) (*Board, error) {
	return NewParser().Parse(r)
}

// ParseFile reads and parses a KiCad board file
func (p *Parser) ParseFile(filename string) (*Board, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads and parses a KiCad board from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Board, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	root, ok := sexps[0].(*kicadsexp.List)
	if !ok || root.Name() != "kicad_pcb" {
		return nil, fmt.Errorf("not a KiCad PCB file: expected 'kicad_pcb', got '%s'", sexps[0])
	}

	version, generator, err := parseHeader(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	board := &Board{
		Version:   version,
		Generator: generator,
	}

	if generalNode, found := sexp.FindNode(root, "general"); found {
		board.General = parseGeneral(generalNode)
	}
	if titleNode, found := sexp.FindNode(root, "title_block"); found {
		parseTitleBlock(titleNode, &board.General)
	}

	if layersNode, found := sexp.FindNode(root, "layers"); found {
		layers, err := parseLayers(layersNode)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layers section: %w", err)
		}
		board.Layers = layers
	}
	board.layerMap = NewLayerMap(board.Layers)

	nets, err := parseNets(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse nets: %w", err)
	}
	board.Nets = nets
	netMap := NewNetMap(board.Nets)

	board.Drawings = p.parseDrawings(root)

	if board.Tracks, err = parseTracks(root, netMap); err != nil {
		return nil, fmt.Errorf("failed to parse tracks: %w", err)
	}
	if board.Vias, err = parseVias(root, netMap); err != nil {
		return nil, fmt.Errorf("failed to parse vias: %w", err)
	}

	board.Footprints = p.parseFootprints(root, netMap)
	board.Zones = p.parseZones(root, netMap)

	board.Outline = buildOutline(board.Drawings, p.maxError, p.log())
	board.BBox = board.computeBoundingBox()
	if board.Outline.IsEmpty() && !board.BBox.IsEmpty() {
		p.log().Warn("no Edge.Cuts outline, using item bounding box")
		board.Outline = geometry.NewPolygonSet(board.BBox.Contour())
	}

	return board, nil
}

// parseHeader extracts version and generator information from the root node
// Expected format: (kicad_pcb (version 20221018) (generator pcbnew) ...)
func parseHeader(root kicadsexp.Sexp) (version int, generator string, err error) {
	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return 0, "", fmt.Errorf("missing required 'version' field")
	}

	ver, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse version: %w", err)
	}
	if ver < MinSupportedVersion {
		return 0, "", fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}

	gen := "unknown"
	if hostNode, found := sexp.FindNode(root, "host"); found {
		// Example: (host pcbnew "(6.0.0)")
		if toolName, err := sexp.GetString(hostNode, 1); err == nil {
			gen = toolName
		}
	} else if genNode, found := sexp.FindNode(root, "generator"); found {
		if generatorName, err := sexp.GetString(genNode, 1); err == nil {
			gen = generatorName
		}
	}

	return ver, gen, nil
}

// parseGeneral extracts general board properties
// Expected format: (general (thickness 1.6) ...)
func parseGeneral(node kicadsexp.Sexp) General {
	general := General{}
	if thicknessNode, found := sexp.FindNode(node, "thickness"); found {
		if thickness, err := sexp.GetFloat(thicknessNode, 1); err == nil {
			general.Thickness = thickness
		}
	}
	parseTitleBlock(node, &general)
	return general
}

// parseTitleBlock reads (title ...) (date ...) (rev ...) (company ...).
func parseTitleBlock(node kicadsexp.Sexp, general *General) {
	fields := []struct {
		key string
		dst *string
	}{
		{"title", &general.Title},
		{"date", &general.Date},
		{"rev", &general.Revision},
		{"company", &general.Company},
	}
	for _, f := range fields {
		if n, found := sexp.FindNode(node, f.key); found {
			if v, err := sexp.GetString(n, 1); err == nil {
				*f.dst = v
			}
		}
	}
}

// parseLayers extracts layer definitions
// Expected format: (layers (0 "F.Cu" signal) (41 "Cmts.User" user "User.Comments") ...)
func parseLayers(node *kicadsexp.List) ([]Layer, error) {
	layerNodes := sexp.GetListItems(node)
	if len(layerNodes) == 0 {
		return nil, fmt.Errorf("no layers defined")
	}

	var layers []Layer
	for _, item := range layerNodes {
		layerNode, ok := item.(*kicadsexp.List)
		if !ok {
			continue
		}

		number, err := sexp.GetInt(layerNode, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layer number: %w", err)
		}
		name, err := sexp.GetString(layerNode, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layer name: %w", err)
		}
		layerType, err := sexp.GetString(layerNode, 2)
		if err != nil {
			layerType = "user"
		}
		userName, _ := sexp.GetString(layerNode, 3)

		layers = append(layers, Layer{
			Number:   number,
			Name:     name,
			Type:     layerType,
			UserName: userName,
		})
	}

	return layers, nil
}

// parseNets extracts net definitions from the root node
// Expected format: (net 0 "") (net 1 "GND") (net 2 "+5V") ...
func parseNets(root kicadsexp.Sexp) ([]Net, error) {
	var nets []Net
	for _, netNode := range sexp.FindAllNodes(root, "net") {
		number, err := sexp.GetInt(netNode, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse net number at %s: %w", sexp.Where(netNode), err)
		}
		// net 0 often has an empty name
		name, _ := sexp.GetString(netNode, 2)
		nets = append(nets, Net{Number: number, Name: name})
	}
	return nets, nil
}
