package laser

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/pcb"
)

// Loader reads a board file.
type Loader interface {
	Load(path string) (*pcb.Board, error)
}

// FileLoader parses the board file on every call.
type FileLoader struct {
	// MaxError is the arc tessellation error for the board outline, in
	// nanometres. Zero selects geometry.DefaultMaxError.
	MaxError int64
}

// Load implements Loader. Read and parse failures wrap ErrInvalidBoardFile.
func (l FileLoader) Load(path string) (*pcb.Board, error) {
	opts := []pcb.Option{pcb.WithLogger(Logger())}
	if l.MaxError > 0 {
		opts = append(opts, pcb.WithMaxError(l.MaxError))
	}
	board, err := pcb.NewParser(opts...).ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBoardFile, path, err)
	}
	return board, nil
}

// Load parses a board file with default settings.
func Load(path string) (*pcb.Board, error) {
	return FileLoader{}.Load(path)
}

// CachingLoader loads each board path once and hands out the same
// read-only Board afterwards. Failed loads are not cached.
type CachingLoader struct {
	next Loader

	mu     sync.Mutex
	boards map[string]*pcb.Board
}

// NewCachingLoader wraps next. A nil next uses FileLoader.
func NewCachingLoader(next Loader) *CachingLoader {
	if next == nil {
		next = FileLoader{}
	}
	return &CachingLoader{next: next, boards: make(map[string]*pcb.Board)}
}

// Load implements Loader.
func (c *CachingLoader) Load(path string) (*pcb.Board, error) {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.boards[key]; ok {
		return b, nil
	}
	b, err := c.next.Load(path)
	if err != nil {
		return nil, err
	}
	c.boards[key] = b
	return b, nil
}

// Generator writes laser SVGs for board files. The zero value reloads the
// board for every output and uses the default engine and tolerance.
type Generator struct {
	Loader   Loader          // nil: FileLoader
	Engine   geometry.Engine // nil: geometry.NewEngine()
	MaxError int64           // 0: geometry.DefaultMaxError

	// AfterWrite, if set, is called with every document after its SVG has
	// been written.
	AfterWrite func(doc *Document, svgPath string) error
}

func (g *Generator) loader() Loader {
	if g.Loader == nil {
		return FileLoader{MaxError: g.MaxError}
	}
	return g.Loader
}

func (g *Generator) composer(boardPath string) (*Composer, error) {
	board, err := g.loader().Load(boardPath)
	if err != nil {
		return nil, err
	}
	opts := []ExtractorOption{WithSource(boardPath), WithMaxError(g.MaxError)}
	if g.Engine != nil {
		opts = append(opts, WithEngine(g.Engine))
	}
	return NewComposer(NewExtractor(board, opts...)), nil
}

// GenerateIsolation writes isolation_<layer>.svg for one side.
func (g *Generator) GenerateIsolation(boardPath string, side Side, outDir string) (string, error) {
	return g.single(boardPath, CopperLayer{Side: side}, outDir)
}

// GenerateEdgeCuts writes edge_cuts.svg.
func (g *Generator) GenerateEdgeCuts(boardPath, outDir string) (string, error) {
	return g.single(boardPath, EdgeOutline, outDir)
}

// GenerateDrillHoles writes drill_holes.svg.
func (g *Generator) GenerateDrillHoles(boardPath, outDir string) (string, error) {
	return g.single(boardPath, DrillHoles, outDir)
}

// GenerateSolderMask writes solder_mask_<layer>.svg for one side.
func (g *Generator) GenerateSolderMask(boardPath string, side Side, outDir string) (string, error) {
	return g.single(boardPath, MaskLayer{Side: side}, outDir)
}

// GenerateComments writes user_comments.svg.
func (g *Generator) GenerateComments(boardPath, outDir string) (string, error) {
	return g.single(boardPath, Comments, outDir)
}

// GenerateComposite writes the multi-color document of one side. The back
// document is mirrored.
func (g *Generator) GenerateComposite(boardPath string, side Side, outDir string) (string, error) {
	c, err := g.composer(boardPath)
	if err != nil {
		return "", err
	}
	doc, err := c.Composite(side)
	if err != nil {
		return "", err
	}
	return g.write(doc, outDir, CompositeFilename(side))
}

func (g *Generator) single(boardPath string, sel Selector, outDir string) (string, error) {
	c, err := g.composer(boardPath)
	if err != nil {
		return "", err
	}
	doc, err := c.Single(sel)
	if err != nil {
		return "", err
	}
	return g.write(doc, outDir, sel.Filename())
}

func (g *Generator) write(doc *Document, outDir, filename string) (string, error) {
	path, err := Write(doc, outDir, filename)
	if err != nil {
		return "", err
	}
	x, y, w, h := doc.ViewBox()
	Logger().Info("generated",
		slog.String("path", path),
		slog.Int("layers", len(doc.Layers)),
		slog.Int("elements", doc.ElementCount()),
		slog.String("board", fmt.Sprintf("(%.2f, %.2f) %.2fx%.2fmm", x, y, w, h)))

	if g.AfterWrite != nil {
		if err := g.AfterWrite(doc, path); err != nil {
			return path, fmt.Errorf("post-processing %s: %w", path, err)
		}
	}
	return path, nil
}

// Options selects the outputs of GenerateAll.
type Options struct {
	Board     string
	OutputDir string
	Sides     []Side

	Drill    bool // drill_holes.svg
	Mask     bool // solder_mask_*.svg per side
	Comments bool // user_comments.svg
	All      bool // all of the above
	Multi    bool // one composite per side instead of separate files
}

// output is one independently generated file.
type output struct {
	name string
	run  func() (string, error)
}

// plan lists the outputs for opts in generation order. Edge cuts are
// always produced outside multi mode.
func (g *Generator) plan(opts Options) []output {
	b, dir := opts.Board, opts.OutputDir
	var outs []output
	if opts.Multi {
		for _, side := range opts.Sides {
			outs = append(outs, output{CompositeFilename(side), func() (string, error) {
				return g.GenerateComposite(b, side, dir)
			}})
		}
		return outs
	}

	for _, side := range opts.Sides {
		outs = append(outs, output{CopperLayer{Side: side}.Filename(), func() (string, error) {
			return g.GenerateIsolation(b, side, dir)
		}})
	}
	if opts.Drill || opts.All {
		outs = append(outs, output{DrillHoles.Filename(), func() (string, error) {
			return g.GenerateDrillHoles(b, dir)
		}})
	}
	if opts.Mask || opts.All {
		for _, side := range opts.Sides {
			outs = append(outs, output{MaskLayer{Side: side}.Filename(), func() (string, error) {
				return g.GenerateSolderMask(b, side, dir)
			}})
		}
	}
	if opts.Comments || opts.All {
		outs = append(outs, output{Comments.Filename(), func() (string, error) {
			return g.GenerateComments(b, dir)
		}})
	}
	outs = append(outs, output{EdgeOutline.Filename(), func() (string, error) {
		return g.GenerateEdgeCuts(b, dir)
	}})
	return outs
}

// GenerateAll produces every output selected by opts. The board is parsed
// once. A failing output is logged and skipped; the returned error joins
// all failures. Files written before an AfterWrite failure are still
// listed. A board that cannot be loaded fails immediately.
func (g *Generator) GenerateAll(opts Options) ([]string, error) {
	run := *g
	if _, ok := g.Loader.(*CachingLoader); !ok {
		run.Loader = NewCachingLoader(g.loader())
	}
	if _, err := run.Loader.Load(opts.Board); err != nil {
		return nil, err
	}
	if len(opts.Sides) == 0 {
		opts.Sides = []Side{Front, Back}
	}

	var written []string
	var errs []error
	for _, out := range run.plan(opts) {
		path, err := out.run()
		// a failed AfterWrite still leaves the SVG on disk
		if path != "" {
			written = append(written, path)
		}
		if err != nil {
			Logger().Error("generation failed", slog.String("output", out.name), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", out.name, err))
		}
	}
	return written, errors.Join(errs...)
}
