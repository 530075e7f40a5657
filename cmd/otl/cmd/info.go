package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/pcb"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/laser"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <board_file>",
		Short: "Show board information",
		Long: `Displays the board header, item counts, size and layer table, and reports
which laser outputs the board can produce.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInfo(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) runInfo(out io.Writer, path string) error {
	board, err := laser.FileLoader{MaxError: a.cfg.GetMaxError()}.Load(path)
	if err != nil {
		return err
	}

	stats := board.Stats()
	fmt.Fprintf(out, "Board: %s\n", path)
	fmt.Fprintf(out, "  Version: %d\n", board.Version)
	fmt.Fprintf(out, "  Generator: %s\n", board.Generator)
	if board.General.Title != "" {
		fmt.Fprintf(out, "  Title: %s\n", board.General.Title)
	}
	if board.General.Revision != "" {
		fmt.Fprintf(out, "  Revision: %s\n", board.General.Revision)
	}
	fmt.Fprintf(out, "  Layers: %d\n", stats.Layers)
	fmt.Fprintf(out, "  Nets: %d\n", stats.Nets)
	fmt.Fprintf(out, "  Footprints: %d\n", stats.Footprints)
	fmt.Fprintf(out, "  Pads: %d\n", stats.Pads)
	fmt.Fprintf(out, "  Tracks: %d\n", stats.Tracks)
	fmt.Fprintf(out, "  Vias: %d\n", stats.Vias)
	fmt.Fprintf(out, "  Zones: %d\n", stats.Zones)
	fmt.Fprintf(out, "  Drawings: %d\n", stats.Drawings)

	bbox := board.BBox
	if !bbox.IsEmpty() {
		fmt.Fprintf(out, "  Board size: %.2f x %.2f mm\n", laser.ToMM(bbox.Width()), laser.ToMM(bbox.Height()))
		fmt.Fprintf(out, "  Board origin: (%.2f, %.2f) mm\n", laser.ToMM(bbox.Min.X), laser.ToMM(bbox.Min.Y))
	}
	fmt.Fprintf(out, "  Outline: %d outline(s), %d vertices\n",
		board.Outline.OutlineCount(), board.Outline.TotalVertices())

	printLayers(out, board)
	return printOutputs(out, board, path, a.cfg.GetMaxError())
}

func printLayers(out io.Writer, board *pcb.Board) {
	fmt.Fprintf(out, "\nLayers (%d):\n", len(board.Layers))
	for _, l := range board.Layers {
		if l.UserName != "" {
			fmt.Fprintf(out, "  %3d  %-12s %-8s %s\n", l.Number, l.Name, l.Type, l.UserName)
			continue
		}
		fmt.Fprintf(out, "  %3d  %-12s %s\n", l.Number, l.Name, l.Type)
	}
}

// printOutputs renders every catalog layer once and reports its size.
func printOutputs(out io.Writer, board *pcb.Board, path string, maxError int64) error {
	c := laser.NewComposer(laser.NewExtractor(board,
		laser.WithSource(path), laser.WithMaxError(maxError)))

	fmt.Fprintf(out, "\nLaser outputs:\n")
	for _, sel := range laser.Catalog() {
		layer, err := c.Render(sel)
		var layerErr *laser.LayerError
		switch {
		case errors.As(err, &layerErr):
			fmt.Fprintf(out, "  %-28s %-10s unavailable (no %s layer)\n", sel.Filename(), sel.Name(), layerErr.Layer)
		case err != nil:
			return fmt.Errorf("failed to render %s: %w", sel.Name(), err)
		case layer.IsEmpty():
			fmt.Fprintf(out, "  %-28s %-10s empty\n", sel.Filename(), sel.Name())
		default:
			fmt.Fprintf(out, "  %-28s %-10s %d element(s)\n", sel.Filename(), sel.Name(), layer.ElementCount())
		}
	}
	return nil
}
