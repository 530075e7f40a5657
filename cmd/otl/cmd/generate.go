package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/laser"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/laser/preview"
	"github.com/spf13/cobra"
)

type generateFlags struct {
	output   string
	side     string
	drill    bool
	mask     bool
	comments bool
	all      bool
	multi    bool
	preview  bool
	ppm      float64
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate <board_file>",
		Short: "Generate laser SVG files from a KiCad board",
		Long: `Generates the isolation SVG of each selected copper side and the board
outline. Optional outputs add drill holes, solder mask openings and user
comments. With --multi every output of a side is stacked into one
multi-color document instead; the back document is mirrored.

Each output is generated independently: a failing output is reported and
the remaining ones are still written. The command fails if any did.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output directory (default \"output\")")
	cmd.Flags().StringVarP(&f.side, "side", "s", "", "copper side: front, back or both (default both)")
	cmd.Flags().BoolVar(&f.drill, "drill", false, "generate drill_holes.svg")
	cmd.Flags().BoolVar(&f.mask, "mask", false, "generate solder mask openings per side")
	cmd.Flags().BoolVar(&f.comments, "comments", false, "generate user_comments.svg")
	cmd.Flags().BoolVar(&f.all, "all", false, "generate drill, mask and comments outputs")
	cmd.Flags().BoolVar(&f.multi, "multi", false, "generate one multi-color document per side")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "write a PNG preview next to every SVG")
	cmd.Flags().Float64Var(&f.ppm, "ppm", 0, "preview resolution in pixels per millimetre (default 20)")
	return cmd
}

// options merges the config file with the flags given on the command line.
func (a *app) options(cmd *cobra.Command, board string, f *generateFlags) (laser.Options, error) {
	cfg := a.cfg
	opts := laser.Options{
		Board:     board,
		OutputDir: cfg.GetOutputDir(),
		Drill:     boolFlag(cmd, "drill", f.drill, cfg.Drill),
		Mask:      boolFlag(cmd, "mask", f.mask, cfg.Mask),
		Comments:  boolFlag(cmd, "comments", f.comments, cfg.Comments),
		All:       boolFlag(cmd, "all", f.all, cfg.All),
		Multi:     boolFlag(cmd, "multi", f.multi, cfg.Multi),
	}
	if cmd.Flags().Changed("output") {
		opts.OutputDir = f.output
	}

	side := cfg.GetSide()
	if cmd.Flags().Changed("side") {
		side = f.side
	}
	sides, err := laser.ParseSides(side)
	if err != nil {
		return laser.Options{}, err
	}
	opts.Sides = sides
	return opts, nil
}

func boolFlag(cmd *cobra.Command, name string, flag bool, fromConfig *bool) bool {
	if cmd.Flags().Changed(name) || fromConfig == nil {
		return flag
	}
	return *fromConfig
}

func (a *app) runGenerate(cmd *cobra.Command, board string, f *generateFlags) error {
	opts, err := a.options(cmd, board, f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	gen := &laser.Generator{MaxError: a.cfg.GetMaxError()}

	withPreview := boolFlag(cmd, "preview", f.preview, a.cfg.Preview)
	if withPreview {
		popts := preview.Options{PixelsPerMM: a.cfg.GetPreviewPixelsPerMM()}
		if cmd.Flags().Changed("ppm") {
			popts.PixelsPerMM = f.ppm
		}
		gen.AfterWrite = func(doc *laser.Document, svgPath string) error {
			pngPath := preview.PNGPath(svgPath)
			if err := preview.WritePNG(doc, pngPath, popts); err != nil {
				return err
			}
			fmt.Fprintf(out, "Preview: %s\n", pngPath)
			return nil
		}
	}

	fmt.Fprintf(out, "Processing board: %s\n", board)
	written, err := gen.GenerateAll(opts)
	for _, path := range written {
		fmt.Fprintf(out, "Generated: %s\n", path)
	}
	if err != nil {
		return fmt.Errorf("generation incomplete (%d written): %w", len(written), err)
	}
	fmt.Fprintf(out, "✓ %d file(s) written to %s\n", len(written), opts.OutputDir)
	return nil
}
