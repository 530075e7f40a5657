package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/OpenTraceLab/OpenTraceLaser/internal/config"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/laser"
	"github.com/spf13/cobra"
)

// app carries the global flags and the loaded config to the subcommands.
type app struct {
	verbose    bool
	configPath string
	cfg        *config.Config
}

// NewRootCmd builds the otl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "otl",
		Short: "OpenTraceLaser - KiCad PCB to laser SVG converter",
		Long: `OpenTraceLaser (otl) converts KiCad board files into SVG documents for
laser PCB fabrication: copper isolation, board outline, drill holes,
solder mask openings and user comments, as separate files or as one
multi-color document per side.

Examples:
  otl generate board.kicad_pcb                 # Isolation for both sides plus edge cuts
  otl generate board.kicad_pcb --all -s front  # Every front-side output
  otl generate board.kicad_pcb --multi         # One composite document per side
  otl info board.kicad_pcb                     # Show board summary
  otl inspect output/edge_cuts.svg             # Read an emitted SVG back`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.setupLogger(cmd)
			return a.loadConfig()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/opentracelaser/config.json)")

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newInfoCmd(a))
	rootCmd.AddCommand(newInspectCmd(a))
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) setupLogger(cmd *cobra.Command) {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	laser.SetLogger(slog.New(handler))
}

func (a *app) loadConfig() error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", a.configPath, err)
		}
		a.cfg = cfg
		return nil
	}
	cfg, err := config.LoadDefault()
	if err != nil {
		return fmt.Errorf("failed to load default config: %w", err)
	}
	a.cfg = cfg
	return nil
}
