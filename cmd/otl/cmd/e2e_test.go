package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const testBoard = "../../../pkg/laser/testdata/board.kicad_pcb"

// execute runs the command tree with an isolated home directory and
// returns what it printed on stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", "")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// TestGenerateE2E tests the generate command end-to-end
func TestGenerateE2E(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantFiles   []string
		wantContain []string
	}{
		{
			name:      "default outputs",
			args:      []string{},
			wantFiles: []string{"edge_cuts.svg", "isolation_B_Cu.svg", "isolation_F_Cu.svg"},
			wantContain: []string{
				"Processing board:",
				"Generated:",
				"3 file(s) written",
			},
		},
		{
			name: "all outputs front side",
			args: []string{"--all", "-s", "front"},
			wantFiles: []string{
				"drill_holes.svg", "edge_cuts.svg", "isolation_F_Cu.svg",
				"solder_mask_F_Cu.svg", "user_comments.svg",
			},
		},
		{
			name:      "drill and mask on back",
			args:      []string{"--drill", "--mask", "--side", "back"},
			wantFiles: []string{"drill_holes.svg", "edge_cuts.svg", "isolation_B_Cu.svg", "solder_mask_B_Cu.svg"},
		},
		{
			name:      "multi with preview",
			args:      []string{"--multi", "--preview", "--ppm", "5"},
			wantFiles: []string{"multi_color_pcb.png", "multi_color_pcb.svg", "multi_color_pcb_back.png", "multi_color_pcb_back.svg"},
			wantContain: []string{
				"Preview:",
				"multi_color_pcb_back.svg",
			},
		},
		{
			name:    "invalid side",
			args:    []string{"--side", "top"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			args := append([]string{"generate", testBoard, "-o", dir}, tt.args...)
			output, err := execute(t, args...)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v\nOutput: %s", err, output)
			}

			got := listDir(t, dir)
			if strings.Join(got, ",") != strings.Join(tt.wantFiles, ",") {
				t.Errorf("Files = %v, want %v", got, tt.wantFiles)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}
}

func TestGenerateMissingBoard(t *testing.T) {
	_, err := execute(t, "generate", "/nonexistent/board.kicad_pcb", "-o", t.TempDir())
	if err == nil {
		t.Fatal("Expected error for missing board")
	}
	if !strings.Contains(err.Error(), "invalid board file") {
		t.Errorf("Error = %v, want invalid board file", err)
	}
}

func TestGenerateWithConfig(t *testing.T) {
	cfgDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "cuts")
	cfgPath := filepath.Join(cfgDir, "config.json")
	body := `{"output_dir": "` + filepath.ToSlash(outDir) + `", "side": "front", "drill": true}`
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "--config", cfgPath, "generate", testBoard); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{"drill_holes.svg", "edge_cuts.svg", "isolation_F_Cu.svg"}
	if got := listDir(t, outDir); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Files = %v, want %v", got, want)
	}

	// Flags override the file.
	flagDir := t.TempDir()
	if _, err := execute(t, "--config", cfgPath, "generate", testBoard, "-o", flagDir, "-s", "back", "--drill=false"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want = []string{"edge_cuts.svg", "isolation_B_Cu.svg"}
	if got := listDir(t, flagDir); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(cfgPath, []byte(`{"side": "sideways"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", cfgPath, "info", testBoard); err == nil {
		t.Error("Expected error for invalid config")
	}
}

// TestInfoE2E tests the info command end-to-end
func TestInfoE2E(t *testing.T) {
	output, err := execute(t, "info", testBoard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{
		"Footprints: 2",
		"Tracks: 1",
		"Vias: 1",
		"Board size:",
		"Laser outputs:",
		"edge_cuts.svg",
		"isolation_F_Cu.svg",
		"Cmts.User",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
		}
	}

	if _, err := execute(t, "info"); err == nil {
		t.Error("Expected error for missing argument")
	}
}

// TestInspectE2E reads back what generate wrote.
func TestInspectE2E(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "generate", testBoard, "-o", dir, "--drill"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		file        string
		wantContain []string
	}{
		{"edge_cuts.svg", []string{"Elements: 1", "path", "#00ff00", "Totals: path=1"}},
		{"drill_holes.svg", []string{"Elements: 3", "circle", "ellipse"}},
		{"isolation_F_Cu.svg", []string{"Size: 20.1mm x 10.1mm", "path=1"}},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			output, err := execute(t, "inspect", filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string: %q\nGot:\n%s", want, output)
				}
			}
		})
	}

	if _, err := execute(t, "inspect", filepath.Join(dir, "missing.svg")); err == nil {
		t.Error("Expected error for missing file")
	}
}
