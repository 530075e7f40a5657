package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadPartial(t *testing.T) {
	path := writeConfig(t, "config.json", `{"side": "front", "mask": true, "max_error_nm": 5000}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "front", cfg.GetSide())
	assert.True(t, Flag(cfg.Mask))
	assert.False(t, Flag(cfg.Drill))
	assert.Equal(t, int64(5000), cfg.GetMaxError())
	assert.Equal(t, DefaultOutputDir, cfg.GetOutputDir())
	assert.Equal(t, 20.0, cfg.GetPreviewPixelsPerMM())
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "output", cfg.GetOutputDir())
	assert.Equal(t, "both", cfg.GetSide())
	assert.Equal(t, int64(10000), cfg.GetMaxError())
	assert.False(t, Flag(cfg.Preview))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"wrong extension", "config.yaml", `{}`, ".json extension"},
		{"bad json", "config.json", `{"side": `, "parse config JSON"},
		{"bad side", "config.json", `{"side": "top"}`, "invalid side"},
		{"empty output dir", "config.json", `{"output_dir": ""}`, "output_dir"},
		{"tolerance too small", "config.json", `{"max_error_nm": 1}`, "max_error_nm"},
		{"bad resolution", "config.json", `{"preview_pixels_per_mm": -1}`, "preview_pixels_per_mm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadTooLarge(t *testing.T) {
	body := `{"output_dir": "` + strings.Repeat("a", maxFileSize) + `"}`
	_, err := Load(writeConfig(t, "config.json", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestSaveRoundTrip(t *testing.T) {
	dir := "cuts"
	multi := true
	ppm := 12.5
	cfg := &Config{OutputDir: &dir, Multi: &multi, PreviewPixelsPerMM: &ppm}

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadDefaultWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", "")

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}
