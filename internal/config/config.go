// Package config loads the optional defaults file for the otl command.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/laser"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/laser/preview"
)

// DefaultOutputDir is used when neither the file nor the flags name one.
const DefaultOutputDir = "output"

// maxFileSize bounds the config file size.
const maxFileSize = 1 << 20

// Config holds generation defaults. Unset fields fall back to built-in
// values through the Get methods, so partial files are safe.
type Config struct {
	OutputDir *string `json:"output_dir,omitempty"`
	Side      *string `json:"side,omitempty"` // front, back or both

	Drill    *bool `json:"drill,omitempty"`
	Mask     *bool `json:"mask,omitempty"`
	Comments *bool `json:"comments,omitempty"`
	All      *bool `json:"all,omitempty"`
	Multi    *bool `json:"multi,omitempty"`

	// MaxErrorNM is the arc tessellation error in nanometres.
	MaxErrorNM *int64 `json:"max_error_nm,omitempty"`

	Preview            *bool    `json:"preview,omitempty"`
	PreviewPixelsPerMM *float64 `json:"preview_pixels_per_mm,omitempty"`
}

// Load reads a config file. The path must end in .json.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "OpenTraceLaser", "config.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "opentracelaser", "config.json"), nil
}

// LoadDefault reads the per-user config file, returning an empty config
// when there is none.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Config{}, nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Save writes cfg as indented JSON, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Validate checks the values that are set.
func (c *Config) Validate() error {
	if c.Side != nil {
		if _, err := laser.ParseSides(*c.Side); err != nil {
			return err
		}
	}
	if c.OutputDir != nil && *c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.MaxErrorNM != nil && (*c.MaxErrorNM < 100 || *c.MaxErrorNM > 1_000_000) {
		return fmt.Errorf("max_error_nm must be between 100 and 1000000, got %d", *c.MaxErrorNM)
	}
	if c.PreviewPixelsPerMM != nil && (*c.PreviewPixelsPerMM <= 0 || *c.PreviewPixelsPerMM > 200) {
		return fmt.Errorf("preview_pixels_per_mm must be in (0, 200], got %g", *c.PreviewPixelsPerMM)
	}
	return nil
}

// GetOutputDir returns the output directory.
func (c *Config) GetOutputDir() string {
	if c.OutputDir != nil {
		return *c.OutputDir
	}
	return DefaultOutputDir
}

// GetSide returns the side selection.
func (c *Config) GetSide() string {
	if c.Side != nil {
		return *c.Side
	}
	return "both"
}

// GetMaxError returns the arc tessellation error in nanometres.
func (c *Config) GetMaxError() int64 {
	if c.MaxErrorNM != nil {
		return *c.MaxErrorNM
	}
	return geometry.DefaultMaxError
}

// GetPreviewPixelsPerMM returns the preview resolution.
func (c *Config) GetPreviewPixelsPerMM() float64 {
	if c.PreviewPixelsPerMM != nil {
		return *c.PreviewPixelsPerMM
	}
	return preview.DefaultPixelsPerMM
}

// Flag returns the value of an optional boolean setting.
func Flag(v *bool) bool {
	return v != nil && *v
}
