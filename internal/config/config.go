// Package config loads and validates YAML configuration for card generation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2card/internal/hints"
	"github.com/alnah/go-md2card/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits for multi-tenant safety.
const (
	MaxPresetLength    = 20   // "small", "medium", "large"
	MaxThemeLength     = 100  // Theme name or path
	MaxFormatLength    = 10   // "png", "jpeg"
	MaxWatermarkLength = 50   // "@myhandle", "DRAFT"
	MaxFooterLength    = 500  // Footer text or "auto:FORMAT"
	MaxPathLength      = 2048 // Directory or file paths
)

// Config holds all configuration for card generation.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Card      CardConfig      `yaml:"card"`
	Watermark WatermarkConfig `yaml:"watermark"`
	Footer    FooterConfig    `yaml:"footer"`
	Assets    AssetsConfig    `yaml:"assets"`
	Heights   HeightsConfig   `yaml:"heights"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// CardConfig defines card appearance and output format.
type CardConfig struct {
	Preset  string `yaml:"preset"`  // "small", "medium", "large" (default: "medium")
	Theme   string `yaml:"theme"`   // Theme name in internal/assets/styles/ (default: "red")
	CSS     string `yaml:"css"`     // Path to a custom CSS file appended after the theme
	Format  string `yaml:"format"`  // "png", "jpeg" (default: "png")
	Quality int    `yaml:"quality"` // JPEG quality 1-100 (default: 90)
}

// WatermarkConfig defines the watermark text overlay.
type WatermarkConfig struct {
	Enabled bool   `yaml:"enabled"`
	Text    string `yaml:"text"` // e.g., "@myhandle"
}

// FooterConfig defines the card footer line.
type FooterConfig struct {
	Enabled bool   `yaml:"enabled"`
	Text    string `yaml:"text"` // Free text, or "auto" / "auto:FORMAT" for dates
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// HeightsConfig overrides the pixel height calibration used by pagination.
// Zero values keep the built-in defaults.
type HeightsConfig struct {
	H1            int `yaml:"h1"`
	H2            int `yaml:"h2"`
	H3            int `yaml:"h3"`
	H4            int `yaml:"h4"`
	H5            int `yaml:"h5"`
	H6            int `yaml:"h6"`
	ParagraphBase int `yaml:"paragraphBase"`
	ParagraphLine int `yaml:"paragraphLine"`
	ListItem      int `yaml:"listItem"`
	CodeBase      int `yaml:"codeBase"`
	CodeLine      int `yaml:"codeLine"`
	Image         int `yaml:"image"`
	MarginBottom  int `yaml:"marginBottom"`
}

// Validate checks field values and lengths to prevent abuse.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	if err := validateFieldLength("card.preset", c.Card.Preset, MaxPresetLength); err != nil {
		return err
	}
	if err := validateFieldLength("card.theme", c.Card.Theme, MaxThemeLength); err != nil {
		return err
	}
	if err := validateFieldLength("card.css", c.Card.CSS, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("card.format", c.Card.Format, MaxFormatLength); err != nil {
		return err
	}
	if c.Card.Format != "" {
		switch strings.ToLower(c.Card.Format) {
		case "png", "jpeg":
			// valid
		default:
			return fmt.Errorf("card.format: invalid value %q (must be png or jpeg)", c.Card.Format)
		}
	}
	if c.Card.Quality != 0 && (c.Card.Quality < 1 || c.Card.Quality > 100) {
		return fmt.Errorf("card.quality: must be between 1 and 100, got %d", c.Card.Quality)
	}

	if c.Watermark.Enabled {
		if c.Watermark.Text == "" {
			return fmt.Errorf("watermark.text: required when watermark is enabled")
		}
		if err := validateFieldLength("watermark.text", c.Watermark.Text, MaxWatermarkLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("footer.text", c.Footer.Text, MaxFooterLength); err != nil {
		return err
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	return validateHeights(&c.Heights)
}

// validateHeights rejects negative calibration values. Zero means default.
func validateHeights(h *HeightsConfig) error {
	fields := []struct {
		name  string
		value int
	}{
		{"heights.h1", h.H1},
		{"heights.h2", h.H2},
		{"heights.h3", h.H3},
		{"heights.h4", h.H4},
		{"heights.h5", h.H5},
		{"heights.h6", h.H6},
		{"heights.paragraphBase", h.ParagraphBase},
		{"heights.paragraphLine", h.ParagraphLine},
		{"heights.listItem", h.ListItem},
		{"heights.codeBase", h.CodeBase},
		{"heights.codeLine", h.CodeLine},
		{"heights.image", h.Image},
		{"heights.marginBottom", h.MarginBottom},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s: must not be negative, got %d", f.name, f.value)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration with all features disabled.
func DefaultConfig() *Config {
	return &Config{
		Input:     InputConfig{DefaultDir: ""},
		Output:    OutputConfig{DefaultDir: ""},
		Card:      CardConfig{},
		Watermark: WatermarkConfig{Enabled: false},
		Footer:    FooterConfig{Enabled: false},
		Assets:    AssetsConfig{BasePath: ""},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2card/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2card", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s%s", ErrConfigNotFound,
		strings.Join(triedPaths, ", "), hints.ForConfigNotFound(triedPaths))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
