package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2card/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2CARD_CONFIG: config file name or path
	Preset     string // MD2CARD_PRESET: card size preset
	Theme      string // MD2CARD_THEME: theme name
	Format     string // MD2CARD_FORMAT: png, jpeg
	Quality    int    // MD2CARD_QUALITY: JPEG quality 1-100
	Timeout    string // MD2CARD_TIMEOUT: per-page rendering timeout

	InputDir      string // MD2CARD_INPUT_DIR: default input directory
	OutputDir     string // MD2CARD_OUTPUT_DIR: default output directory
	WatermarkText string // MD2CARD_WATERMARK_TEXT: watermark text
	FooterText    string // MD2CARD_FOOTER_TEXT: footer text or "auto"
	AssetPath     string // MD2CARD_ASSET_PATH: custom asset directory
	Workers       int    // MD2CARD_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2CARD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2CARD_CONFIG":         true,
	"MD2CARD_PRESET":         true,
	"MD2CARD_THEME":          true,
	"MD2CARD_FORMAT":         true,
	"MD2CARD_QUALITY":        true,
	"MD2CARD_TIMEOUT":        true,
	"MD2CARD_INPUT_DIR":      true,
	"MD2CARD_OUTPUT_DIR":     true,
	"MD2CARD_WATERMARK_TEXT": true,
	"MD2CARD_FOOTER_TEXT":    true,
	"MD2CARD_ASSET_PATH":     true,
	"MD2CARD_WORKERS":        true,
	"MD2CARD_CONTAINER":      true, // doctor container override
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MD2CARD_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:    os.Getenv("MD2CARD_CONFIG"),
		Preset:        os.Getenv("MD2CARD_PRESET"),
		Theme:         os.Getenv("MD2CARD_THEME"),
		Format:        os.Getenv("MD2CARD_FORMAT"),
		Timeout:       os.Getenv("MD2CARD_TIMEOUT"),
		InputDir:      os.Getenv("MD2CARD_INPUT_DIR"),
		OutputDir:     os.Getenv("MD2CARD_OUTPUT_DIR"),
		WatermarkText: os.Getenv("MD2CARD_WATERMARK_TEXT"),
		FooterText:    os.Getenv("MD2CARD_FOOTER_TEXT"),
		AssetPath:     os.Getenv("MD2CARD_ASSET_PATH"),
	}

	if quality := os.Getenv("MD2CARD_QUALITY"); quality != "" {
		if q, err := strconv.Atoi(quality); err == nil && q >= 1 && q <= 100 {
			cfg.Quality = q
		}
	}

	if workers := os.Getenv("MD2CARD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2CARD_* variables.
// Helps catch typos like MD2CARD_THEM instead of MD2CARD_THEME.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2CARD_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values the config file left empty; CLI flags are applied
// afterwards via mergeFlags and override both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Preset != "" && cfg.Card.Preset == "" {
		cfg.Card.Preset = env.Preset
	}
	if env.Theme != "" && cfg.Card.Theme == "" {
		cfg.Card.Theme = env.Theme
	}
	if env.Format != "" && cfg.Card.Format == "" {
		cfg.Card.Format = env.Format
	}
	if env.Quality != 0 && cfg.Card.Quality == 0 {
		cfg.Card.Quality = env.Quality
	}

	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}

	// Watermark and footer text auto-enable, matching the CLI flags
	if env.WatermarkText != "" && cfg.Watermark.Text == "" {
		cfg.Watermark.Text = env.WatermarkText
		cfg.Watermark.Enabled = true
	}
	if env.FooterText != "" && cfg.Footer.Text == "" {
		cfg.Footer.Text = env.FooterText
		cfg.Footer.Enabled = true
	}

	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
