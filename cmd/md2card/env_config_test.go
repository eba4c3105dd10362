package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alnah/go-md2card/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	// NO t.Parallel() - modifies environment variables

	t.Setenv("MD2CARD_PRESET", "small")
	t.Setenv("MD2CARD_THEME", "dark")
	t.Setenv("MD2CARD_FORMAT", "jpeg")
	t.Setenv("MD2CARD_QUALITY", "75")
	t.Setenv("MD2CARD_TIMEOUT", "45s")
	t.Setenv("MD2CARD_OUTPUT_DIR", "/tmp/cards")
	t.Setenv("MD2CARD_WORKERS", "3")

	got := loadEnvConfig()

	if got.Preset != "small" || got.Theme != "dark" || got.Format != "jpeg" {
		t.Errorf("card env = %+v", got)
	}
	if got.Quality != 75 {
		t.Errorf("Quality = %d, want 75", got.Quality)
	}
	if got.Timeout != "45s" {
		t.Errorf("Timeout = %q, want %q", got.Timeout, "45s")
	}
	if got.OutputDir != "/tmp/cards" {
		t.Errorf("OutputDir = %q", got.OutputDir)
	}
	if got.Workers != 3 {
		t.Errorf("Workers = %d, want 3", got.Workers)
	}
}

func TestLoadEnvConfigInvalidNumbers(t *testing.T) {
	// NO t.Parallel() - modifies environment variables

	tests := []struct {
		name   string
		envVar string
		envVal string
	}{
		{name: "quality not a number", envVar: "MD2CARD_QUALITY", envVal: "high"},
		{name: "quality out of range", envVar: "MD2CARD_QUALITY", envVal: "101"},
		{name: "workers negative", envVar: "MD2CARD_WORKERS", envVal: "-2"},
		{name: "workers not a number", envVar: "MD2CARD_WORKERS", envVal: "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.envVal)

			got := loadEnvConfig()
			if got.Quality != 0 || got.Workers != 0 {
				t.Errorf("invalid %s=%q should be ignored, got %+v", tt.envVar, tt.envVal, got)
			}
		})
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Run("fills empty config fields", func(t *testing.T) {
		cfg := config.DefaultConfig()
		env := &envConfig{
			Preset:        "large",
			Theme:         "zhihu",
			OutputDir:     "/out",
			WatermarkText: "@me",
		}

		applyEnvConfig(env, cfg)

		if cfg.Card.Preset != "large" || cfg.Card.Theme != "zhihu" {
			t.Errorf("card = %+v", cfg.Card)
		}
		if cfg.Output.DefaultDir != "/out" {
			t.Errorf("output dir = %q", cfg.Output.DefaultDir)
		}
		if !cfg.Watermark.Enabled || cfg.Watermark.Text != "@me" {
			t.Errorf("watermark = %+v", cfg.Watermark)
		}
	})

	t.Run("config file values win over env", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Card.Preset = "medium"
		cfg.Card.Theme = "red"

		applyEnvConfig(&envConfig{Preset: "small", Theme: "dark"}, cfg)

		if cfg.Card.Preset != "medium" || cfg.Card.Theme != "red" {
			t.Errorf("env override beat config file: %+v", cfg.Card)
		}
	})

	t.Run("footer text auto-enables", func(t *testing.T) {
		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{FooterText: "auto"}, cfg)
		if !cfg.Footer.Enabled || cfg.Footer.Text != "auto" {
			t.Errorf("footer = %+v", cfg.Footer)
		}
	})
}

func TestWarnUnknownEnvVars(t *testing.T) {
	// NO t.Parallel() - modifies environment variables

	t.Setenv("MD2CARD_THEM", "dark") // typo
	t.Setenv("MD2CARD_PRESET", "small")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "MD2CARD_THEM") {
		t.Errorf("expected warning for MD2CARD_THEM, got %q", out)
	}
	if strings.Contains(out, "MD2CARD_PRESET") {
		t.Errorf("known variable warned about: %q", out)
	}
}

func TestRunConvertEnvTimeout(t *testing.T) {
	// NO t.Parallel() - modifies environment variables

	t.Setenv("MD2CARD_TIMEOUT", "not-a-duration")

	src := writeMarkdown(t, t.TempDir(), "note.md")
	env, _, _ := testEnv(&mockPool{})
	err := runConvert(context.Background(), []string{src}, &convertFlags{}, env)
	if err == nil || !strings.Contains(err.Error(), "invalid timeout") {
		t.Errorf("error = %v, want invalid timeout from env value", err)
	}
}
