package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	md2card "github.com/alnah/go-md2card"
	"github.com/alnah/go-md2card/internal/config"
	"github.com/alnah/go-md2card/internal/hints"
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	preset     string
	theme      string
	css        string
	watermark  string
	footer     string
	format     string
	quality    int
	htmlOutput bool
	htmlOnly   bool
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Environment overrides (CLI flags > env vars > config file)
	envCfg := loadEnvConfig()
	if flags.common.verbose {
		warnUnknownEnvVars(env.Stderr)
	}
	if flags.timeout == "" {
		flags.timeout = envCfg.Timeout
	}
	if flags.workers == 0 {
		flags.workers = envCfg.Workers
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration
	cfg := env.Config
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	var err error
	if configName != "" {
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge env then CLI flags into config (CLI wins)
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Resolve output directory
	outputDir := resolveOutputDir(flags.output, cfg)

	// Discover files to convert
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	// Resolve custom CSS content (file path from flag or config)
	cssContent, err := resolveCSSContent(flags.card.css, cfg)
	if err != nil {
		return err
	}

	// Resolve "auto" footer date once for the entire batch
	footer := resolveFooter(flags, cfg)
	if footer != "" {
		footer, err = md2card.ResolveDate(footer, env.Now())
		if err != nil {
			return fmt.Errorf("invalid footer date format: %w", err)
		}
	}

	params := &conversionParams{
		preset:     cfg.Card.Preset,
		theme:      resolveTheme(flags, cfg),
		css:        cssContent,
		watermark:  resolveWatermark(flags, cfg),
		footer:     footer,
		format:     cfg.Card.Format,
		quality:    cfg.Card.Quality,
		htmlOutput: flags.outputMode.html,
		htmlOnly:   flags.outputMode.htmlOnly,
	}

	// Build service options shared by every pooled service
	opts, err := buildServiceOptions(flags, cfg)
	if err != nil {
		return err
	}

	poolSize := md2card.ResolvePoolSize(flags.workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := env.NewPool(poolSize, opts...)
	defer pool.Close()

	// Convert files
	results := convertBatch(ctx, pool, files, params)

	// Print results
	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.card.preset != "" {
		cfg.Card.Preset = flags.card.preset
	}
	if flags.card.theme != "" {
		cfg.Card.Theme = flags.card.theme
	}
	if flags.card.css != "" {
		cfg.Card.CSS = flags.card.css
	}
	if flags.card.format != "" {
		cfg.Card.Format = flags.card.format
	}
	if flags.card.quality != 0 {
		cfg.Card.Quality = flags.card.quality
	}

	if flags.watermark.text != "" {
		cfg.Watermark.Text = flags.watermark.text
		cfg.Watermark.Enabled = true
	}
	if flags.footer.text != "" {
		cfg.Footer.Text = flags.footer.text
		cfg.Footer.Enabled = true
	}

	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Disable flags
	if flags.watermark.disabled {
		cfg.Watermark.Enabled = false
	}
	if flags.footer.disabled {
		cfg.Footer.Enabled = false
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveCSSContent reads the custom CSS file named by config, if any.
func resolveCSSContent(cssFile string, cfg *config.Config) (string, error) {
	path := cssFile
	if path == "" {
		path = cfg.Card.CSS
	}
	if path == "" {
		return "", nil
	}

	content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// resolveTheme determines the theme, honoring --no-theme.
func resolveTheme(flags *convertFlags, cfg *config.Config) string {
	if flags.assets.noTheme {
		return ""
	}
	return cfg.Card.Theme
}

// resolveWatermark returns the watermark text, or "" when disabled.
func resolveWatermark(flags *convertFlags, cfg *config.Config) string {
	if flags.watermark.disabled || !cfg.Watermark.Enabled {
		return ""
	}
	return cfg.Watermark.Text
}

// resolveFooter returns the raw footer text, or "" when disabled.
func resolveFooter(flags *convertFlags, cfg *config.Config) string {
	if flags.footer.disabled || !cfg.Footer.Enabled {
		return ""
	}
	return cfg.Footer.Text
}

// buildServiceOptions translates config and flags into service options.
func buildServiceOptions(flags *convertFlags, cfg *config.Config) ([]md2card.Option, error) {
	var opts []md2card.Option

	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid timeout %q: use a positive duration like 30s or 2m%s",
				flags.timeout, hints.ForTimeout())
		}
		opts = append(opts, md2card.WithTimeout(d))
	}

	if cfg.Card.Preset != "" {
		opts = append(opts, md2card.WithPreset(cfg.Card.Preset))
	}

	theme := resolveTheme(flags, cfg)
	if theme != "" {
		opts = append(opts, md2card.WithTheme(theme))
	}

	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2card.WithAssetPath(cfg.Assets.BasePath))
	}

	if h := buildHeights(&cfg.Heights); h != nil {
		opts = append(opts, md2card.WithHeights(*h))
	}

	return opts, nil
}

// buildHeights maps config calibration overrides onto the default heights.
// Returns nil when every field is zero.
func buildHeights(hc *config.HeightsConfig) *md2card.HeightConfig {
	if *hc == (config.HeightsConfig{}) {
		return nil
	}

	h := md2card.DefaultHeights()
	apply := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	apply(&h.H1, hc.H1)
	apply(&h.H2, hc.H2)
	apply(&h.H3, hc.H3)
	apply(&h.H4, hc.H4)
	apply(&h.H5, hc.H5)
	apply(&h.H6, hc.H6)
	apply(&h.ParagraphBase, hc.ParagraphBase)
	apply(&h.ParagraphLine, hc.ParagraphLine)
	apply(&h.ListItem, hc.ListItem)
	apply(&h.CodeBase, hc.CodeBase)
	apply(&h.CodeLine, hc.CodeLine)
	apply(&h.Image, hc.Image)
	apply(&h.MarginBottom, hc.MarginBottom)
	return &h
}

// imageExtension returns the file extension for the configured format.
func imageExtension(format string) string {
	if strings.EqualFold(format, "jpeg") {
		return ".jpg"
	}
	return ".png"
}
