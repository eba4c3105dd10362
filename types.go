package md2card

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Image format constants.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// JPEG quality bounds.
const (
	MinQuality     = 1
	MaxQuality     = 100
	DefaultQuality = 90
)

// Input contains conversion parameters for one Markdown note.
type Input struct {
	Markdown  string // Markdown content (required)
	Preset    string // Page size preset name (optional, "" = converter default)
	Theme     string // Theme name (optional, "" = converter default)
	CSS       string // Custom CSS appended after the theme (optional)
	Watermark string // Watermark text overlay (optional)
	Footer    string // Footer text, supports "auto" date syntax (optional)
	Format    string // "png" or "jpeg" (optional, "" = png)
	Quality   int    // JPEG quality 1-100 (optional, 0 = default)
	HTMLOnly  bool   // Skip image rendering, return card HTML only
}

// Result holds the output of one conversion.
type Result struct {
	Fragments []string // Per-page inner HTML, in order
	Pages     []string // Per-page full card HTML documents
	Images    [][]byte // Per-page rendered images, empty when HTMLOnly
}

// PageCount returns the number of cards produced.
func (r *Result) PageCount() int {
	return len(r.Pages)
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout   time.Duration
	preset    Preset
	heights   HeightConfig
	theme     string
	assetPath string
	logger    *zap.Logger

	resolvedTheme string // theme CSS content, resolved at construction
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-page rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2card: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithPreset sets the default page size preset.
// Unknown names fall back to the medium preset.
func WithPreset(name string) Option {
	return func(s *Service) {
		s.cfg.preset, _ = LookupPreset(name)
	}
}

// WithHeights overrides the height calibration constants used by the
// pagination engine. Non-positive fields are replaced with defaults.
func WithHeights(h HeightConfig) Option {
	return func(s *Service) {
		s.cfg.heights = h.sanitize()
	}
}

// WithTheme sets the default theme name.
func WithTheme(name string) Option {
	return func(s *Service) {
		s.cfg.theme = name
	}
}

// WithLogger sets the logger used for soft warnings.
// A nil logger disables logging.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log == nil {
			log = zap.NewNop()
		}
		s.cfg.logger = log
	}
}

// WithAssetPath sets a directory of custom themes and templates.
// Custom assets take precedence with fallback to embedded defaults.
func WithAssetPath(path string) Option {
	return func(s *Service) {
		s.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset backend (filesystem, S3, database).
func WithAssetLoader(loader AssetLoader) Option {
	return func(s *Service) {
		s.publicAssetLoader = loader
	}
}

// validateInput checks that required fields are present and valid.
func validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if !isValidFormat(input.Format) {
		return fmt.Errorf("%w: %q (must be png or jpeg)", ErrInvalidFormat, input.Format)
	}
	if input.Quality != 0 && (input.Quality < MinQuality || input.Quality > MaxQuality) {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidQuality, input.Quality, MinQuality, MaxQuality)
	}
	return nil
}

// isValidFormat checks if format is a known image format (case-insensitive).
// Empty means the default format.
func isValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "", FormatPNG, FormatJPEG:
		return true
	}
	return false
}
