package md2card

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-md2card/internal/assets"
	"github.com/alnah/go-md2card/internal/hints"
	"github.com/alnah/go-md2card/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CardWrapper          = (*pipeline.CardWrapping)(nil)
	_ imageRenderer                 = (*rodCapture)(nil)
	_ pageRenderer                  = (*rodRenderer)(nil)
)

// Service orchestrates the markdown-to-card pipeline.
// Create with NewService(), use Convert() for conversion, and Close() when done.
type Service struct {
	cfg               serviceConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	preprocessor      pipeline.MarkdownPreprocessor
	htmlConverter     pipeline.HTMLConverter
	cardWrapper       pipeline.CardWrapper
	renderer          imageRenderer
}

// publicToInternalAdapter wraps public AssetLoader to internal assets.AssetLoader.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadTheme(name)
}

func (a *publicToInternalAdapter) LoadTemplate(name string) (string, error) {
	return a.pub.LoadTemplate(name)
}

// NewService creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithPreset, WithTheme).
// Returns error if asset loading fails.
func NewService(opts ...Option) (*Service, error) {
	s := &Service{
		cfg: serviceConfig{
			timeout: defaultTimeout,
			preset:  presets[DefaultPreset],
			heights: DefaultHeights(),
			theme:   DefaultTheme,
			logger:  zap.NewNop(),
		},
		assetLoader:   assets.NewEmbeddedLoader(),
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cardWrapper:   pipeline.NewCardWrapping(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Handle WithAssetPath: resolve to internal loader
	if s.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(s.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		s.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if s.publicAssetLoader != nil {
		s.assetLoader = &publicToInternalAdapter{pub: s.publicAssetLoader}
	}

	// Resolve the default theme to CSS content up front so a bad theme name
	// fails at construction, not mid-batch.
	css, err := s.loadTheme(s.cfg.theme)
	if err != nil {
		return nil, err
	}
	s.cfg.resolvedTheme = css

	// Create image renderer if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodCapture(s.cfg.timeout)
	}

	return s, nil
}

// Convert runs the full pipeline and returns the per-page fragments, card
// HTML documents, and rendered images.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, image rendering is skipped (for debugging).
// Recovers from internal panics to prevent crashes from propagating to callers.
func (s *Service) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Resolve per-input overrides against service defaults
	preset := s.cfg.preset
	if input.Preset != "" {
		preset, _ = LookupPreset(input.Preset)
	}

	themeCSS := s.cfg.resolvedTheme
	if input.Theme != "" && !strings.EqualFold(input.Theme, s.cfg.theme) {
		themeCSS, err = s.loadTheme(input.Theme)
		if err != nil {
			return nil, err
		}
	}

	footer := input.Footer
	if footer != "" {
		footer, err = ResolveDate(footer, time.Now())
		if err != nil {
			return nil, fmt.Errorf("resolving footer date: %w", err)
		}
	}

	// Preprocess markdown
	mdContent := s.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to an HTML fragment
	htmlContent, err := s.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Partition the fragment into pages
	paginator := NewPaginator(
		WithPageSize(preset.Name),
		WithHeightConfig(s.cfg.heights),
		WithPaginationLogger(s.cfg.logger),
	)
	fragments := paginator.Paginate(htmlContent)

	res := &Result{
		Fragments: fragments,
		Pages:     make([]string, 0, len(fragments)),
	}

	// Wrap each page fragment in the full card document
	for i, fragment := range fragments {
		data := &pipeline.CardData{
			Width:         preset.Width,
			Height:        preset.Height,
			PaddingTop:    preset.PaddingTop,
			PaddingBottom: preset.PaddingBottom,
			PaddingSides:  preset.PaddingSides,
			ThemeCSS:      themeCSS,
			UserCSS:       input.CSS,
			Watermark:     input.Watermark,
			Footer:        footer,
			PageNumber:    i + 1,
			PageCount:     len(fragments),
		}
		page, err := s.cardWrapper.WrapPage(ctx, fragment, data)
		if err != nil {
			return nil, fmt.Errorf("wrapping page %d: %w", i+1, err)
		}
		res.Pages = append(res.Pages, page)
	}

	// Skip image rendering if HTMLOnly mode
	if input.HTMLOnly {
		return res, nil
	}

	// Capture each card at the preset viewport
	renderOpts := &renderOptions{
		Width:   preset.Width,
		Height:  preset.Height,
		Format:  strings.ToLower(input.Format),
		Quality: input.Quality,
	}
	res.Images = make([][]byte, 0, len(res.Pages))
	for i, page := range res.Pages {
		img, err := s.renderer.RenderImage(ctx, page, renderOpts)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d: %w", i+1, err)
		}
		res.Images = append(res.Images, img)
	}

	return res, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}

// loadTheme resolves a theme name or CSS file content through the asset loader.
func (s *Service) loadTheme(name string) (string, error) {
	css, err := s.assetLoader.LoadStyle(name)
	if err != nil {
		err = convertAssetError(err)
		if errors.Is(err, ErrThemeNotFound) {
			err = fmt.Errorf("%w%s", err, hints.ForThemeNotFound(Themes()))
		}
		return "", err
	}
	return css, nil
}
