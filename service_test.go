package md2card

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2card/internal/pipeline"
)

// Mock implementations for testing.

type mockPreprocessor struct {
	called bool
	input  string
	output string
}

func (m *mockPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	m.called = true
	m.input = content
	if m.output != "" {
		return m.output
	}
	return content
}

type mockHTMLConverter struct {
	called bool
	input  string
	output string
	err    error
}

func (m *mockHTMLConverter) ToHTML(ctx context.Context, content string) (string, error) {
	m.called = true
	m.input = content
	if m.err != nil {
		return "", m.err
	}
	if m.output != "" {
		return m.output, nil
	}
	return "<p>" + content + "</p>", nil
}

type mockCardWrapper struct {
	calls []pipeline.CardData
	err   error
	panic bool
}

func (m *mockCardWrapper) WrapPage(ctx context.Context, pageHTML string, data *pipeline.CardData) (string, error) {
	if m.panic {
		panic("wrapper exploded")
	}
	if data != nil {
		m.calls = append(m.calls, *data)
	}
	if m.err != nil {
		return "", m.err
	}
	return "<!DOCTYPE html>" + pageHTML, nil
}

type mockImageRenderer struct {
	calls  int
	opts   *renderOptions
	output []byte
	err    error
	closed bool
}

func (m *mockImageRenderer) RenderImage(ctx context.Context, htmlContent string, opts *renderOptions) ([]byte, error) {
	m.calls++
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("IMG"), nil
}

func (m *mockImageRenderer) Close() error {
	m.closed = true
	return nil
}

// Test options for dependency injection (not exported).

func withPreprocessor(p pipeline.MarkdownPreprocessor) Option {
	return func(s *Service) {
		s.preprocessor = p
	}
}

func withHTMLConverter(c pipeline.HTMLConverter) Option {
	return func(s *Service) {
		s.htmlConverter = c
	}
}

func withCardWrapper(w pipeline.CardWrapper) Option {
	return func(s *Service) {
		s.cardWrapper = w
	}
}

func withRenderer(r imageRenderer) Option {
	return func(s *Service) {
		s.renderer = r
	}
}

// newTestService builds a Service that never touches a browser.
func newTestService(t *testing.T, opts ...Option) (*Service, *mockImageRenderer) {
	t.Helper()
	renderer := &mockImageRenderer{}
	svc, err := NewService(append([]Option{withRenderer(renderer)}, opts...)...)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc, renderer
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{
			name:    "valid input",
			input:   Input{Markdown: "# Hello"},
			wantErr: nil,
		},
		{
			name:    "empty markdown",
			input:   Input{Markdown: ""},
			wantErr: ErrEmptyMarkdown,
		},
		{
			name:    "png format",
			input:   Input{Markdown: "x", Format: "png"},
			wantErr: nil,
		},
		{
			name:    "jpeg format uppercase",
			input:   Input{Markdown: "x", Format: "JPEG"},
			wantErr: nil,
		},
		{
			name:    "unknown format",
			input:   Input{Markdown: "x", Format: "webp"},
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "zero quality means default",
			input:   Input{Markdown: "x", Quality: 0},
			wantErr: nil,
		},
		{
			name:    "quality in range",
			input:   Input{Markdown: "x", Quality: 85},
			wantErr: nil,
		},
		{
			name:    "quality too high",
			input:   Input{Markdown: "x", Quality: 101},
			wantErr: ErrInvalidQuality,
		},
		{
			name:    "quality negative",
			input:   Input{Markdown: "x", Quality: -1},
			wantErr: ErrInvalidQuality,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInput(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateInput() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvert_Success(t *testing.T) {
	preprocessor := &mockPreprocessor{output: "preprocessed"}
	htmlConv := &mockHTMLConverter{output: "<p>alpha</p>" + markerDiv + "<p>beta</p>"}
	wrapper := &mockCardWrapper{}

	svc, renderer := newTestService(t,
		withPreprocessor(preprocessor),
		withHTMLConverter(htmlConv),
		withCardWrapper(wrapper),
	)

	result, err := svc.Convert(context.Background(), Input{Markdown: "# Hello"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if !preprocessor.called {
		t.Error("preprocessor was not called")
	}
	if preprocessor.input != "# Hello" {
		t.Errorf("preprocessor input = %q, want %q", preprocessor.input, "# Hello")
	}
	if htmlConv.input != "preprocessed" {
		t.Errorf("htmlConverter input = %q, want %q", htmlConv.input, "preprocessed")
	}

	// The marker splits the fragment into two cards.
	if len(result.Fragments) != 2 {
		t.Fatalf("Fragments = %d, want 2", len(result.Fragments))
	}
	if result.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", result.PageCount())
	}
	if len(result.Images) != 2 {
		t.Errorf("Images = %d, want 2", len(result.Images))
	}
	if renderer.calls != 2 {
		t.Errorf("renderer called %d times, want 2", renderer.calls)
	}

	// Page numbering flows through the wrapper data.
	if len(wrapper.calls) != 2 {
		t.Fatalf("wrapper called %d times, want 2", len(wrapper.calls))
	}
	for i, data := range wrapper.calls {
		if data.PageNumber != i+1 {
			t.Errorf("page %d PageNumber = %d", i, data.PageNumber)
		}
		if data.PageCount != 2 {
			t.Errorf("page %d PageCount = %d, want 2", i, data.PageCount)
		}
		if data.Width != 1080 || data.Height != 1440 {
			t.Errorf("page %d geometry = %dx%d, want 1080x1440", i, data.Width, data.Height)
		}
		if data.ThemeCSS == "" {
			t.Errorf("page %d has no theme CSS", i)
		}
	}
}

func TestConvert_HTMLOnly(t *testing.T) {
	svc, renderer := newTestService(t,
		withHTMLConverter(&mockHTMLConverter{output: "<p>body</p>"}),
		withCardWrapper(&mockCardWrapper{}),
	)

	result, err := svc.Convert(context.Background(), Input{Markdown: "x", HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if len(result.Pages) != 1 {
		t.Errorf("Pages = %d, want 1", len(result.Pages))
	}
	if len(result.Images) != 0 {
		t.Errorf("Images = %d, want 0 in HTMLOnly mode", len(result.Images))
	}
	if renderer.calls != 0 {
		t.Errorf("renderer called %d times, want 0", renderer.calls)
	}
}

func TestConvert_ValidationError(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Convert(context.Background(), Input{Markdown: ""})
	if !errors.Is(err, ErrEmptyMarkdown) {
		t.Errorf("Convert() error = %v, want %v", err, ErrEmptyMarkdown)
	}
}

func TestConvert_HTMLConverterError(t *testing.T) {
	convErr := errors.New("goldmark choked")
	svc, _ := newTestService(t, withHTMLConverter(&mockHTMLConverter{err: convErr}))

	_, err := svc.Convert(context.Background(), Input{Markdown: "x"})
	if !errors.Is(err, convErr) {
		t.Errorf("Convert() error = %v, want wrapped %v", err, convErr)
	}
}

func TestConvert_WrapperError(t *testing.T) {
	wrapErr := errors.New("template broken")
	svc, _ := newTestService(t,
		withHTMLConverter(&mockHTMLConverter{output: "<p>x</p>"}),
		withCardWrapper(&mockCardWrapper{err: wrapErr}),
	)

	_, err := svc.Convert(context.Background(), Input{Markdown: "x"})
	if !errors.Is(err, wrapErr) {
		t.Errorf("Convert() error = %v, want wrapped %v", err, wrapErr)
	}
}

func TestConvert_RendererError(t *testing.T) {
	renderer := &mockImageRenderer{err: ErrImageCapture}
	svc, err := NewService(
		withRenderer(renderer),
		withHTMLConverter(&mockHTMLConverter{output: "<p>x</p>"}),
		withCardWrapper(&mockCardWrapper{}),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	_, err = svc.Convert(context.Background(), Input{Markdown: "x"})
	if !errors.Is(err, ErrImageCapture) {
		t.Errorf("Convert() error = %v, want %v", err, ErrImageCapture)
	}
}

func TestConvert_RecoversFromPanic(t *testing.T) {
	svc, _ := newTestService(t,
		withHTMLConverter(&mockHTMLConverter{output: "<p>x</p>"}),
		withCardWrapper(&mockCardWrapper{panic: true}),
	)

	_, err := svc.Convert(context.Background(), Input{Markdown: "x"})
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("Convert() error = %v, want recovered internal error", err)
	}
}

func TestConvert_CancelledContext(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Convert(ctx, Input{Markdown: "# Hello"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConvert_PresetOverride(t *testing.T) {
	wrapper := &mockCardWrapper{}
	svc, _ := newTestService(t,
		withHTMLConverter(&mockHTMLConverter{output: "<p>x</p>"}),
		withCardWrapper(wrapper),
	)

	_, err := svc.Convert(context.Background(), Input{Markdown: "x", Preset: "small"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(wrapper.calls) != 1 {
		t.Fatalf("wrapper called %d times, want 1", len(wrapper.calls))
	}
	if wrapper.calls[0].Width != 720 || wrapper.calls[0].Height != 960 {
		t.Errorf("geometry = %dx%d, want 720x960",
			wrapper.calls[0].Width, wrapper.calls[0].Height)
	}
}

func TestConvert_ThemeOverride(t *testing.T) {
	svc, _ := newTestService(t,
		withHTMLConverter(&mockHTMLConverter{output: "<p>x</p>"}),
		withCardWrapper(&mockCardWrapper{}),
	)

	t.Run("known theme", func(t *testing.T) {
		_, err := svc.Convert(context.Background(), Input{Markdown: "x", Theme: "dark"})
		if err != nil {
			t.Errorf("Convert() error = %v", err)
		}
	})

	t.Run("unknown theme", func(t *testing.T) {
		_, err := svc.Convert(context.Background(), Input{Markdown: "x", Theme: "neon"})
		if !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("Convert() error = %v, want %v", err, ErrThemeNotFound)
		}
	})
}

func TestConvert_FooterAutoDate(t *testing.T) {
	wrapper := &mockCardWrapper{}
	svc, _ := newTestService(t,
		withHTMLConverter(&mockHTMLConverter{output: "<p>x</p>"}),
		withCardWrapper(wrapper),
	)

	_, err := svc.Convert(context.Background(), Input{Markdown: "x", Footer: "auto"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	footer := wrapper.calls[0].Footer
	if footer == "auto" || footer == "" {
		t.Errorf("footer = %q, want a resolved date", footer)
	}
	if !strings.Contains(footer, time.Now().Format("2006")) {
		t.Errorf("footer %q does not carry the current year", footer)
	}
}

func TestConvert_FormatAndQualityReachRenderer(t *testing.T) {
	svc, renderer := newTestService(t,
		withHTMLConverter(&mockHTMLConverter{output: "<p>x</p>"}),
		withCardWrapper(&mockCardWrapper{}),
	)

	_, err := svc.Convert(context.Background(), Input{Markdown: "x", Format: "JPEG", Quality: 75})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if renderer.opts.Format != "jpeg" {
		t.Errorf("renderer format = %q, want %q", renderer.opts.Format, "jpeg")
	}
	if renderer.opts.Quality != 75 {
		t.Errorf("renderer quality = %d, want 75", renderer.opts.Quality)
	}
}

func TestNewService(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		svc, _ := newTestService(t)
		if svc.cfg.theme != DefaultTheme {
			t.Errorf("theme = %q, want %q", svc.cfg.theme, DefaultTheme)
		}
		if svc.cfg.preset.Name != PresetMedium {
			t.Errorf("preset = %q, want %q", svc.cfg.preset.Name, PresetMedium)
		}
		if svc.cfg.timeout != defaultTimeout {
			t.Errorf("timeout = %v, want %v", svc.cfg.timeout, defaultTimeout)
		}
		if svc.cfg.resolvedTheme == "" {
			t.Error("default theme CSS not resolved at construction")
		}
	})

	t.Run("unknown theme fails at construction", func(t *testing.T) {
		_, err := NewService(withRenderer(&mockImageRenderer{}), WithTheme("missing"))
		if !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("NewService() error = %v, want %v", err, ErrThemeNotFound)
		}
	})

	t.Run("invalid asset path fails at construction", func(t *testing.T) {
		_, err := NewService(withRenderer(&mockImageRenderer{}), WithAssetPath("/no/such/dir"))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewService() error = %v, want %v", err, ErrInvalidAssetPath)
		}
	})
}

func TestWithTimeout(t *testing.T) {
	svc, _ := newTestService(t, WithTimeout(5*time.Second))
	if svc.cfg.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", svc.cfg.timeout)
	}

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

func TestService_Close(t *testing.T) {
	renderer := &mockImageRenderer{}
	svc, err := NewService(withRenderer(renderer))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !renderer.closed {
		t.Error("renderer was not closed")
	}
}

func TestWithAssetLoader(t *testing.T) {
	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatal(err)
	}
	svc, _ := newTestService(t, WithAssetLoader(loader))
	if _, err := svc.loadTheme(DefaultTheme); err != nil {
		t.Errorf("loadTheme through custom loader: %v", err)
	}
}
