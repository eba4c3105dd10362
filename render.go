package md2card

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2card/internal/fileutil"
	"github.com/alnah/go-md2card/internal/hints"
	"github.com/alnah/go-md2card/internal/process"
)

// imageRenderer abstracts card HTML to image capture to allow different backends.
type imageRenderer interface {
	RenderImage(ctx context.Context, htmlContent string, opts *renderOptions) ([]byte, error)
	Close() error
}

// pageRenderer abstracts image capture from an HTML file to enable testing
// without a browser.
type pageRenderer interface {
	CaptureFromFile(ctx context.Context, filePath string, opts *renderOptions) ([]byte, error)
}

// Compile-time interface checks
var (
	_ imageRenderer = (*rodCapture)(nil)
	_ pageRenderer  = (*rodRenderer)(nil)
)

// renderOptions holds options for image capture.
type renderOptions struct {
	Width   int    // viewport width in pixels
	Height  int    // viewport height in pixels
	Format  string // "png" or "jpeg"
	Quality int    // JPEG quality 1-100, ignored for PNG
}

// rodRenderer implements pageRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	// Configure launcher
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v%s", ErrBrowserConnect, err, hints.ForBrowserConnect())
	}
	r.launcher = l
	return nil
}

// Close releases browser resources. Chrome child processes are killed via
// the process group since browser.Close alone can leave them orphaned.
func (r *rodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil

	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			process.KillTree(pid)
		}
		r.launcher = nil
	}
	return err
}

// CaptureFromFile opens a local HTML file in headless Chrome at the card
// viewport and captures a screenshot.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) CaptureFromFile(ctx context.Context, filePath string, opts *renderOptions) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Card pages are laid out against an exact pixel viewport
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageLoad, err)
	}

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	imgBuf, err := page.Screenshot(false, buildScreenshotOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageCapture, err)
	}

	return imgBuf, nil
}

// buildScreenshotOptions constructs proto.PageCaptureScreenshot for the format.
func buildScreenshotOptions(opts *renderOptions) *proto.PageCaptureScreenshot {
	req := &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	}

	if opts != nil && strings.EqualFold(opts.Format, FormatJPEG) {
		req.Format = proto.PageCaptureScreenshotFormatJpeg
		quality := opts.Quality
		if quality < MinQuality || quality > MaxQuality {
			quality = DefaultQuality
		}
		req.Quality = intPtr(quality)
	}

	return req
}

// intPtr returns a pointer to an int value.
func intPtr(v int) *int {
	return &v
}

// rodCapture captures card HTML as images using headless Chrome via go-rod.
type rodCapture struct {
	renderer *rodRenderer
}

// newRodCapture creates a rodCapture with production renderer.
func newRodCapture(timeout time.Duration) *rodCapture {
	return &rodCapture{
		renderer: newRodRenderer(timeout),
	}
}

// RenderImage captures one card HTML document as an image.
func (c *rodCapture) RenderImage(ctx context.Context, htmlContent string, opts *renderOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.CaptureFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodCapture) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
