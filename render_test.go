package md2card

import (
	"testing"

	"github.com/go-rod/rod/lib/proto"
)

func TestBuildScreenshotOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        *renderOptions
		wantFormat  proto.PageCaptureScreenshotFormat
		wantQuality int // 0 means no quality pointer expected
	}{
		{
			name:       "nil options default to png",
			opts:       nil,
			wantFormat: proto.PageCaptureScreenshotFormatPng,
		},
		{
			name:       "empty format defaults to png",
			opts:       &renderOptions{},
			wantFormat: proto.PageCaptureScreenshotFormatPng,
		},
		{
			name:       "png ignores quality",
			opts:       &renderOptions{Format: "png", Quality: 50},
			wantFormat: proto.PageCaptureScreenshotFormatPng,
		},
		{
			name:        "jpeg carries quality",
			opts:        &renderOptions{Format: "jpeg", Quality: 75},
			wantFormat:  proto.PageCaptureScreenshotFormatJpeg,
			wantQuality: 75,
		},
		{
			name:        "jpeg uppercase accepted",
			opts:        &renderOptions{Format: "JPEG", Quality: 60},
			wantFormat:  proto.PageCaptureScreenshotFormatJpeg,
			wantQuality: 60,
		},
		{
			name:        "jpeg zero quality falls back to default",
			opts:        &renderOptions{Format: "jpeg"},
			wantFormat:  proto.PageCaptureScreenshotFormatJpeg,
			wantQuality: DefaultQuality,
		},
		{
			name:        "jpeg out-of-range quality falls back to default",
			opts:        &renderOptions{Format: "jpeg", Quality: 150},
			wantFormat:  proto.PageCaptureScreenshotFormatJpeg,
			wantQuality: DefaultQuality,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildScreenshotOptions(tt.opts)
			if got.Format != tt.wantFormat {
				t.Errorf("Format = %v, want %v", got.Format, tt.wantFormat)
			}
			if tt.wantQuality == 0 {
				if got.Quality != nil {
					t.Errorf("Quality = %d, want nil", *got.Quality)
				}
				return
			}
			if got.Quality == nil {
				t.Fatal("Quality = nil, want a value")
			}
			if *got.Quality != tt.wantQuality {
				t.Errorf("Quality = %d, want %d", *got.Quality, tt.wantQuality)
			}
		})
	}
}

func TestIntPtr(t *testing.T) {
	p := intPtr(42)
	if p == nil || *p != 42 {
		t.Errorf("intPtr(42) = %v", p)
	}

	// Each call yields an independent pointer.
	q := intPtr(42)
	if p == q {
		t.Error("intPtr returned a shared pointer")
	}
}

func TestRodRendererCloseWithoutBrowser(t *testing.T) {
	r := newRodRenderer(0)
	if err := r.Close(); err != nil {
		t.Errorf("Close() on unconnected renderer error = %v", err)
	}
}

func TestRodCaptureCloseWithoutBrowser(t *testing.T) {
	c := newRodCapture(0)
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
