package main

import (
	"errors"
	"os"

	md2card "github.com/alnah/go-md2card"
	"github.com/alnah/go-md2card/internal/config"
)

// Exit codes for md2card CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2card.ErrBrowserConnect) ||
		errors.Is(err, md2card.ErrPageCreate) ||
		errors.Is(err, md2card.ErrPageLoad) ||
		errors.Is(err, md2card.ErrImageCapture) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteImage) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, md2card.ErrEmptyMarkdown) ||
		errors.Is(err, md2card.ErrInvalidFormat) ||
		errors.Is(err, md2card.ErrInvalidQuality) ||
		errors.Is(err, md2card.ErrThemeNotFound) ||
		errors.Is(err, md2card.ErrTemplateNotFound) ||
		errors.Is(err, md2card.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
