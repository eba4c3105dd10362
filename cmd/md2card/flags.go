package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// cardFlags holds card appearance flags.
type cardFlags struct {
	preset  string
	theme   string
	css     string
	format  string
	quality int
}

// watermarkFlags holds watermark-related flags.
type watermarkFlags struct {
	text     string
	disabled bool
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	text     string
	disabled bool
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	assetPath string // Override asset directory
	noTheme   bool   // Disable theme CSS
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // Output card HTML alongside images
	htmlOnly bool // Output card HTML only, skip rendering
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	card       cardFlags
	watermark  watermarkFlags
	footer     footerFlags
	assets     assetFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addCardFlags adds card appearance flags to a FlagSet.
func addCardFlags(fs *flag.FlagSet, f *cardFlags) {
	fs.StringVarP(&f.preset, "preset", "p", "", "card size: small, medium, large")
	fs.StringVar(&f.theme, "theme", "", "theme name")
	fs.StringVar(&f.css, "css", "", "custom CSS file appended after the theme")
	fs.StringVarP(&f.format, "format", "f", "", "image format: png, jpeg")
	fs.IntVar(&f.quality, "quality", 0, "JPEG quality (1-100)")
}

// addWatermarkFlags adds watermark flags to a FlagSet.
func addWatermarkFlags(fs *flag.FlagSet, f *watermarkFlags) {
	fs.StringVar(&f.text, "wm-text", "", "watermark text")
	fs.BoolVar(&f.disabled, "no-watermark", false, "disable watermark")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.text, "footer-text", "", "footer text (\"auto\" = today's date)")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable footer")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noTheme, "no-theme", false, "disable theme CSS")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "output card HTML alongside images")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output card HTML only, skip rendering")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page rendering timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addCardFlags(fs, &f.card)
	addWatermarkFlags(fs, &f.watermark)
	addFooterFlags(fs, &f.footer)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
