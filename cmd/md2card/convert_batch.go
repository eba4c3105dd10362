package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2card "github.com/alnah/go-md2card"
	"github.com/alnah/go-md2card/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadCSS      = errors.New("failed to read CSS file")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteImage   = errors.New("failed to write image file")
	ErrServiceInit  = errors.New("failed to initialize conversion service")
)

// CardConverter is the interface for the conversion service.
type CardConverter interface {
	Convert(ctx context.Context, input md2card.Input) (*md2card.Result, error)
}

// Compile-time interface implementation check.
var _ CardConverter = (*md2card.Service)(nil)

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() (CardConverter, error)
	Release(CardConverter)
	Size() int
	Close() error
}

// servicePoolAdapter wraps the library pool behind the CLI Pool interface.
type servicePoolAdapter struct {
	pool *md2card.ServicePool
}

// newServicePool creates the production pool.
func newServicePool(size int, opts ...md2card.Option) Pool {
	return &servicePoolAdapter{pool: md2card.NewServicePool(size, opts...)}
}

func (a *servicePoolAdapter) Acquire() (CardConverter, error) {
	return a.pool.Acquire()
}

func (a *servicePoolAdapter) Release(svc CardConverter) {
	if s, ok := svc.(*md2card.Service); ok {
		a.pool.Release(s)
	}
}

func (a *servicePoolAdapter) Size() int    { return a.pool.Size() }
func (a *servicePoolAdapter) Close() error { return a.pool.Close() }

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath string
	OutputDir string
	PageCount int
	Err       error
	Duration  time.Duration
}

// convertBatch processes files concurrently using the service pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc, err := pool.Acquire()
			if err != nil {
				// Service creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %v", ErrServiceInit, err),
					}
				}
				return
			}
			defer pool.Release(svc)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, svc, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and writes one image per card page.
func convertFile(ctx context.Context, service CardConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath: f.InputPath,
		OutputDir: f.OutputDir,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	if err := os.MkdirAll(f.OutputDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
		result.Duration = time.Since(start)
		return result
	}

	convResult, err := service.Convert(ctx, md2card.Input{
		Markdown:  string(content),
		Preset:    params.preset,
		Theme:     params.theme,
		CSS:       params.css,
		Watermark: params.watermark,
		Footer:    params.footer,
		Format:    params.format,
		Quality:   params.quality,
		HTMLOnly:  params.htmlOnly,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.PageCount = convResult.PageCount()

	// Write card HTML if requested (--html or --html-only)
	if params.htmlOnly || params.htmlOutput {
		for i, page := range convResult.Pages {
			htmlPath := pageOutputPath(f, i+1, ".html")
			// #nosec G306 -- HTML files are meant to be readable
			if err := os.WriteFile(htmlPath, []byte(page), filePermissions); err != nil {
				result.Err = fmt.Errorf("failed to write HTML file: %w", err)
				result.Duration = time.Since(start)
				return result
			}
		}
		if params.htmlOnly {
			result.Duration = time.Since(start)
			return result
		}
	}

	// Write one image per page
	ext := imageExtension(params.format)
	for i, img := range convResult.Images {
		imgPath := pageOutputPath(f, i+1, ext)
		// #nosec G306 -- images are meant to be readable
		if err := os.WriteFile(imgPath, img, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteImage, err)
			result.Duration = time.Since(start)
			return result
		}
	}

	result.Duration = time.Since(start)
	return result
}

// pageOutputPath names one page's output file, e.g. notes-02.png.
func pageOutputPath(f FileToConvert, page int, ext string) string {
	return filepath.Join(f.OutputDir, fmt.Sprintf("%s-%02d%s", f.BaseName, page, ext))
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d cards, %v)\n",
				r.InputPath, r.OutputDir, r.PageCount, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %d card(s) in %s\n", r.PageCount, r.OutputDir)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
