package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Placeholders use Unicode Private Use Area characters. They pass through
// Goldmark unchanged (no WithUnsafe needed) and are converted back to real
// markup after HTML generation.
const (
	MarkStartPlaceholder = "\uE000" // ==highlight== open
	MarkEndPlaceholder   = "\uE001" // ==highlight== close
	PageBreakPlaceholder = "\uE002" // explicit page-break directive
)

// PageBreakMarker is the normalized page-break element the pagination engine
// recognizes. Both the class and the data attribute are signals, so either
// survives downstream HTML processing.
const PageBreakMarker = `<div class="pagebreak-marker" data-pagebreak="true"></div>`

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(.*?)==`)

	// Explicit page-break directive: an HTML comment, case-insensitive,
	// tolerant of interior whitespace.
	pageBreakDirective = regexp.MustCompile(`(?i)<!--\s*pagebreak\s*-->`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark conversion.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for
// conversion. Page-break comments must be replaced before Goldmark runs,
// because raw HTML comments are omitted without WithUnsafe.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = convertPageBreaks(content)
	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to placeholder markers.
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// convertPageBreaks replaces <!-- pagebreak --> comments with the page-break
// placeholder. The placeholder travels through Goldmark as ordinary text and
// becomes the marker element in ConvertPlaceholders.
func convertPageBreaks(content string) string {
	return pageBreakDirective.ReplaceAllString(content, PageBreakPlaceholder)
}

// ConvertPlaceholders converts placeholder characters back to markup after
// Goldmark processing. A page-break placeholder that Goldmark wrapped in its
// own paragraph becomes a top-level marker; one embedded in prose becomes a
// marker nested inside the surrounding paragraph, which the classifier also
// honors in position.
func ConvertPlaceholders(content string) string {
	content = strings.ReplaceAll(content, "<p>"+PageBreakPlaceholder+"</p>", PageBreakMarker)
	content = strings.ReplaceAll(content, PageBreakPlaceholder, PageBreakMarker)
	content = strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>")
	content = strings.ReplaceAll(content, MarkEndPlaceholder, "</mark>")
	return content
}
