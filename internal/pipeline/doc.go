// Package pipeline implements the Markdown-to-card conversion stages.
//
// This package handles the stages around the pagination engine:
//   - Markdown preprocessing (line normalization, ==highlight== syntax,
//     page-break directive normalization)
//   - Markdown to HTML fragment conversion via Goldmark
//   - Wrapping finished page fragments into complete card documents
//
// Pagination itself and image rendering live in the root md2card package:
// the engine partitions the fragment stream into pages, and headless Chrome
// (go-rod) turns each wrapped page into a card image. This separation keeps
// the pipeline focused on document structure and content.
package pipeline
