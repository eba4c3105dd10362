package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestToHTMLBasicConversion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading",
			input:    "# Title",
			contains: []string{"<h1", "Title", "</h1>"},
		},
		{
			name:     "paragraph",
			input:    "Just a paragraph.",
			contains: []string{"<p>", "Just a paragraph.", "</p>"},
		},
		{
			name:     "gfm table",
			input:    "| A | B |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<th>A</th>", "<td>1</td>"},
		},
		{
			name:     "gfm strikethrough",
			input:    "~~gone~~",
			contains: []string{"<del>", "gone", "</del>"},
		},
		{
			name:     "fenced code highlighted inline",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{"<pre", "style", "main"},
		},
		{
			name:     "footnote",
			input:    "text[^1]\n\n[^1]: the note",
			contains: []string{"fn:1", "the note"},
		},
	}

	conv := NewGoldmarkConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
		})
	}
}

func TestToHTMLHardWraps(t *testing.T) {
	got, err := NewGoldmarkConverter().ToHTML(context.Background(), "line one\nline two")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if !strings.Contains(got, "<br") {
		t.Errorf("newline not rendered as <br>:\n%s", got)
	}
}

func TestToHTMLProducesFragment(t *testing.T) {
	got, err := NewGoldmarkConverter().ToHTML(context.Background(), "# Title\n\nbody")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	for _, forbidden := range []string{"<html", "<head", "<body"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("fragment contains document tag %q:\n%s", forbidden, got)
		}
	}
}

func TestToHTMLFinalizesPlaceholders(t *testing.T) {
	p := &CommonMarkPreprocessor{}
	ctx := context.Background()

	md := "before\n\n<!-- pagebreak -->\n\nafter with ==emphasis=="
	pre := p.PreprocessMarkdown(ctx, md)
	got, err := NewGoldmarkConverter().ToHTML(ctx, pre)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	if !strings.Contains(got, PageBreakMarker) {
		t.Errorf("page-break marker missing from output:\n%s", got)
	}
	if !strings.Contains(got, "<mark>emphasis</mark>") {
		t.Errorf("highlight markup missing from output:\n%s", got)
	}
	if strings.ContainsAny(got, PageBreakPlaceholder+MarkStartPlaceholder+MarkEndPlaceholder) {
		t.Errorf("placeholder characters leaked into output:\n%s", got)
	}
}

func TestToHTMLCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestToHTMLEmptyInput(t *testing.T) {
	got, err := NewGoldmarkConverter().ToHTML(context.Background(), "")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if strings.TrimSpace(got) != "" {
		t.Errorf("empty input produced %q", got)
	}
}
