package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   string
		expected string
	}{
		{
			name:     "iso date",
			format:   "YYYY-MM-DD",
			expected: "2006-01-02",
		},
		{
			name:     "european date",
			format:   "DD/MM/YYYY",
			expected: "02/01/2006",
		},
		{
			name:     "long month name",
			format:   "MMMM D, YYYY",
			expected: "January 2, 2006",
		},
		{
			name:     "short month and two digit year",
			format:   "MMM YY",
			expected: "Jan 06",
		},
		{
			name:     "single digit day and month",
			format:   "D.M.YYYY",
			expected: "2.1.2006",
		},
		{
			name:     "longest token wins",
			format:   "YYYYMM",
			expected: "200601",
		},
		{
			name:     "bracket escape keeps literal text",
			format:   "[Updated] YYYY",
			expected: "Updated 2006",
		},
		{
			name:     "bracket containing token letters",
			format:   "[DD] DD",
			expected: "DD 02",
		},
		{
			name:     "empty brackets",
			format:   "[]YYYY",
			expected: "2006",
		},
		{
			name:     "literal punctuation preserved",
			format:   "YYYY · MM",
			expected: "2006 · 01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.expected)
			}
		})
	}
}

func TestParseDateFormatErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
	}{
		{name: "empty format", format: ""},
		{name: "unclosed bracket", format: "[Updated YYYY"},
		{name: "too long", format: strings.Repeat("Y", MaxDateFormatLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDateFormat(tt.format)
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("error = %v, want ErrInvalidDateFormat", err)
			}
		})
	}
}

func TestFormatNow(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	got, err := FormatNow("DD/MM/YYYY", fixed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "15/03/2024" {
		t.Errorf("FormatNow() = %q, want %q", got, "15/03/2024")
	}

	if _, err := FormatNow("", fixed); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("error = %v, want ErrInvalidDateFormat", err)
	}
}

func TestDatePresetsParse(t *testing.T) {
	t.Parallel()

	for name, format := range DatePresets {
		if _, err := ParseDateFormat(format); err != nil {
			t.Errorf("preset %q format %q does not parse: %v", name, format, err)
		}
	}
}
