// Package dateutil translates user-facing date format strings into Go time
// layouts. The card footer accepts formats like "DD/MM/YYYY" instead of Go's
// reference-time syntax.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is the layout used when no explicit format is given.
const DefaultDateFormat = "YYYY-MM-DD"

// formatTokens pairs footer format tokens with Go layout fragments.
// Longest tokens come first so "YYYY" wins over "YY".
var formatTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets names common footer date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// ParseDateFormat converts a footer format string into a Go time layout.
// Recognized tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text in square
// brackets is copied literally, so "[Updated] YYYY" keeps the word Updated.
// Other characters pass through unchanged.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var out strings.Builder
	out.Grow(len(format))

	for i := 0; i < len(format); {
		if format[i] == '[' {
			closing := strings.IndexByte(format[i+1:], ']')
			if closing < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			out.WriteString(format[i+1 : i+1+closing])
			i += closing + 2
			continue
		}

		if n := matchToken(format[i:], &out); n > 0 {
			i += n
			continue
		}

		out.WriteByte(format[i])
		i++
	}

	return out.String(), nil
}

// matchToken writes the layout fragment for the token at the start of s,
// returning the token length, or 0 when s starts with no token.
func matchToken(s string, out *strings.Builder) int {
	for _, t := range formatTokens {
		if strings.HasPrefix(s, t.token) {
			out.WriteString(t.layout)
			return len(t.token)
		}
	}
	return 0
}

// FormatNow renders the given time with a footer format string.
func FormatNow(format string, t time.Time) (string, error) {
	layout, err := ParseDateFormat(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
