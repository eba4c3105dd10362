package md2card

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2card/internal/dateutil"
)

// ResolveDate handles "auto" and "auto:FORMAT" syntax for footer date values.
// - "auto" → current date in YYYY-MM-DD format
// - "auto:FORMAT" → current date in custom format (e.g., "auto:DD/MM/YYYY")
// - "auto:preset" → current date using named preset (iso, european, us, long)
// - any other value → returned unchanged (passthrough)
//
// The time parameter allows injecting a fixed time for testing.
func ResolveDate(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)

	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	if lower == "auto" {
		return dateutil.FormatNow(dateutil.DefaultDateFormat, t)
	}

	if !strings.HasPrefix(lower, "auto:") {
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", dateutil.ErrInvalidDateFormat, value)
	}

	// Format tokens keep their original case, only the preset lookup folds
	format := value[len("auto:"):]
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", dateutil.ErrInvalidDateFormat)
	}
	if preset, ok := dateutil.DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}

	return dateutil.FormatNow(format, t)
}
