package countdown

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/beztern/launchpad/internal/platform/errors"
)

// KeyInvalidTarget localizes target validation failures.
const KeyInvalidTarget = "countdown.error.invalid_target"

// targetLayouts are tried in order. Layouts without a zone are read as UTC.
var targetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006 15:04:05 GMT-0700",
	"Jan 2, 2006 15:04:05 GMT-0700",
	"January 2, 2006 15:04:05",
}

// ParseTarget parses a launch instant. Unparseable text is an invalid input
// error rather than a zero time.
func ParseTarget(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, apperrors.EK(apperrors.KindInvalidInput, KeyInvalidTarget, "countdown target is required")
	}
	for _, layout := range targetLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.EK(apperrors.KindInvalidInput, KeyInvalidTarget, fmt.Sprintf("invalid countdown target %q", value))
}
