package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// MinOptions is the minimum number of options a question must offer.
const MinOptions = 2

// validateLevels performs all structural checks on the given levels.
// Returns a combined error describing all problems found, or nil if valid.
func validateLevels(levels []Level) error {
	var errs []string

	if len(levels) == 0 {
		errs = append(errs, "catalog has no levels")
	}

	// Level numbers must be 1..N in order.
	for i, l := range levels {
		if want := i + 1; l.Number != want {
			errs = append(errs, fmt.Sprintf("level at position %d has number %d, want %d", i, l.Number, want))
		}
	}

	for _, l := range levels {
		if len(l.Questions) == 0 {
			errs = append(errs, fmt.Sprintf("level %d has no questions", l.Number))
		}
		for qi, q := range l.Questions {
			prefix := fmt.Sprintf("level %d question %d", l.Number, qi+1)
			if strings.TrimSpace(q.Prompt) == "" {
				errs = append(errs, prefix+": empty prompt")
			}
			if len(q.Options) < MinOptions {
				errs = append(errs, fmt.Sprintf("%s: needs at least %d options, got %d", prefix, MinOptions, len(q.Options)))
			}
			if !slices.Contains(q.Options, q.Correct) {
				errs = append(errs, fmt.Sprintf("%s: correct answer %q is not one of the options", prefix, q.Correct))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
