package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

const dateLayout = "2006-01-02"

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// parseDateBound turns a --before/--after value into a bound comparable with
// stored local_datetime values. ISO dates pass through; full timestamps keep
// their offset; anything else is parsed as natural language relative to now
// and truncated to a date.
func parseDateBound(w *when.Parser, s string, now time.Time) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02T15:04:05-07:00"), nil
	}

	for _, format := range []string{dateLayout, "2006/01/02", "01/02/2006"} {
		if t, err := time.Parse(format, s); err == nil {
			return t.Format(dateLayout), nil
		}
	}

	result, err := w.Parse(s, now)
	if err == nil && result != nil {
		return result.Time.Format(dateLayout), nil
	}

	return "", fmt.Errorf("could not parse date %q (try 2024-01-31 or \"last monday\")", s)
}
