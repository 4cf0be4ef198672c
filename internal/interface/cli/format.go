package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// formatDuration renders seconds as "3h 05m", "12m 30s" or "45s"
func formatDuration(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	h := int64(d.Hours())
	m := int64(d.Minutes()) % 60
	s := int64(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%sh %02dm", humanize.Comma(h), m)
	case m > 0:
		return fmt.Sprintf("%dm %02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// formatLocal renders a stored local_datetime for display, keeping the
// recording's own offset
func formatLocal(localDatetime string) string {
	t, err := time.Parse(time.RFC3339Nano, localDatetime)
	if err != nil {
		return localDatetime
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

// formatSince renders a sync timestamp relative to now
func formatSince(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}
