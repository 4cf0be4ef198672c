package syncer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/recrider/internal/core/models"
)

// Progress receives sync progress events
type Progress interface {
	Start(total int)
	Update(rec models.Recording)
	Finish(count int)
}

type noProgress struct{}

func (noProgress) Start(int)               {}
func (noProgress) Update(models.Recording) {}
func (noProgress) Finish(int)              {}

// ProgressReporter draws a text progress bar, for output that is not a terminal UI
type ProgressReporter struct {
	writer    io.Writer
	total     int
	current   int
	startTime time.Time
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(w io.Writer) *ProgressReporter {
	return &ProgressReporter{writer: w}
}

// Start resets the bar for total recordings
func (p *ProgressReporter) Start(total int) {
	p.total = total
	p.current = 0
	p.startTime = time.Now()
}

// Update advances the bar by one recording
func (p *ProgressReporter) Update(rec models.Recording) {
	p.current++
	if p.total == 0 {
		return
	}

	const barWidth = 40
	filled := barWidth * p.current / p.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	pct := float64(p.current) / float64(p.total) * 100

	name := rec.Filename
	if len(name) > 50 {
		name = name[:47] + "..."
	}

	_, _ = fmt.Fprintf(p.writer, "\r[%s] %3.0f%% (%d/%d) %s", bar, pct, p.current, p.total, name)
}

// Finish completes the progress display
func (p *ProgressReporter) Finish(count int) {
	if p.total > 0 {
		_, _ = fmt.Fprintln(p.writer)
	}
	elapsed := time.Since(p.startTime)
	_, _ = fmt.Fprintf(p.writer, "Synced %s recordings in %s\n", humanize.Comma(int64(count)), elapsed.Round(time.Millisecond))
}
