package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Bar is one labelled row of a histogram
type Bar struct {
	Label string
	Count int
}

// Histogram renders one horizontal bar per row, scaled so the largest
// count fills width cells
func Histogram(rows []Bar, width int) string {
	if len(rows) == 0 {
		return Meta("(no data)") + "\n"
	}
	if width < 10 {
		width = 10
	}

	maxCount, labelWidth := 0, 0
	for _, r := range rows {
		if r.Count > maxCount {
			maxCount = r.Count
		}
		if w := lipgloss.Width(r.Label); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for _, r := range rows {
		filled := 0
		if maxCount > 0 {
			filled = width * r.Count / maxCount
		}
		if filled == 0 && r.Count > 0 {
			filled = 1
		}

		label := labelStyle.Render(r.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(r.Label)))
		bar := barStyle.Render(strings.Repeat("█", filled))
		fmt.Fprintf(&b, "%s  %s %s\n", label, bar, humanize.Comma(int64(r.Count)))
	}
	return b.String()
}
