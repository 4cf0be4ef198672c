package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/neilberkman/recrider/internal/core/models"
	"github.com/neilberkman/recrider/internal/core/syncer"
)

// ErrInterrupted is returned when the user quits the sync view early
var ErrInterrupted = errors.New("sync interrupted")

type syncStartMsg struct{ total int }

type syncItemMsg struct{ filename string }

type syncDoneMsg struct {
	count int
	err   error
}

// SyncModel shows a spinner and progress bar while a sync runs
type SyncModel struct {
	spinner  spinner.Model
	total    int
	current  int
	filename string
	fetching bool
	done     bool
	count    int
	err      error
	width    int
}

// NewSyncModel creates a sync view waiting for the remote inventory
func NewSyncModel() SyncModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return SyncModel{spinner: s, fetching: true, width: 80}
}

func (m SyncModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m SyncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrInterrupted
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case syncStartMsg:
		m.fetching = false
		m.total = msg.total

	case syncItemMsg:
		m.current++
		m.filename = msg.filename

	case syncDoneMsg:
		m.done = true
		m.count = msg.count
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m SyncModel) View() string {
	if m.done {
		if m.err != nil {
			return Failure(fmt.Sprintf("\n  ✗ Sync failed: %v\n\n", m.err))
		}
		return Success(fmt.Sprintf("\n  ✓ Synced %s recordings\n\n", humanize.Comma(int64(m.count))))
	}

	if m.fetching {
		return fmt.Sprintf("\n  %s Fetching recordings from Plaud\n\n", m.spinner.View())
	}

	return fmt.Sprintf("\n  %s %s\n  %s\n\n",
		m.spinner.View(),
		renderProgressBar(m.current, m.total, m.width),
		Meta(truncate(m.filename, 60)))
}

// Result returns the synced count and error once the view has finished
func (m SyncModel) Result() (int, error) {
	return m.count, m.err
}

// renderProgressBar draws the same bar as the plain text reporter
func renderProgressBar(current, total int, width int) string {
	if total == 0 {
		return ""
	}

	pct := float64(current) / float64(total) * 100

	barWidth := width - 30 // Leave space for percentage and counts
	if barWidth > 50 {
		barWidth = 50
	}
	if barWidth < 20 {
		barWidth = 20
	}

	filled := barWidth * current / total
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	return fmt.Sprintf("[%s] %3.0f%% (%d/%d)", bar, pct, current, total)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// programProgress forwards sync events to a running program
type programProgress struct {
	program *tea.Program
}

func (p programProgress) Start(total int) { p.program.Send(syncStartMsg{total: total}) }

func (p programProgress) Update(rec models.Recording) {
	p.program.Send(syncItemMsg{filename: rec.Filename})
}

func (p programProgress) Finish(int) {}

// RunSync runs fn in the background while the sync view renders its progress
func RunSync(fn func(progress syncer.Progress) (int, error), opts ...tea.ProgramOption) (int, error) {
	p := tea.NewProgram(NewSyncModel(), opts...)

	go func() {
		n, err := fn(programProgress{program: p})
		p.Send(syncDoneMsg{count: n, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	return final.(SyncModel).Result()
}
