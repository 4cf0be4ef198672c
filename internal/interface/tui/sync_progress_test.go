package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/neilberkman/recrider/internal/core/models"
	"github.com/neilberkman/recrider/internal/core/syncer"
)

func TestSyncModel_Transitions(t *testing.T) {
	var m tea.Model = NewSyncModel()

	if !strings.Contains(m.View(), "Fetching recordings") {
		t.Errorf("Expected fetching view, got %q", m.View())
	}

	m, _ = m.Update(syncStartMsg{total: 4})
	m, _ = m.Update(syncItemMsg{filename: "standup.m4a"})
	view := m.View()
	if !strings.Contains(view, "(1/4)") || !strings.Contains(view, "standup.m4a") {
		t.Errorf("Expected progress view, got %q", view)
	}

	m, cmd := m.Update(syncDoneMsg{count: 4})
	if cmd == nil {
		t.Error("Expected quit command when done")
	}
	n, err := m.(SyncModel).Result()
	if n != 4 || err != nil {
		t.Errorf("Result() = %d, %v", n, err)
	}
	if !strings.Contains(m.View(), "Synced 4 recordings") {
		t.Errorf("unexpected final view %q", m.View())
	}
}

func TestSyncModel_Interrupt(t *testing.T) {
	var m tea.Model = NewSyncModel()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	if _, err := m.(SyncModel).Result(); !errors.Is(err, ErrInterrupted) {
		t.Errorf("Expected ErrInterrupted, got %v", err)
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		current, total, width int
		want                  string
	}{
		{0, 0, 80, ""},
		{1, 2, 80, " 50% (1/2)"},
		{2, 2, 10, "100% (2/2)"},
	}

	for _, tt := range tests {
		got := renderProgressBar(tt.current, tt.total, tt.width)
		if !strings.HasSuffix(got, tt.want) {
			t.Errorf("renderProgressBar(%d, %d, %d) = %q", tt.current, tt.total, tt.width, got)
		}
	}
}

func TestRunSync(t *testing.T) {
	var out bytes.Buffer

	n, err := RunSync(func(p syncer.Progress) (int, error) {
		p.Start(2)
		p.Update(models.Recording{ID: "a", Filename: "a.m4a"})
		p.Update(models.Recording{ID: "b", Filename: "b.m4a"})
		p.Finish(2)
		return 2, nil
	}, tea.WithInput(nil), tea.WithOutput(&out))

	if err != nil {
		t.Fatalf("RunSync() error = %v", err)
	}
	if n != 2 {
		t.Errorf("RunSync() = %d, want 2", n)
	}
}

func TestRunSync_PropagatesError(t *testing.T) {
	var out bytes.Buffer
	syncErr := errors.New("remote down")

	_, err := RunSync(func(p syncer.Progress) (int, error) {
		return 0, syncErr
	}, tea.WithInput(nil), tea.WithOutput(&out))

	if !errors.Is(err, syncErr) {
		t.Errorf("Expected sync error, got %v", err)
	}
}

func TestHistogram(t *testing.T) {
	out := Histogram([]Bar{{"Monday", 10}, {"Tuesday", 5}, {"Sunday", 0}}, 20)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %q", out)
	}
	if strings.Count(lines[0], "█") != 20 || strings.Count(lines[1], "█") != 10 || strings.Count(lines[2], "█") != 0 {
		t.Errorf("unexpected bar lengths:\n%s", out)
	}

	if !strings.Contains(Histogram(nil, 20), "no data") {
		t.Error("Expected placeholder for empty histogram")
	}
}
