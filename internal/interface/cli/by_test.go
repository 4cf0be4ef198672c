package cli

import (
	"os"
	"testing"
	"time"

	"github.com/neilberkman/recrider/internal/core/db"
	"github.com/neilberkman/recrider/internal/core/models"
	"github.com/neilberkman/recrider/internal/core/temporal"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := db.New(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = database.Close() })

	window := temporal.WorkWindow{Location: time.UTC, Start: 9, End: 18}
	for _, r := range []models.RemoteRecording{
		{ID: "a", StartTimeEpochMs: time.Date(2023, 11, 13, 9, 0, 0, 0, time.UTC).UnixMilli()},
		{ID: "b", StartTimeEpochMs: time.Date(2023, 11, 13, 14, 0, 0, 0, time.UTC).UnixMilli()},
		{ID: "c", StartTimeEpochMs: time.Date(2023, 11, 19, 9, 0, 0, 0, time.UTC).UnixMilli()},
	} {
		if err := database.UpsertRecording(models.NewRecording(r, temporal.Derive(r.StartTimeEpochMs, window), time.Now())); err != nil {
			t.Fatal(err)
		}
	}
	return database
}

func TestGroupRecordings(t *testing.T) {
	database := setupTestDB(t)

	tests := []struct {
		by         string
		wantLabels []string
		wantCounts []int
	}{
		{"weekday", []string{"Monday", "Sunday"}, []int{2, 1}},
		{"hour", []string{"09:00", "14:00"}, []int{2, 1}},
		{"directory", []string{models.UnassignedDirectory}, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.by, func(t *testing.T) {
			rows, bars, err := groupRecordings(database, tt.by)
			if err != nil {
				t.Fatalf("groupRecordings(%s) error = %v", tt.by, err)
			}
			if rows == nil {
				t.Error("Expected raw rows")
			}
			if len(bars) != len(tt.wantLabels) {
				t.Fatalf("bars = %+v", bars)
			}
			for i, b := range bars {
				if b.Label != tt.wantLabels[i] || b.Count != tt.wantCounts[i] {
					t.Errorf("bar %d = %+v, want %s/%d", i, b, tt.wantLabels[i], tt.wantCounts[i])
				}
			}
		})
	}

	if _, _, err := groupRecordings(database, "month"); err == nil {
		t.Error("Expected error for unknown grouping")
	}
}
