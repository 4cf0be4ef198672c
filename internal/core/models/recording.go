package models

import (
	"errors"
	"time"
)

// UnassignedDirectory labels rows with no directory in grouped output
const UnassignedDirectory = "(unassigned)"

// RemoteRecording is one item of the remote inventory
type RemoteRecording struct {
	ID               string
	Filename         string
	DurationSeconds  int64
	StartTimeEpochMs int64
}

// Validate checks if the remote item can be cached
func (r *RemoteRecording) Validate() error {
	if r.ID == "" {
		return errors.New("id is required")
	}
	if r.DurationSeconds < 0 {
		return errors.New("duration must not be negative")
	}
	if r.StartTimeEpochMs < 0 {
		return errors.New("start time must not be negative")
	}
	return nil
}

// TemporalFeatures are the local calendar attributes derived from a start time.
// All pointer fields are nil when the start time is unknown.
type TemporalFeatures struct {
	LocalDatetime  *string
	Hour           *int
	Weekday        *int // 0=Monday ... 6=Sunday
	WeekdayName    *string
	IsWorkingHours bool
}

// Recording is one cached row of the recordings table
type Recording struct {
	ID          string
	Filename    string
	Duration    int64 // seconds
	StartTimeMs int64 // epoch ms UTC, 0 when unknown
	TemporalFeatures
	Directory *string // only ever written by directory assignment
	SyncedAt  string  // ISO-8601 UTC of the last sync that touched the row
}

// NewRecording combines a remote item with its derived features
func NewRecording(r RemoteRecording, f TemporalFeatures, syncedAt time.Time) Recording {
	return Recording{
		ID:               r.ID,
		Filename:         r.Filename,
		Duration:         r.DurationSeconds,
		StartTimeMs:      r.StartTimeEpochMs,
		TemporalFeatures: f,
		SyncedAt:         FormatSyncedAt(syncedAt),
	}
}

// DirectoryOrUnassigned returns the directory label or the unassigned sentinel
func (r *Recording) DirectoryOrUnassigned() string {
	if r.Directory == nil {
		return UnassignedDirectory
	}
	return *r.Directory
}

// SyncLogEntry is one append-only audit row of the sync_log table
type SyncLogEntry struct {
	ID         int64
	SyncedAt   string
	TotalFiles int
}

// Time parses SyncedAt, returning the zero time if it is malformed
func (e *SyncLogEntry) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, e.SyncedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Tag is a remote file tag
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// SyncedAtLayout is fixed width so stored timestamps sort lexically
const SyncedAtLayout = "2006-01-02T15:04:05.000000-07:00"

// FormatSyncedAt renders a sync timestamp as ISO-8601 UTC
func FormatSyncedAt(t time.Time) string {
	return t.UTC().Format(SyncedAtLayout)
}
