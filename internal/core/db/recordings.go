package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neilberkman/recrider/internal/core/models"
)

const recordingColumns = `id, filename, duration, start_time_ms, local_datetime, hour,
	weekday, weekday_name, is_working_hours, directory, synced_at`

// UpsertRecording inserts a recording or, when the id exists, overwrites
// every field except directory
func (db *DB) UpsertRecording(r models.Recording) error {
	_, err := db.conn.Exec(`
		INSERT INTO recordings (
			id, filename, duration, start_time_ms,
			local_datetime, hour, weekday, weekday_name,
			is_working_hours, synced_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename = excluded.filename,
			duration = excluded.duration,
			start_time_ms = excluded.start_time_ms,
			local_datetime = excluded.local_datetime,
			hour = excluded.hour,
			weekday = excluded.weekday,
			weekday_name = excluded.weekday_name,
			is_working_hours = excluded.is_working_hours,
			synced_at = excluded.synced_at
	`,
		r.ID,
		r.Filename,
		r.Duration,
		r.StartTimeMs,
		nullString(r.LocalDatetime),
		nullInt(r.Hour),
		nullInt(r.Weekday),
		nullString(r.WeekdayName),
		r.IsWorkingHours,
		r.SyncedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert recording %s: %w", r.ID, err)
	}
	return nil
}

// AppendSyncLog records one completed sync run
func (db *DB) AppendSyncLog(syncedAt time.Time, totalFiles int) error {
	_, err := db.conn.Exec(`
		INSERT INTO sync_log (synced_at, total_files) VALUES (?, ?)
	`, models.FormatSyncedAt(syncedAt), totalFiles)
	if err != nil {
		return fmt.Errorf("append sync log: %w", err)
	}
	return nil
}

// GetRecording returns one cached recording by id
func (db *DB) GetRecording(id string) (*models.Recording, error) {
	row := db.conn.QueryRow(`SELECT `+recordingColumns+` FROM recordings WHERE id = ?`, id)
	rec, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recording %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// RecordingFilter narrows ListRecordings
type RecordingFilter struct {
	Directory  string // exact label match
	Unassigned bool   // only rows without a directory; ignored when Directory is set
	Limit      int    // 0 means no limit
}

// ListRecordings returns cached recordings, newest start time first
func (db *DB) ListRecordings(f RecordingFilter) ([]models.Recording, error) {
	var clauses []string
	var args []interface{}

	switch {
	case f.Directory != "":
		clauses = append(clauses, "directory = ?")
		args = append(args, f.Directory)
	case f.Unassigned:
		clauses = append(clauses, "directory IS NULL")
	}

	query := `SELECT ` + recordingColumns + ` FROM recordings`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY start_time_ms DESC, id ASC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recordings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []models.Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

// ListSyncLog returns the most recent sync log entries, newest first
func (db *DB) ListSyncLog(limit int) ([]models.SyncLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.conn.Query(`
		SELECT id, synced_at, total_files FROM sync_log
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync log: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []models.SyncLogEntry
	for rows.Next() {
		var e models.SyncLogEntry
		if err := rows.Scan(&e.ID, &e.SyncedAt, &e.TotalFiles); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LastSync returns the newest sync log entry, or nil if no sync completed yet
func (db *DB) LastSync() (*models.SyncLogEntry, error) {
	entries, err := db.ListSyncLog(1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecording(s rowScanner) (*models.Recording, error) {
	var (
		rec         models.Recording
		localDT     sql.NullString
		hour        sql.NullInt64
		weekday     sql.NullInt64
		weekdayName sql.NullString
		working     sql.NullBool
		directory   sql.NullString
	)

	err := s.Scan(
		&rec.ID,
		&rec.Filename,
		&rec.Duration,
		&rec.StartTimeMs,
		&localDT,
		&hour,
		&weekday,
		&weekdayName,
		&working,
		&directory,
		&rec.SyncedAt,
	)
	if err != nil {
		return nil, err
	}

	if localDT.Valid {
		rec.LocalDatetime = &localDT.String
	}
	if hour.Valid {
		h := int(hour.Int64)
		rec.Hour = &h
	}
	if weekday.Valid {
		w := int(weekday.Int64)
		rec.Weekday = &w
	}
	if weekdayName.Valid {
		rec.WeekdayName = &weekdayName.String
	}
	rec.IsWorkingHours = working.Valid && working.Bool
	if directory.Valid {
		rec.Directory = &directory.String
	}

	return &rec, nil
}
