package db

import (
	"database/sql"
	"fmt"

	"github.com/neilberkman/recrider/internal/core/models"
)

// WeekdayCount is one bucket of GroupByWeekday
type WeekdayCount struct {
	Weekday     int    `json:"weekday"`
	WeekdayName string `json:"weekday_name"`
	Count       int    `json:"count"`
}

// HourCount is one bucket of GroupByHour
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DirectoryCount is one bucket of GroupByDirectory
type DirectoryCount struct {
	Directory string `json:"directory"`
	Count     int    `json:"count"`
}

// CountAll returns the number of cached recordings
func (db *DB) CountAll() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM recordings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recordings: %w", err)
	}
	return n, nil
}

// CountInWindow counts recordings with startHour <= hour < endHour,
// optionally restricted to Monday-Friday
func (db *DB) CountInWindow(startHour, endHour int, weekdaysOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM recordings WHERE hour >= ? AND hour < ?`
	if weekdaysOnly {
		query += ` AND weekday < 5`
	}

	var n int
	if err := db.conn.QueryRow(query, startHour, endHour).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recordings in window: %w", err)
	}
	return n, nil
}

// GroupByWeekday counts recordings per known weekday, Monday first
func (db *DB) GroupByWeekday() ([]WeekdayCount, error) {
	rows, err := db.conn.Query(`
		SELECT weekday, MAX(weekday_name), COUNT(*) AS count
		FROM recordings
		WHERE weekday IS NOT NULL
		GROUP BY weekday
		ORDER BY weekday
	`)
	if err != nil {
		return nil, fmt.Errorf("group by weekday: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []WeekdayCount
	for rows.Next() {
		var c WeekdayCount
		var name sql.NullString
		if err := rows.Scan(&c.Weekday, &name, &c.Count); err != nil {
			return nil, err
		}
		c.WeekdayName = name.String
		out = append(out, c)
	}
	return out, rows.Err()
}

// GroupByHour counts recordings per known hour of day, ascending
func (db *DB) GroupByHour() ([]HourCount, error) {
	rows, err := db.conn.Query(`
		SELECT hour, COUNT(*) AS count
		FROM recordings
		WHERE hour IS NOT NULL
		GROUP BY hour
		ORDER BY hour
	`)
	if err != nil {
		return nil, fmt.Errorf("group by hour: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []HourCount
	for rows.Next() {
		var c HourCount
		if err := rows.Scan(&c.Hour, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GroupByDirectory counts recordings per directory, largest first.
// Rows without a directory are counted under models.UnassignedDirectory.
func (db *DB) GroupByDirectory() ([]DirectoryCount, error) {
	rows, err := db.conn.Query(`
		SELECT COALESCE(directory, ?) AS label, COUNT(*) AS count
		FROM recordings
		GROUP BY label
		ORDER BY count DESC, label ASC
	`, models.UnassignedDirectory)
	if err != nil {
		return nil, fmt.Errorf("group by directory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []DirectoryCount
	for rows.Next() {
		var c DirectoryCount
		if err := rows.Scan(&c.Directory, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountStale counts recordings the latest completed sync did not return.
// They are kept in the cache; this only reports them.
func (db *DB) CountStale() (int, error) {
	var n int
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM recordings
		WHERE synced_at < (SELECT MAX(synced_at) FROM sync_log)
	`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stale recordings: %w", err)
	}
	return n, nil
}

// Stats summarizes the cache
type Stats struct {
	TotalRecordings int
	WorkingHours    int
	Undated         int
	TotalDuration   int64 // seconds
	Directories     int
	Stale           int
	SyncCount       int
	OldestRecording string // local_datetime
	NewestRecording string // local_datetime
	LastSync        *models.SyncLogEntry
}

// GetStats returns summary statistics over the cache
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}

	var oldest, newest sql.NullString
	err := db.conn.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(is_working_hours), 0),
			COALESCE(SUM(CASE WHEN local_datetime IS NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(duration), 0),
			COUNT(DISTINCT directory),
			MIN(local_datetime),
			MAX(local_datetime)
		FROM recordings
	`).Scan(
		&stats.TotalRecordings,
		&stats.WorkingHours,
		&stats.Undated,
		&stats.TotalDuration,
		&stats.Directories,
		&oldest,
		&newest,
	)
	if err != nil {
		return nil, fmt.Errorf("recording stats: %w", err)
	}
	stats.OldestRecording = oldest.String
	stats.NewestRecording = newest.String

	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM sync_log`).Scan(&stats.SyncCount); err != nil {
		return nil, fmt.Errorf("count sync log: %w", err)
	}

	if stats.Stale, err = db.CountStale(); err != nil {
		return nil, err
	}

	if stats.LastSync, err = db.LastSync(); err != nil {
		return nil, err
	}

	return stats, nil
}
