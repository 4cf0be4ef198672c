package db

import (
	"errors"
	"fmt"
	"strings"
)

// DirectoryFilter selects the recordings a directory assignment applies to.
// All set fields are combined with AND; the zero value matches every row.
type DirectoryFilter struct {
	Before           string // exclusive upper bound on local_datetime
	After            string // inclusive lower bound on local_datetime
	WorkingHoursOnly bool   // is_working_hours = 1, takes precedence over WeekdaysOnly
	WeekdaysOnly     bool   // weekday < 5
}

// IsEmpty reports whether the filter matches every row
func (f DirectoryFilter) IsEmpty() bool {
	return f.Before == "" && f.After == "" && !f.WorkingHoursOnly && !f.WeekdaysOnly
}

func (f DirectoryFilter) where() (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if f.Before != "" {
		clauses = append(clauses, "local_datetime < ?")
		args = append(args, f.Before)
	}
	if f.After != "" {
		clauses = append(clauses, "local_datetime >= ?")
		args = append(args, f.After)
	}
	if f.WorkingHoursOnly {
		clauses = append(clauses, "is_working_hours = 1")
	} else if f.WeekdaysOnly {
		clauses = append(clauses, "weekday < 5")
	}

	if len(clauses) == 0 {
		return "1=1", nil
	}
	return strings.Join(clauses, " AND "), args
}

// AssignDirectory sets directory = label on every recording matching f
// and returns the number of rows updated
func (db *DB) AssignDirectory(label string, f DirectoryFilter) (int, error) {
	if label == "" {
		return 0, errors.New("directory label is required")
	}

	where, args := f.where()
	res, err := db.conn.Exec(`UPDATE recordings SET directory = ? WHERE `+where, append([]interface{}{label}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("assign directory %q: %w", label, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("assign directory %q: %w", label, err)
	}
	return int(n), nil
}

// IDsInDirectory returns the ids of every recording carrying label
func (db *DB) IDsInDirectory(label string) ([]string, error) {
	rows, err := db.conn.Query(`SELECT id FROM recordings WHERE directory = ? ORDER BY id`, label)
	if err != nil {
		return nil, fmt.Errorf("list directory %q: %w", label, err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ClearDirectory removes label from every recording carrying it.
// Remote tags are left alone.
func (db *DB) ClearDirectory(label string) (int, error) {
	res, err := db.conn.Exec(`UPDATE recordings SET directory = NULL WHERE directory = ?`, label)
	if err != nil {
		return 0, fmt.Errorf("clear directory %q: %w", label, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
