package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// migration is one forward-only schema step. Steps must be safe on a
// database that already has the change applied.
type migration struct {
	version int
	name    string
	apply   func(tx *sql.Tx) error
}

var migrations = []migration{
	{1, "add recordings.directory", migration001AddDirectory},
	{2, "add recording indexes", migration002AddIndexes},
}

// LatestSchemaVersion is the schema version this binary writes
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the version recorded in schema_version, 0 for a fresh database
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.conn.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// migrate applies migrations newer than the recorded schema version
func (db *DB) migrate() error {
	current, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	latest := LatestSchemaVersion()
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := db.applyMigration(m); err != nil {
			return fmt.Errorf("migration %03d (%s): %w", m.version, m.name, err)
		}
	}

	return nil
}

func (db *DB) applyMigration(m migration) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := m.apply(tx); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM schema_version`); err != nil {
		return fmt.Errorf("clear version: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, m.version); err != nil {
		return fmt.Errorf("set version: %w", err)
	}

	return tx.Commit()
}

// migration001AddDirectory adds the directory column to stores created
// before directory assignment existed
func migration001AddDirectory(tx *sql.Tx) error {
	has, err := columnExists(tx, "recordings", "directory")
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	if _, err := tx.Exec(`ALTER TABLE recordings ADD COLUMN directory TEXT`); err != nil {
		return fmt.Errorf("add directory column: %w", err)
	}
	return nil
}

func migration002AddIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_recordings_directory ON recordings(directory);
		CREATE INDEX IF NOT EXISTS idx_recordings_weekday ON recordings(weekday);
		CREATE INDEX IF NOT EXISTS idx_recordings_hour ON recordings(hour);
		CREATE INDEX IF NOT EXISTS idx_recordings_local_datetime ON recordings(local_datetime);
	`)
	return err
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	var tableName string
	err := tx.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name=?
	`, table).Scan(&tableName)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("table %s does not exist", table)
	}
	if err != nil {
		return false, err
	}

	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name=?`, table, column).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
