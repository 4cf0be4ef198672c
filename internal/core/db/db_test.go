package db

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func TestNew(t *testing.T) {
	database := newTestDB(t)

	for _, table := range []string{"recordings", "sync_log", "schema_version"} {
		var count int
		err := database.conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to query schema: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestNew_WALMode(t *testing.T) {
	database := newTestDB(t)

	var journalMode string
	err := database.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}

	if journalMode != "wal" {
		t.Errorf("Expected WAL mode, got %s", journalMode)
	}
}

func TestNew_CreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "recordings.db")

	database, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = database.Close() }()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("Expected database file at %s: %v", dbPath, err)
	}
	if database.Path() != dbPath {
		t.Errorf("Path() = %s, want %s", database.Path(), dbPath)
	}
}

func TestNew_EmptyPath(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestNew_UnwritableLocation(t *testing.T) {
	// A regular file cannot be used as a parent directory
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(filepath.Join(blocker, "recordings.db")); err == nil {
		t.Error("Expected error when the parent path is a file")
	}
}

func TestNew_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "recordings.db")

	first, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := first.Exec(`INSERT INTO recordings (id, synced_at) VALUES ('abc123', 'now')`); err != nil {
		t.Fatal(err)
	}
	_ = first.Close()

	second, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = second.Close() }()

	n, err := second.CountAll()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Expected data to survive reopen, got %d rows", n)
	}
}

func TestSchemaCreation(t *testing.T) {
	database := newTestDB(t)

	var columnCount int
	err := database.conn.QueryRow("SELECT COUNT(*) FROM pragma_table_info('recordings')").Scan(&columnCount)
	if err != nil {
		t.Fatalf("Failed to query recordings columns: %v", err)
	}

	// id, filename, duration, start_time_ms, local_datetime, hour, weekday,
	// weekday_name, is_working_hours, directory, synced_at
	if columnCount != 11 {
		t.Errorf("Expected 11 columns in recordings table, got %d", columnCount)
	}

	err = database.conn.QueryRow("SELECT COUNT(*) FROM pragma_table_info('sync_log')").Scan(&columnCount)
	if err != nil {
		t.Fatalf("Failed to query sync_log columns: %v", err)
	}
	if columnCount != 3 {
		t.Errorf("Expected 3 columns in sync_log table, got %d", columnCount)
	}
}
