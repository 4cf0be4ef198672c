package db

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

// legacySchema is the layout written before directories existed
const legacySchema = `
CREATE TABLE recordings (
	id               TEXT PRIMARY KEY,
	filename         TEXT NOT NULL DEFAULT '',
	duration         INTEGER NOT NULL DEFAULT 0,
	start_time_ms    INTEGER NOT NULL DEFAULT 0,
	local_datetime   TEXT,
	hour             INTEGER,
	weekday          INTEGER,
	weekday_name     TEXT,
	is_working_hours INTEGER DEFAULT 0,
	synced_at        TEXT NOT NULL
);
CREATE TABLE sync_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	synced_at   TEXT NOT NULL,
	total_files INTEGER NOT NULL
);
INSERT INTO recordings (id, filename, synced_at) VALUES ('old1', 'legacy.m4a', '2024-01-01T00:00:00+00:00');
`

func TestMigrate_FreshDatabase(t *testing.T) {
	database := newTestDB(t)

	version, err := database.SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("SchemaVersion() = %d, want %d", version, LatestSchemaVersion())
	}

	var indexCount int
	err = database.conn.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name LIKE 'idx_recordings_%'
	`).Scan(&indexCount)
	if err != nil {
		t.Fatal(err)
	}
	if indexCount != 4 {
		t.Errorf("Expected 4 recording indexes, got %d", indexCount)
	}
}

func TestMigrate_LegacyDatabaseGainsDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")

	raw, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := raw.Exec(legacySchema); err != nil {
		t.Fatalf("create legacy schema: %v", err)
	}
	_ = raw.Close()

	database, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() on legacy database error = %v", err)
	}
	defer func() { _ = database.Close() }()

	rec, err := database.GetRecording("old1")
	if err != nil {
		t.Fatalf("GetRecording() error = %v", err)
	}
	if rec.Directory != nil {
		t.Errorf("Expected NULL directory after migration, got %q", *rec.Directory)
	}

	if _, err := database.AssignDirectory("Archive", DirectoryFilter{}); err != nil {
		t.Fatalf("AssignDirectory() on migrated database error = %v", err)
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "recordings.db")

	for i := 0; i < 3; i++ {
		database, err := New(dbPath)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		_ = database.Close()
	}

	database, err := New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = database.Close() }()

	var rows int
	if err := database.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("Expected a single schema_version row, got %d", rows)
	}
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "recordings.db")

	database, err := New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := database.Exec(`UPDATE schema_version SET version = 99`); err != nil {
		t.Fatal(err)
	}
	_ = database.Close()

	_, err = New(dbPath)
	if err == nil {
		t.Fatal("Expected error opening a database from a newer release")
	}
	if !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("unexpected error: %v", err)
	}
}
