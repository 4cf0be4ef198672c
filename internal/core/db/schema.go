package db

func (db *DB) initSchema() error {
	schema := `
	-- Cached recordings, one row per remote id
	CREATE TABLE IF NOT EXISTS recordings (
		id               TEXT PRIMARY KEY,
		filename         TEXT NOT NULL DEFAULT '',
		duration         INTEGER NOT NULL DEFAULT 0,
		start_time_ms    INTEGER NOT NULL DEFAULT 0,
		local_datetime   TEXT,
		hour             INTEGER,
		weekday          INTEGER, -- 0=Mon ... 6=Sun
		weekday_name     TEXT,
		is_working_hours INTEGER DEFAULT 0,
		directory        TEXT,
		synced_at        TEXT NOT NULL
	);

	-- Append-only sync audit log
	CREATE TABLE IF NOT EXISTS sync_log (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		synced_at   TEXT NOT NULL,
		total_files INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY
	);
	`

	_, err := db.conn.Exec(schema)
	return err
}
