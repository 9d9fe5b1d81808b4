package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with additional methods
type DB struct {
	*sql.DB
}

// New creates a new database connection
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// Enable WAL mode for better concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	return &DB{db}, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	// Single row table: only the latest snapshot is kept
	schema := `
    CREATE TABLE IF NOT EXISTS latest_snapshot (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        run_id TEXT NOT NULL,
        captured_at DATETIME NOT NULL,
        duration_ms INTEGER,
        network_name TEXT,
        network_name_error TEXT,
        download_mbps REAL,
        download_error TEXT,
        upload_mbps REAL,
        upload_error TEXT,
        latency_ms REAL,
        latency_error TEXT,
        speedtest_server TEXT,
        jitter_ms REAL,
        jitter_samples INTEGER,
        jitter_error TEXT,
        packet_loss_percent REAL,
        packet_loss_error TEXT,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
