package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// schema is applied on every open; statements are idempotent
const schema = `
CREATE TABLE IF NOT EXISTS collaborations (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	track_id TEXT NOT NULL,
	artist   TEXT NOT NULL,
	genre    TEXT,
	metric   REAL,
	year     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_collaborations_year ON collaborations(year);
CREATE INDEX IF NOT EXISTS idx_collaborations_track ON collaborations(track_id);
`

// DB wraps a SQLite database connection
type DB struct {
	conn *sql.DB
	Path string
}

// OpenDB opens (creating if needed) a SQLite database with WAL mode and the
// collaborations schema in place
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// each pooled connection would otherwise get its own empty database
		conn.SetMaxOpenConns(1)
	}

	// WAL lets the server read while an import writes
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	d := &DB{conn: conn, Path: path}
	if err := d.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) migrate() error {
	if _, err := d.conn.Exec(schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (d *DB) Conn() *sql.DB {
	return d.conn
}
