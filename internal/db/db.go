package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no episode
var ErrNotFound = errors.New("episode not found")

// DB wraps a SQLite database connection
type DB struct {
	conn *sql.DB
	Path string
	fts  bool
}

const schema = `
CREATE TABLE IF NOT EXISTS episodes (
	key            TEXT PRIMARY KEY,
	ordinal        INTEGER NOT NULL,
	guest          TEXT NOT NULL DEFAULT '',
	categories     TEXT NOT NULL DEFAULT '[]',
	functions      TEXT NOT NULL DEFAULT '[]',
	audiences      TEXT NOT NULL DEFAULT '[]',
	takeaways      TEXT NOT NULL DEFAULT '[]',
	notes          TEXT NOT NULL DEFAULT '',
	transcript_ref TEXT NOT NULL DEFAULT '',
	imported_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_episodes_ordinal ON episodes(ordinal);
`

const ftsSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS episodes_fts USING fts5(key, guest, notes, takeaways);
`

// OpenDB opens a SQLite database with WAL mode and foreign keys enabled
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	d := &DB{conn: conn, Path: path}
	if err := d.EnsureSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

// EnsureSchema creates the episodes table and, when the driver supports
// FTS5, the full-text index. A missing FTS5 module is not an error.
func (d *DB) EnsureSchema() error {
	if _, err := d.conn.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if _, err := d.conn.Exec(ftsSchema); err != nil {
		if strings.Contains(err.Error(), "no such module") {
			d.fts = false
			return nil
		}
		return fmt.Errorf("creating fts index: %w", err)
	}
	d.fts = true
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}
