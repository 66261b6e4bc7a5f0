package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ErrEmptyName is returned when a create or rename operation is given a
// blank name. The store rejects these before touching the database.
var ErrEmptyName = errors.New("name must not be empty")

// Store owns the canonical notebook, note, tag, and association records.
// It is safe to share a single Store for the process lifetime; the
// underlying *sql.DB handles connection pooling.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath and initializes the
// schema. Initialization is idempotent: existing tables are left alone and
// already-applied column migrations are ignored.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

// init creates the database schema.
//
// Cascade rules: deleting a notebook deletes its descendant notebooks and
// unfiles (nulls out) the notes that referenced it; deleting a note or a
// tag deletes the matching note_tags rows.
func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS notebooks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		parent_id TEXT REFERENCES notebooks(id) ON DELETE CASCADE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		notebook_id TEXT REFERENCES notebooks(id) ON DELETE SET NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tags (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS note_tags (
		note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
		tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (note_id, tag_id)
	);

	CREATE INDEX IF NOT EXISTS idx_notes_notebook ON notes(notebook_id);
	CREATE INDEX IF NOT EXISTS idx_notes_updated ON notes(updated_at);
	CREATE INDEX IF NOT EXISTS idx_notebooks_parent ON notebooks(parent_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Migration for databases created before the mirror hash existed.
	// Ignore errors as the column may already exist.
	_, _ = s.db.Exec("ALTER TABLE notes ADD COLUMN hash TEXT")

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// requireName trims and validates a user-supplied name.
func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// nullable maps an empty id to NULL for foreign key columns.
func nullable(id string) any {
	if id == "" {
		return nil
	}
	return id
}
