package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/tango/pkg/tango/store"
	"github.com/cognicore/tango/pkg/tango/vocab"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates
// the schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS known_words (
	word TEXT PRIMARY KEY,
	added_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vocab_cache (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	word TEXT NOT NULL,
	frequency INTEGER NOT NULL,
	context TEXT,
	cached_at TEXT NOT NULL
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// KnownWords returns the full known-words set.
func (s *sqliteStore) KnownWords(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM known_words`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]struct{})
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		known[w] = struct{}{}
	}
	return known, rows.Err()
}

// AddKnownWords inserts words into the known set. Words already present
// are left untouched.
func (s *sqliteStore) AddKnownWords(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO known_words (word, added_at) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, w, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RemoveKnownWords deletes words from the known set.
func (s *sqliteStore) RemoveKnownWords(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `DELETE FROM known_words WHERE word=?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, w); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ClearKnownWords empties the known set.
func (s *sqliteStore) ClearKnownWords(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM known_words`)
	return err
}

// SaveVocab replaces the vocabulary cache with the given entries.
func (s *sqliteStore) SaveVocab(ctx context.Context, entries []vocab.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vocab_cache`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO vocab_cache (word, frequency, context, cached_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Word, e.Frequency, e.Context, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadVocab returns the cached entries in saved (rank) order.
func (s *sqliteStore) LoadVocab(ctx context.Context) ([]vocab.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, frequency, context FROM vocab_cache ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []vocab.Entry
	for rows.Next() {
		var e vocab.Entry
		if err := rows.Scan(&e.Word, &e.Frequency, &e.Context); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
