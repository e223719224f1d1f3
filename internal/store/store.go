// Package store persists registered specification fragments in SQLite
// so identities survive process restarts and can be replayed into a
// fresh registry.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"vigil/internal/logging"
	"vigil/internal/spec"

	_ "modernc.org/sqlite"
)

// Store wraps the fragment database. All access goes through the
// embedded lock; the sql.DB pool alone does not serialize writers
// against readers on the same file.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.StoreDebug("fragment store open at %s", path)
	return s, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	fragmentsTable := `
	CREATE TABLE IF NOT EXISTS fragments (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		source TEXT,
		raw TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_fragments_kind ON fragments(kind);
	`

	for _, table := range []string{fragmentsTable} {
		if _, err := s.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// SaveFragments persists the fragments, replacing any prior record
// stored under the same identity. The kind is stored as its annotation
// keyword so the rows stay readable with a plain sqlite shell.
func (s *Store) SaveFragments(ctx context.Context, frags []spec.Fragment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, frag := range frags {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO fragments (id, kind, source, raw)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				kind = excluded.kind,
				source = excluded.source,
				raw = excluded.raw
		`, frag.ID.String(), frag.Kind.Keyword(), frag.Source, frag.Raw)
		if err != nil {
			return fmt.Errorf("failed to save fragment %s: %w", frag.ID, err)
		}
	}

	logging.StoreDebug("saved %d fragments", len(frags))
	return nil
}

// LoadFragments retrieves every stored fragment ordered by identity.
// A row whose identity or kind no longer parses fails the whole load;
// replaying a half-readable database would silently drop identities.
func (s *Store) LoadFragments(ctx context.Context) ([]spec.Fragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, kind, source, raw FROM fragments ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query fragments: %w", err)
	}
	defer rows.Close()

	var frags []spec.Fragment
	for rows.Next() {
		var idText, kindText, source, raw string
		if err := rows.Scan(&idText, &kindText, &source, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan fragment row: %w", err)
		}

		id, err := spec.ParseID(idText)
		if err != nil {
			return nil, fmt.Errorf("fragment row %q: %w", idText, err)
		}
		kind, err := spec.KindFromKeyword(kindText)
		if err != nil {
			return nil, fmt.Errorf("fragment %s: %w", idText, err)
		}

		frags = append(frags, spec.Fragment{ID: id, Kind: kind, Source: source, Raw: raw})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logging.StoreDebug("loaded %d fragments", len(frags))
	return frags, nil
}

// Count returns the number of stored fragments.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM fragments").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count fragments: %w", err)
	}
	return count, nil
}
