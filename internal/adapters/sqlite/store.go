package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
	"a11ytree/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements ports.TreeStore using SQLite. Trees are kept as
// adjacency lists: one row per node pointing at its parent row.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements TreeStore
var _ ports.TreeStore = (*Store)(nil)

// NewStore creates a new SQLite tree store
func NewStore() *Store {
	return &Store{}
}

const dsnPragmas = "?_pragma=journal_mode(WAL)" +
	"&_pragma=busy_timeout(5000)" +
	"&_pragma=synchronous(NORMAL)" +
	"&_pragma=temp_store(MEMORY)"

// Open opens or creates the database. An empty path selects DefaultPath.
func (s *Store) Open(dbPath string) error {
	if dbPath == "" {
		dbPath = DefaultPath()
	}

	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	s.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them
	db, err := sql.Open("sqlite", dbPath+dsnPragmas)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema in single batch
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trees (
			name TEXT PRIMARY KEY,
			imported_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS nodes (
			tree TEXT NOT NULL,
			id INTEGER NOT NULL,
			parent_id INTEGER,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			key TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (tree, id)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(tree, parent_id, position);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file in use
func (s *Store) Path() string {
	return s.dbPath
}

// DefaultPath returns the database location under the XDG data directory
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "a11ytree", "trees.db")
}

// Import replaces the stored tree called name with t. Nodes are numbered
// in document order starting at 1.
func (s *Store) Import(ctx context.Context, name string, t *domain.Tree) (int, error) {
	if err := application.ValidateRequired("name", name); err != nil {
		return 0, err
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.rollback()

	if err := tx.deleteTree(name); err != nil {
		return 0, err
	}
	if err := tx.insertTree(name, time.Now()); err != nil {
		return 0, err
	}

	count := 0
	var insert func(nodes []*domain.Node, parent sql.NullInt64) error
	insert = func(nodes []*domain.Node, parent sql.NullInt64) error {
		for pos, n := range nodes {
			count++
			id := int64(count)
			if err := tx.insertNode(name, row{ID: id, Parent: parent, Position: pos, Label: n.Label, Key: n.Key}); err != nil {
				return err
			}
			if err := insert(n.Children, sql.NullInt64{Int64: id, Valid: true}); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(t.Items, sql.NullInt64{}); err != nil {
		return 0, fmt.Errorf("failed to insert nodes: %w", err)
	}

	if err := tx.commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// Load rebuilds the stored tree called name. Dangling parent references
// and cycles in the stored rows are reported as errors.
func (s *Store) Load(ctx context.Context, name string) (*domain.Tree, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM trees WHERE name = ?`, name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tree %q: %w", name, application.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, position, label, key
		FROM nodes WHERE tree = ?
		ORDER BY position, id
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.ID, &r.Parent, &r.Position, &r.Label, &r.Key); err != nil {
			return nil, err
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tree, err := buildTree(all)
	if err != nil {
		return nil, fmt.Errorf("tree %q: %w", name, err)
	}
	return tree, nil
}

// Trees lists stored tree names alphabetically
func (s *Store) Trees(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM trees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a stored tree
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.rollback()

	res, err := tx.tx.Exec(`DELETE FROM trees WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tree %q: %w", name, application.ErrNotFound)
	}
	if err := tx.deleteTree(name); err != nil {
		return err
	}
	return tx.commit()
}
