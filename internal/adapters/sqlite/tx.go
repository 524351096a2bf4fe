package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// row is one stored node
type row struct {
	ID       int64
	Parent   sql.NullInt64
	Position int
	Label    string
	Key      string
}

// treeTx groups the writes of one import or delete
type treeTx struct {
	tx *sql.Tx
}

// beginTx starts a new transaction
func (s *Store) beginTx(ctx context.Context) (*treeTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &treeTx{tx: tx}, nil
}

// insertTree registers a tree name
func (t *treeTx) insertTree(name string, at time.Time) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO trees (name, imported_at)
		VALUES (?, ?)
	`, name, at.Unix())
	return err
}

// deleteTree removes every node of a tree
func (t *treeTx) deleteTree(name string) error {
	_, err := t.tx.Exec(`DELETE FROM nodes WHERE tree = ?`, name)
	return err
}

// insertNode adds one node row
func (t *treeTx) insertNode(tree string, r row) error {
	_, err := t.tx.Exec(`
		INSERT INTO nodes (tree, id, parent_id, position, label, key)
		VALUES (?, ?, ?, ?, ?, ?)
	`, tree, r.ID, r.Parent, r.Position, r.Label, r.Key)
	return err
}

// commit commits the transaction
func (t *treeTx) commit() error {
	return t.tx.Commit()
}

// rollback aborts the transaction. It is a no-op after commit.
func (t *treeTx) rollback() error {
	return t.tx.Rollback()
}
