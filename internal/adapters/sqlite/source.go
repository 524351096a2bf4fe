package sqlite

import (
	"context"
	"fmt"

	"a11ytree/internal/domain"
	"a11ytree/internal/ports"
)

var _ ports.TreeSource = (*TreeSource)(nil)

// TreeSource implements ports.TreeSource for one tree kept in a Store.
// It opens the database on each load and closes it afterwards.
type TreeSource struct {
	dbPath string
	tree   string
}

// NewTreeSource creates a source reading the tree called name from dbPath
func NewTreeSource(dbPath, name string) *TreeSource {
	return &TreeSource{dbPath: dbPath, tree: name}
}

// Name identifies the source as path#tree
func (s *TreeSource) Name() string {
	return fmt.Sprintf("%s#%s", s.dbPath, s.tree)
}

// Load reads the stored tree
func (s *TreeSource) Load(ctx context.Context) (*domain.Tree, error) {
	store := NewStore()
	if err := store.Open(s.dbPath); err != nil {
		return nil, err
	}
	defer store.Close()

	return store.Load(ctx, s.tree)
}
