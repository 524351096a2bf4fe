package ports

import (
	"context"

	"a11ytree/internal/domain"
)

// TreeStore keeps tree structures in an adjacency table so they can be
// queried and reloaded without the original source file.
type TreeStore interface {
	// Lifecycle
	Open(dbPath string) error
	Close() error

	// Import replaces the stored tree called name with t
	Import(ctx context.Context, name string, t *domain.Tree) (int, error)

	// Load rebuilds the stored tree called name
	Load(ctx context.Context, name string) (*domain.Tree, error)

	// Trees lists the names of stored trees
	Trees(ctx context.Context) ([]string, error)

	// Delete removes a stored tree
	Delete(ctx context.Context, name string) error
}
