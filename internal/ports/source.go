package ports

import (
	"context"

	"a11ytree/internal/domain"
)

// TreeSource loads a raw, unannotated tree from some storage format
type TreeSource interface {
	// Load reads the source and returns its nested list structure.
	// Callers annotate the result before navigating it.
	Load(ctx context.Context) (*domain.Tree, error)

	// Name identifies the source in logs and errors (usually its path)
	Name() string
}
