package commands

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
	"a11ytree/internal/logger"
	"a11ytree/internal/ports"
)

// LoadTreeCommand loads a tree from a source and annotates it
type LoadTreeCommand struct {
	source ports.TreeSource
}

// NewLoadTreeCommand creates a new LoadTreeCommand
func NewLoadTreeCommand(source ports.TreeSource) *LoadTreeCommand {
	return &LoadTreeCommand{source: source}
}

// Execute runs the load command
func (c *LoadTreeCommand) Execute(ctx context.Context) (*domain.Tree, error) {
	if c.source == nil {
		return nil, &application.ValidationError{Field: "sourcePath", Message: "no source configured"}
	}

	tree, err := c.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.source.Name(), err)
	}

	tree = domain.Annotate(tree)
	logger.For("commands").Info("tree loaded", "source", c.source.Name(), "nodes", tree.Len())
	return tree, nil
}

// LoadResult is one annotated tree loaded by LoadAllCommand
type LoadResult struct {
	Name string
	Tree *domain.Tree
}

// LoadAllCommand loads several sources concurrently. Each source gets its
// own annotated tree and therefore its own cursor.
type LoadAllCommand struct {
	sources []ports.TreeSource
	Limit   int
}

// NewLoadAllCommand creates a new LoadAllCommand
func NewLoadAllCommand(sources ...ports.TreeSource) *LoadAllCommand {
	return &LoadAllCommand{sources: sources, Limit: 4}
}

// Execute loads every source and returns the trees in source order.
// The first failure cancels the remaining loads.
func (c *LoadAllCommand) Execute(ctx context.Context) ([]LoadResult, error) {
	results := make([]LoadResult, len(c.sources))

	g, ctx := errgroup.WithContext(ctx)
	if c.Limit > 0 {
		g.SetLimit(c.Limit)
	}

	for i, source := range c.sources {
		g.Go(func() error {
			tree, err := NewLoadTreeCommand(source).Execute(ctx)
			if err != nil {
				return err
			}
			results[i] = LoadResult{Name: source.Name(), Tree: tree}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
