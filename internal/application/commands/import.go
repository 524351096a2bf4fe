package commands

import (
	"context"
	"fmt"

	"a11ytree/internal/application"
	"a11ytree/internal/logger"
	"a11ytree/internal/ports"
)

// ImportCommand copies a tree from a source into a tree store
type ImportCommand struct {
	source ports.TreeSource
	store  ports.TreeStore
	Name   string
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(source ports.TreeSource, store ports.TreeStore, name string) *ImportCommand {
	return &ImportCommand{
		source: source,
		store:  store,
		Name:   name,
	}
}

// Validate checks the command parameters
func (c *ImportCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	if c.source == nil {
		return &application.ValidationError{Field: "sourcePath", Message: "no source configured"}
	}
	if c.store == nil {
		return &application.ValidationError{Field: "dbPath", Message: "no store configured"}
	}
	return nil
}

// Execute loads the source and stores it, returning the number of nodes written
func (c *ImportCommand) Execute(ctx context.Context) (int, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	tree, err := c.source.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", c.source.Name(), err)
	}
	if len(tree.Items) == 0 {
		return 0, fmt.Errorf("import %s: %w", c.source.Name(), application.ErrEmptyTree)
	}

	n, err := c.store.Import(ctx, c.Name, tree)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", c.Name, err)
	}

	logger.For("commands").Info("tree imported", "source", c.source.Name(), "name", c.Name, "nodes", n)
	return n, nil
}
