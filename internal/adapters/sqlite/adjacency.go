package sqlite

import (
	"fmt"
	"sort"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
)

// buildTree links adjacency rows into a tree. Rows without a parent are
// root-level items; siblings are ordered by position, then id.
func buildTree(rows []row) (*domain.Tree, error) {
	nodes := make(map[int64]*domain.Node, len(rows))
	byID := make(map[int64]row, len(rows))
	for _, r := range rows {
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %d", r.ID)
		}
		byID[r.ID] = r
		n := domain.NewNode(r.Label)
		n.Key = r.Key
		nodes[r.ID] = n
	}

	ordered := append([]row(nil), rows...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position != ordered[j].Position {
			return ordered[i].Position < ordered[j].Position
		}
		return ordered[i].ID < ordered[j].ID
	})

	var items []*domain.Node
	for _, r := range ordered {
		n := nodes[r.ID]
		if !r.Parent.Valid {
			items = append(items, n)
			continue
		}
		parent, ok := nodes[r.Parent.Int64]
		if !ok {
			return nil, fmt.Errorf("node %d: parent %d: %w", r.ID, r.Parent.Int64, application.ErrNotFound)
		}
		parent.Children = append(parent.Children, n)
	}

	// Every row has exactly one parent, so rows unreachable from the
	// root-level items can only hang off a cycle
	reached := 0
	tree := domain.NewTree(items...)
	tree.Walk(func(*domain.Node) bool {
		reached++
		return true
	})
	if reached != len(rows) {
		for _, r := range ordered {
			if r.Parent.Valid && r.Parent.Int64 == r.ID {
				return nil, fmt.Errorf("node %d is its own parent: %w", r.ID, application.ErrCycle)
			}
		}
		return nil, fmt.Errorf("%d nodes unreachable from the root: %w", len(rows)-reached, application.ErrCycle)
	}

	return tree, nil
}
