package commands

import (
	"context"
	"sort"
	"strings"

	"a11ytree/internal/domain"
)

// SearchResult is a node matching a search query with its relevance score
type SearchResult struct {
	Node  *domain.Node
	Path  string // positional path, e.g. "2.1.3"
	Trail string // labels from the root, e.g. "Fruits / Apples"
	Score int
}

// SearchCommand searches node labels with fuzzy matching. Collapsed
// subtrees are searched too; revealing a hit is the caller's job.
type SearchCommand struct {
	tree  *domain.Tree
	Query string
	Limit int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(tree *domain.Tree, query string) *SearchCommand {
	return &SearchCommand{
		tree:  tree,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if query == "" || c.tree == nil {
		return nil, nil
	}

	var nodes []*domain.Node
	c.tree.Walk(func(n *domain.Node) bool {
		nodes = append(nodes, n)
		return true
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := FuzzySort(nodes, query)
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}
	return results, nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && isSeparator(target[i-1]) {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

func isSeparator(b byte) bool {
	switch b {
	case ' ', '.', '-', '_', '/':
		return true
	}
	return false
}

// FuzzySort scores nodes by label, falling back to the label trail, and
// sorts them by relevance. Ties keep document order.
func FuzzySort(nodes []*domain.Node, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(nodes))

	for _, n := range nodes {
		trail := n.LabelPath(" / ")
		best := max(FuzzyScore(n.Label, query), FuzzyScore(trail, query)/2)

		if best > 0 {
			scored = append(scored, SearchResult{
				Node:  n,
				Path:  n.Path(),
				Trail: trail,
				Score: best,
			})
		}
	}

	// Sort by score descending
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
