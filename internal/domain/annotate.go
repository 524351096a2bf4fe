package domain

// Annotate assigns structural metadata to every node of t in one recursive
// pass: depth, parent and sibling links, the has-children flag, and the
// initial collapsed state. Any previous cursor is cleared and the first
// root-level node becomes active. The input must be acyclic.
func Annotate(t *Tree) *Tree {
	if t == nil {
		return nil
	}

	annotateLevel(t.Items, nil, 1)
	if first := t.First(); first != nil {
		first.Active = true
	}
	return t
}

func annotateLevel(nodes []*Node, parent *Node, depth int) {
	for i, n := range nodes {
		n.parent = parent
		n.siblings = nodes
		n.index = i
		n.Depth = depth
		n.Active = false
		n.Expanded = false
		n.HasChildren = len(n.Children) > 0

		if n.HasChildren {
			annotateLevel(n.Children, n, depth+1)
		}
	}
}
