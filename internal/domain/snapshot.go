package domain

import "strconv"

// Snapshot records the navigation state of a tree by label path, so it can
// be carried over to a freshly loaded version of the same source. Siblings
// that share a label are told apart by their occurrence among those
// siblings, so the second "Tests" under a branch never inherits the state
// of the first.
type Snapshot struct {
	Expanded map[string]bool
	Active   string
}

const snapshotSep = "\x00"

// walkKeys visits every node in document order together with its snapshot key
func walkKeys(items []*Node, prefix string, fn func(n *Node, key string)) {
	seen := make(map[string]int, len(items))
	for _, n := range items {
		k := seen[n.Label]
		seen[n.Label] = k + 1
		key := prefix + n.Label + "#" + strconv.Itoa(k)
		fn(n, key)
		walkKeys(n.Children, key+snapshotSep, fn)
	}
}

// TakeSnapshot records which branches are expanded and which node is active
func TakeSnapshot(t *Tree) Snapshot {
	s := Snapshot{Expanded: make(map[string]bool)}
	walkKeys(t.Items, "", func(n *Node, key string) {
		if n.IsExpanded() {
			s.Expanded[key] = true
		}
		if n.Active {
			s.Active = key
		}
	})
	return s
}

// Restore applies s to a freshly annotated tree. Nodes are matched by key;
// state for nodes that no longer exist is dropped. The active node moves
// only if its match is visible, so the tree keeps exactly one visible
// active node.
func (s Snapshot) Restore(t *Tree) {
	var active *Node
	walkKeys(t.Items, "", func(n *Node, key string) {
		if n.HasChildren && s.Expanded[key] {
			n.Expanded = true
		}
		if s.Active != "" && key == s.Active {
			active = n
		}
	})

	if active == nil || !active.IsVisible() {
		return
	}
	t.Walk(func(n *Node) bool {
		n.Active = n == active
		return true
	})
}
