package domain

import (
	"strconv"
	"strings"
)

// Role is the ARIA role a tree element exposes to assistive technology
type Role string

const (
	RoleTree     Role = "tree"
	RoleGroup    Role = "group"
	RoleTreeItem Role = "treeitem"
)

// Node is one item of the tree. Structural metadata (Depth, HasChildren,
// parent and sibling links) is assigned by Annotate; Expanded and Active
// are mutated only by the navigation engine afterwards.
type Node struct {
	Label    string
	Key      string // Source identifier (file path, element id, row id); may be empty
	Children []*Node

	Depth       int  // 1-based nesting level
	HasChildren bool // Fixed at annotation time
	Expanded    bool // Only meaningful when HasChildren is true
	Active      bool // Exactly one node per tree

	parent   *Node
	siblings []*Node
	index    int
}

// NewNode creates an unannotated node with the given children
func NewNode(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// Parent returns the owning node, or nil for root-level nodes
func (n *Node) Parent() *Node {
	return n.parent
}

// Index returns the position of the node among its siblings
func (n *Node) Index() int {
	return n.index
}

// Role returns the ARIA role of the node itself
func (n *Node) Role() Role {
	return RoleTreeItem
}

// GroupRole returns the role of the container holding the node's children,
// or an empty role for leaves
func (n *Node) GroupRole() Role {
	if !n.HasChildren {
		return ""
	}
	return RoleGroup
}

// IsExpanded reports whether n is a branch whose children are shown
func (n *Node) IsExpanded() bool {
	return n.HasChildren && n.Expanded
}

// IsCollapsed reports whether n is a branch whose children are hidden
func (n *Node) IsCollapsed() bool {
	return n.HasChildren && !n.Expanded
}

// NextSibling returns the following sibling or nil
func (n *Node) NextSibling() *Node {
	if n.index+1 < len(n.siblings) {
		return n.siblings[n.index+1]
	}
	return nil
}

// PrevSibling returns the preceding sibling or nil
func (n *Node) PrevSibling() *Node {
	if n.index > 0 && n.index <= len(n.siblings) {
		return n.siblings[n.index-1]
	}
	return nil
}

// FirstChild returns the first child or nil
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// LastChild returns the last child or nil
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// LastVisibleDescendant follows last children while the chain stays
// expanded. A collapsed branch or a leaf returns itself.
func (n *Node) LastVisibleDescendant() *Node {
	current := n
	for current.IsExpanded() {
		current = current.LastChild()
	}
	return current
}

// IsVisible reports whether every ancestor of n is expanded
func (n *Node) IsVisible() bool {
	for p := n.parent; p != nil; p = p.parent {
		if !p.Expanded {
			return false
		}
	}
	return true
}

// Path returns the 1-based positional path of the node, e.g. "2.1.3"
func (n *Node) Path() string {
	var parts []string
	for current := n; current != nil; current = current.parent {
		parts = append(parts, strconv.Itoa(current.index+1))
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// LabelPath returns the labels from the root-level ancestor down to n
func (n *Node) LabelPath(sep string) string {
	var parts []string
	for current := n; current != nil; current = current.parent {
		parts = append([]string{current.Label}, parts...)
	}
	return strings.Join(parts, sep)
}

// Tree is the root container. Its item sequence carries the tree role;
// nested child sequences carry the group role.
type Tree struct {
	Items []*Node
}

// NewTree creates an unannotated tree
func NewTree(items ...*Node) *Tree {
	return &Tree{Items: items}
}

// Role returns the role of the root container
func (t *Tree) Role() Role {
	return RoleTree
}

// First returns the first root-level node or nil for an empty tree
func (t *Tree) First() *Node {
	if len(t.Items) == 0 {
		return nil
	}
	return t.Items[0]
}

// LastVisible returns the last node in visible order
func (t *Tree) LastVisible() *Node {
	if len(t.Items) == 0 {
		return nil
	}
	return t.Items[len(t.Items)-1].LastVisibleDescendant()
}

// Active returns the node holding the cursor, or nil
func (t *Tree) Active() *Node {
	var active *Node
	t.Walk(func(n *Node) bool {
		if n.Active {
			active = n
			return false
		}
		return true
	})
	return active
}

// Walk visits every node in document order until fn returns false
func (t *Tree) Walk(fn func(n *Node) bool) {
	walk(t.Items, fn)
}

func walk(nodes []*Node, fn func(n *Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		if !walk(n.Children, fn) {
			return false
		}
	}
	return true
}

// Visible returns the nodes reachable through expanded ancestors, in order
func (t *Tree) Visible() []*Node {
	var result []*Node
	appendVisible(&result, t.Items)
	return result
}

func appendVisible(result *[]*Node, nodes []*Node) {
	for _, n := range nodes {
		*result = append(*result, n)
		if n.IsExpanded() {
			appendVisible(result, n.Children)
		}
	}
}

// Len returns the total number of nodes
func (t *Tree) Len() int {
	count := 0
	t.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Contains reports whether n belongs to this annotated tree
func (t *Tree) Contains(n *Node) bool {
	if n == nil {
		return false
	}
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root.index < len(t.Items) && t.Items[root.index] == root
}

// Lookup resolves a positional path produced by Node.Path
func (t *Tree) Lookup(path string) *Node {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	nodes := t.Items
	var current *Node
	for _, part := range strings.Split(path, ".") {
		pos, err := strconv.Atoi(part)
		if err != nil || pos < 1 || pos > len(nodes) {
			return nil
		}
		current = nodes[pos-1]
		nodes = current.Children
	}
	return current
}

// Find returns the nodes whose label contains query, case-insensitively,
// in document order
func (t *Tree) Find(query string) []*Node {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []*Node
	t.Walk(func(n *Node) bool {
		if strings.Contains(strings.ToLower(n.Label), query) {
			matches = append(matches, n)
		}
		return true
	})
	return matches
}
