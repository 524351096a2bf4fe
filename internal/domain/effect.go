package domain

import "fmt"

// EffectKind identifies what a handled command changes
type EffectKind int

const (
	EffectNoop EffectKind = iota
	EffectActivate
	EffectSetExpansion
)

func (k EffectKind) String() string {
	switch k {
	case EffectActivate:
		return "activate"
	case EffectSetExpansion:
		return "set-expansion"
	default:
		return "noop"
	}
}

// Effect is the outcome of handling one command. It is computed without
// touching the tree and applied afterwards in a single step.
type Effect struct {
	Kind     EffectKind
	Node     *Node
	Expanded bool // Target state for EffectSetExpansion
}

// Noop is the effect of a command that changes nothing
func Noop() Effect {
	return Effect{Kind: EffectNoop}
}

// ActivateNode moves the cursor to n
func ActivateNode(n *Node) Effect {
	return Effect{Kind: EffectActivate, Node: n}
}

// SetExpansion expands or collapses n
func SetExpansion(n *Node, expanded bool) Effect {
	return Effect{Kind: EffectSetExpansion, Node: n, Expanded: expanded}
}

// IsNoop reports whether applying e would change nothing
func (e Effect) IsNoop() bool {
	return e.Kind == EffectNoop || e.Node == nil
}

func (e Effect) String() string {
	switch {
	case e.IsNoop():
		return "noop"
	case e.Kind == EffectActivate:
		return fmt.Sprintf("activate %s %q", e.Node.Path(), e.Node.Label)
	case e.Expanded:
		return fmt.Sprintf("expand %s %q", e.Node.Path(), e.Node.Label)
	default:
		return fmt.Sprintf("collapse %s %q", e.Node.Path(), e.Node.Label)
	}
}
