package application

import (
	"log/slog"

	"a11ytree/internal/domain"
	"a11ytree/internal/logger"
)

// Engine is the navigation state machine of one tree widget. It is not safe
// for concurrent use: commands must be handled one at a time.
type Engine struct {
	tree *domain.Tree
	opts Options
}

// NewEngine creates an engine over an annotated tree
func NewEngine(tree *domain.Tree, opts ...Option) *Engine {
	if tree == nil {
		tree = domain.NewTree()
	}

	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Engine{tree: tree, opts: options}
}

// Tree returns the tree the engine navigates
func (e *Engine) Tree() *domain.Tree {
	return e.tree
}

// Options returns the engine configuration for renderers
func (e *Engine) Options() Options {
	return e.opts
}

// Active returns the node holding the cursor, or nil
func (e *Engine) Active() *domain.Node {
	return e.tree.Active()
}

// Handle computes the effect of cmd without changing any state.
func (e *Engine) Handle(cmd domain.Command) domain.Effect {
	active := e.tree.Active()

	// Home and End depend only on structure, so they work without a cursor
	switch cmd {
	case domain.Home:
		return activate(active, e.tree.First())
	case domain.End:
		return activate(active, e.tree.LastVisible())
	}

	if active == nil {
		return domain.Noop()
	}

	switch cmd {
	case domain.MoveDown:
		return activate(active, below(active))

	case domain.MoveUp:
		return activate(active, above(active))

	case domain.MoveRight:
		switch {
		case active.IsCollapsed():
			return domain.SetExpansion(active, true)
		case active.IsExpanded():
			return activate(active, active.FirstChild())
		}

	case domain.MoveLeft:
		if active.IsExpanded() {
			return domain.SetExpansion(active, false)
		}
		return activate(active, active.Parent())

	case domain.Activate:
		if active.HasChildren {
			return domain.SetExpansion(active, !active.Expanded)
		}
	}

	return domain.Noop()
}

// Apply commits an effect. Activation clears every previous holder of the
// cursor in the same step; expansion changes fire the configured hooks.
// It returns false when the effect changed nothing.
func (e *Engine) Apply(eff domain.Effect) bool {
	if eff.IsNoop() || !e.tree.Contains(eff.Node) {
		return false
	}

	n := eff.Node
	switch eff.Kind {
	case domain.EffectActivate:
		if n.Active {
			return false
		}
		e.tree.Walk(func(other *domain.Node) bool {
			other.Active = false
			return true
		})
		n.Active = true
		e.log().Debug("activate", "path", n.Path(), "label", n.Label)
		return true

	case domain.EffectSetExpansion:
		if !n.HasChildren || n.Expanded == eff.Expanded {
			return false
		}
		n.Expanded = eff.Expanded
		if eff.Expanded {
			e.log().Debug("expand", "path", n.Path(), "label", n.Label)
			e.opts.OnExpand(n)
		} else {
			e.log().Debug("collapse", "path", n.Path(), "label", n.Label)
			e.opts.OnCollapse(n)
		}
		return true
	}

	return false
}

// Dispatch handles cmd and applies the resulting effect. The returned effect
// is Noop when nothing changed.
func (e *Engine) Dispatch(cmd domain.Command) domain.Effect {
	eff := e.Handle(cmd)
	if !e.Apply(eff) {
		return domain.Noop()
	}
	return eff
}

// Click activates n, as a pointer press on the node does
func (e *Engine) Click(n *domain.Node) domain.Effect {
	if !e.tree.Contains(n) {
		return domain.Noop()
	}
	eff := activate(e.tree.Active(), n)
	if !e.Apply(eff) {
		return domain.Noop()
	}
	return eff
}

// Toggle flips the expansion of n without moving the cursor, as a pointer
// press on the toggle affordance does. Leaves are ignored.
func (e *Engine) Toggle(n *domain.Node) domain.Effect {
	if n == nil || !n.HasChildren {
		return domain.Noop()
	}
	eff := domain.SetExpansion(n, !n.Expanded)
	if !e.Apply(eff) {
		return domain.Noop()
	}
	return eff
}

func (e *Engine) log() *slog.Logger {
	if e.opts.Logger != nil {
		return e.opts.Logger
	}
	return logger.For("engine")
}

// activate targets n unless it is missing or already holds the cursor
func activate(current, target *domain.Node) domain.Effect {
	if target == nil || target == current {
		return domain.Noop()
	}
	return domain.ActivateNode(target)
}

// below is the MoveDown target. The fallback to the parent's next sibling
// climbs a single level only.
func below(n *domain.Node) *domain.Node {
	if n.IsExpanded() {
		return n.FirstChild()
	}
	if next := n.NextSibling(); next != nil {
		return next
	}
	if parent := n.Parent(); parent != nil {
		return parent.NextSibling()
	}
	return nil
}

// above is the MoveUp target: the deepest visible node of the previous
// sibling's subtree, or the parent when there is no previous sibling.
func above(n *domain.Node) *domain.Node {
	prev := n.PrevSibling()
	if prev == nil {
		return n.Parent()
	}
	return prev.LastVisibleDescendant()
}
