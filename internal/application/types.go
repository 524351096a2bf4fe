package application

import "a11ytree/internal/domain"

// Re-export domain types for use by adapters
type (
	Node    = domain.Node
	Tree    = domain.Tree
	Command = domain.Command
	Effect  = domain.Effect
)

// Re-export navigation commands
const (
	MoveDown  = domain.MoveDown
	MoveUp    = domain.MoveUp
	MoveRight = domain.MoveRight
	MoveLeft  = domain.MoveLeft
	Activate  = domain.Activate
	Home      = domain.Home
	End       = domain.End
)

// Annotate prepares a freshly loaded tree for navigation
func Annotate(t *Tree) *Tree {
	return domain.Annotate(t)
}

// ParseCommand parses a command name such as "MoveDown" or "down"
func ParseCommand(s string) (Command, error) {
	return domain.ParseCommand(s)
}
