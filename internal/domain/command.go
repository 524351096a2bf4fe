package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned when a command name cannot be parsed
var ErrUnknownCommand = errors.New("unknown command")

// Command is a discrete navigation input
type Command int

const (
	MoveDown Command = iota
	MoveUp
	MoveRight
	MoveLeft
	Activate
	Home
	End
)

// Commands lists every navigation command in declaration order
var Commands = []Command{MoveDown, MoveUp, MoveRight, MoveLeft, Activate, Home, End}

func (c Command) String() string {
	switch c {
	case MoveDown:
		return "MoveDown"
	case MoveUp:
		return "MoveUp"
	case MoveRight:
		return "MoveRight"
	case MoveLeft:
		return "MoveLeft"
	case Activate:
		return "Activate"
	case Home:
		return "Home"
	case End:
		return "End"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

var commandAliases = map[string]Command{
	"movedown":  MoveDown,
	"down":      MoveDown,
	"moveup":    MoveUp,
	"up":        MoveUp,
	"moveright": MoveRight,
	"right":     MoveRight,
	"moveleft":  MoveLeft,
	"left":      MoveLeft,
	"activate":  Activate,
	"enter":     Activate,
	"toggle":    Activate,
	"home":      Home,
	"first":     Home,
	"end":       End,
	"last":      End,
}

// ParseCommand accepts command names in any case, with or without
// separators ("MoveDown", "move-down", "down") and the key names
// "enter", "home" and "end".
func ParseCommand(s string) (Command, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)

	if cmd, ok := commandAliases[normalized]; ok {
		return cmd, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}
