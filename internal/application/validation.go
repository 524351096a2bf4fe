package application

import (
	"fmt"
	"strings"

	"a11ytree/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "nodePath" -> "node path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"nodePath":   "node path",
		"sourcePath": "source path",
		"dbPath":     "database path",
		"commands":   "command list",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ParseCommands splits a list such as "down, right down,End" into
// commands. Tokens are command names or keys bound in keys.
func ParseCommands(list string, keys KeyMap) ([]domain.Command, error) {
	if err := ValidateRequired("commands", list); err != nil {
		return nil, err
	}

	tokens := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	commands := make([]domain.Command, 0, len(tokens))
	for i, token := range tokens {
		if cmd, ok := keys.Lookup(token); ok {
			commands = append(commands, cmd)
			continue
		}
		cmd, err := domain.ParseCommand(token)
		if err != nil {
			return nil, &ValidationError{
				Field:   "commands",
				Message: fmt.Sprintf("token %d: unknown command or key %q", i+1, token),
				Err:     err,
			}
		}
		commands = append(commands, cmd)
	}

	return commands, nil
}

// ValidateNodePath resolves a positional node path in tree
func ValidateNodePath(tree *domain.Tree, path string) (*domain.Node, error) {
	if err := ValidateRequired("nodePath", path); err != nil {
		return nil, err
	}
	n := tree.Lookup(path)
	if n == nil {
		return nil, &ValidationError{
			Field:   "nodePath",
			Message: fmt.Sprintf("no node at %s", path),
			Err:     ErrNotFound,
		}
	}
	return n, nil
}
