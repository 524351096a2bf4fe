package application

import (
	"fmt"
	"sort"
	"strings"

	"a11ytree/internal/domain"
)

// KeyMap translates key names (as reported by the terminal, e.g. "down",
// "enter", "j") into navigation commands.
type KeyMap map[string]domain.Command

// DefaultKeyMap returns the ARIA tree-view bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"down":  domain.MoveDown,
		"up":    domain.MoveUp,
		"right": domain.MoveRight,
		"left":  domain.MoveLeft,
		"enter": domain.Activate,
		"home":  domain.Home,
		"end":   domain.End,
	}
}

// Lookup returns the command bound to key
func (k KeyMap) Lookup(key string) (domain.Command, bool) {
	cmd, ok := k[key]
	return cmd, ok
}

// Keys returns the keys bound to cmd, sorted with the default key first
func (k KeyMap) Keys(cmd domain.Command) []string {
	var keys []string
	for key, bound := range k {
		if bound == cmd {
			keys = append(keys, key)
		}
	}

	defaults := DefaultKeyMap()
	sort.Slice(keys, func(i, j int) bool {
		_, di := defaults[keys[i]]
		_, dj := defaults[keys[j]]
		if di != dj {
			return di
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Merge returns a copy of k with overrides applied. Override values are
// command names; an empty value unbinds the key.
func (k KeyMap) Merge(overrides map[string]string) (KeyMap, error) {
	merged := make(KeyMap, len(k)+len(overrides))
	for key, cmd := range k {
		merged[key] = cmd
	}

	for key, name := range overrides {
		key = strings.TrimSpace(key)
		if err := ValidateRequired("key", key); err != nil {
			return nil, err
		}
		if strings.TrimSpace(name) == "" {
			delete(merged, key)
			continue
		}
		cmd, err := domain.ParseCommand(name)
		if err != nil {
			return nil, &ValidationError{
				Field:   "keys." + key,
				Message: fmt.Sprintf("unknown command %q", name),
				Err:     err,
			}
		}
		merged[key] = cmd
	}

	return merged, nil
}
