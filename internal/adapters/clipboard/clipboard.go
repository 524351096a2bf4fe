// Package clipboard adapts the system clipboard to ports.Clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"a11ytree/internal/ports"
)

var _ ports.Clipboard = System{}

// ErrUnsupported is returned when no clipboard utility is available
var ErrUnsupported = errors.New("clipboard not available: install xclip, xsel or wl-clipboard")

// System writes to the desktop clipboard
type System struct{}

// WriteAll copies text to the clipboard
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard utility was found
func Available() bool {
	return !clipboard.Unsupported
}
