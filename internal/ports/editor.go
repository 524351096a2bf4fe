package ports

import "os/exec"

// EditorOpener opens the file behind a leaf node in an external editor
type EditorOpener interface {
	// OpenFile opens path and waits for the editor to exit
	OpenFile(path string) error

	// Command returns the editor process without starting it, so a
	// terminal UI can hand over the screen while it runs
	Command(path string) (*exec.Cmd, error)
}
