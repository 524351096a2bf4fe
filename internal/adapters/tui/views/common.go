package views

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Rows returns how many list rows fit once reserved lines are taken.
// Before the first WindowSizeMsg the height is unknown and fallback is used.
func (s *ViewState) Rows(reserved, fallback int) int {
	if s.Height <= 0 {
		return fallback
	}
	return max(s.Height-reserved, 1)
}

// Messages shared between views and the app
type (
	// SwitchToTreeMsg returns to the tree view
	SwitchToTreeMsg struct{}
	// SwitchToSearchMsg opens the search view
	SwitchToSearchMsg struct{}
	// SwitchToHelpMsg opens the help view
	SwitchToHelpMsg struct{}
	// ReloadMsg asks the app to load the source again
	ReloadMsg struct{}
	// OpenEditorMsg asks the app to open a file in the editor
	OpenEditorMsg struct{ Path string }
	// CopyMsg asks the app to copy text to the clipboard
	CopyMsg struct {
		Text string
		What string
	}
)
