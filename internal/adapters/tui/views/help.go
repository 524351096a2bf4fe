package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"a11ytree/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel lists the bindings of the tree view
type HelpModel struct {
	ViewState
	keys TreeKeyMap
}

// NewHelpModel creates a help view for keys
func NewHelpModel(keys TreeKeyMap) *HelpModel {
	return &HelpModel{keys: keys}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToTreeMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().Title("Help")

	v.Line(styles.InputLabel.Render("Navigation"))
	for _, b := range m.keys.Navigation() {
		if b.Enabled() {
			v.Line(helpLine(b.Help().Key, b.Help().Desc))
		}
	}
	v.BlankLine()

	v.Line(styles.InputLabel.Render("Actions"))
	for _, b := range m.keys.Actions() {
		v.Line(helpLine(b.Help().Key, b.Help().Desc))
	}
	v.BlankLine()

	v.Line(styles.InputLabel.Render("Mouse"))
	v.Line(helpLine("click", "focus node"))
	v.Line(helpLine("click toggle", "expand / collapse"))
	v.Line(helpLine("wheel", "move up / down"))
	v.BlankLine()

	v.Help(HelpKeys.Close)
	return v.String()
}

func helpLine(keys, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(keys, 20)) + styles.HelpDesc.Render(desc)
}

func padRight(s string, length int) string {
	if w := lipgloss.Width(s); w < length {
		return s + strings.Repeat(" ", length-w)
	}
	return s
}
