package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"a11ytree/internal/adapters/tui/styles"
	"a11ytree/internal/application"
	"a11ytree/internal/domain"
	"a11ytree/internal/logger"
)

// Offsets of the tree inside styles.App
const (
	padTop  = 1
	padLeft = 2
	// padding, title, status, message and help lines around the tree
	chromeLines = 8
)

// TreeKeyMap defines key bindings for the tree view. Navigation bindings
// come from the configured application.KeyMap; the rest are fixed.
type TreeKeyMap struct {
	Down     key.Binding
	Up       key.Binding
	Right    key.Binding
	Left     key.Binding
	Activate key.Binding
	Home     key.Binding
	End      key.Binding
	Search   key.Binding
	Copy     key.Binding
	CopyKey  key.Binding
	Open     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keyNames = map[string]string{
	"down":  "↓",
	"up":    "↑",
	"right": "→",
	"left":  "←",
}

func commandBinding(km application.KeyMap, cmd domain.Command, desc string) key.Binding {
	keys := km.Keys(cmd)
	shown := make([]string, len(keys))
	for i, k := range keys {
		if name, ok := keyNames[k]; ok {
			k = name
		}
		shown[i] = k
	}
	b := key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(shown, "/"), desc),
	)
	if len(keys) == 0 {
		b.SetEnabled(false)
	}
	return b
}

// NewTreeKeyMap builds the bindings for km
func NewTreeKeyMap(km application.KeyMap) TreeKeyMap {
	return TreeKeyMap{
		Down:     commandBinding(km, domain.MoveDown, "down"),
		Up:       commandBinding(km, domain.MoveUp, "up"),
		Right:    commandBinding(km, domain.MoveRight, "expand / first child"),
		Left:     commandBinding(km, domain.MoveLeft, "collapse / parent"),
		Activate: commandBinding(km, domain.Activate, "toggle"),
		Home:     commandBinding(km, domain.Home, "first node"),
		End:      commandBinding(km, domain.End, "last node"),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		CopyKey: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy key"),
		),
		Open: key.NewBinding(
			key.WithKeys("o", "e"),
			key.WithHelp("o", "open in editor"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Navigation returns the bindings that dispatch tree commands
func (k TreeKeyMap) Navigation() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Right, k.Left, k.Activate, k.Home, k.End}
}

// Actions returns the bindings handled by the view itself
func (k TreeKeyMap) Actions() []key.Binding {
	return []key.Binding{k.Search, k.Copy, k.CopyKey, k.Open, k.Reload, k.Help, k.Quit}
}

// TreeModel is the model for the tree view
type TreeModel struct {
	ViewState

	engine *application.Engine
	keymap application.KeyMap
	keys   TreeKeyMap
	title  string

	focusOnCollapse bool

	visible []*domain.Node
	window  *Window
	header  int
}

// NewTreeModel creates a tree view titled after the source
func NewTreeModel(title string, km application.KeyMap, focusOnCollapse bool) *TreeModel {
	return &TreeModel{
		keymap:          km,
		keys:            NewTreeKeyMap(km),
		title:           title,
		focusOnCollapse: focusOnCollapse,
		window:          NewWindow(20),
	}
}

// Keys returns the bindings in use
func (m *TreeModel) Keys() TreeKeyMap {
	return m.keys
}

// SetEngine replaces the tree being shown
func (m *TreeModel) SetEngine(e *application.Engine) {
	m.engine = e
	m.refresh()
}

// Engine returns the engine driving the view, nil until a tree is loaded
func (m *TreeModel) Engine() *application.Engine {
	return m.engine
}

// SetSize updates the view dimensions
func (m *TreeModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.window.SetSize(m.Rows(chromeLines, 20))
	m.refresh()
}

// Init initializes the tree view
func (m *TreeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the tree view
func (m *TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		// Configured navigation keys win over the view's own keys
		if cmd, ok := m.keymap.Lookup(msg.String()); ok && m.engine != nil {
			m.dispatch(cmd)
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }

		case key.Matches(msg, m.keys.Reload):
			return m, func() tea.Msg { return ReloadMsg{} }

		case key.Matches(msg, m.keys.Search):
			if m.engine == nil {
				return m, nil
			}
			return m, func() tea.Msg { return SwitchToSearchMsg{} }

		case key.Matches(msg, m.keys.Copy):
			if n := m.active(); n != nil {
				text := n.LabelPath(" / ")
				return m, func() tea.Msg { return CopyMsg{Text: text, What: "path"} }
			}

		case key.Matches(msg, m.keys.CopyKey):
			if n := m.active(); n != nil && n.Key != "" {
				text := n.Key
				return m, func() tea.Msg { return CopyMsg{Text: text, What: "key"} }
			}

		case key.Matches(msg, m.keys.Open):
			if n := m.active(); n != nil {
				if n.HasChildren || n.Key == "" {
					m.SetMessage(fmt.Sprintf("%s has no file to open", n.Label), true)
					return m, nil
				}
				path := n.Key
				return m, func() tea.Msg { return OpenEditorMsg{Path: path} }
			}
		}
		return m, nil

	case tea.MouseMsg:
		m.mouse(msg)
		return m, nil
	}

	return m, nil
}

func (m *TreeModel) active() *domain.Node {
	if m.engine == nil {
		return nil
	}
	return m.engine.Active()
}

func (m *TreeModel) dispatch(cmd domain.Command) {
	eff := m.engine.Dispatch(cmd)
	logger.For("tui").Debug("key command", "command", cmd.String(), "effect", eff.String())
	m.refresh()
}

func (m *TreeModel) mouse(msg tea.MouseMsg) {
	if m.engine == nil {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.dispatch(domain.MoveUp)
		return
	case tea.MouseButtonWheelDown:
		m.dispatch(domain.MoveDown)
		return
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
	default:
		return
	}

	idx := m.window.IndexAt(msg.Y - padTop - m.header)
	if idx < 0 {
		return
	}
	n := m.visible[idx]

	if m.onToggle(n, msg.X) {
		m.Toggle(n)
		return
	}
	eff := m.engine.Click(n)
	logger.For("tui").Debug("click", "node", n.Path(), "effect", eff.String())
	m.refresh()
}

// onToggle reports whether column x falls on the toggle glyph of n
func (m *TreeModel) onToggle(n *domain.Node, x int) bool {
	opts := m.engine.Options()
	if !n.HasChildren || !opts.InsertToggle {
		return false
	}
	start := padLeft + indentWidth*(n.Depth-1)
	return x >= start && x < start+lipgloss.Width(toggleGlyph(n, opts))
}

// Toggle flips a branch like a click on its toggle. With focus-on-collapse
// enabled a collapse that hides the active node moves focus to the branch.
func (m *TreeModel) Toggle(n *domain.Node) {
	eff := m.engine.Toggle(n)
	logger.For("tui").Debug("toggle", "node", n.Path(), "effect", eff.String())

	if m.focusOnCollapse && !m.engine.Active().IsVisible() {
		m.engine.Click(n)
	}
	m.refresh()
}

// Reveal expands every collapsed ancestor of n and makes it active
func (m *TreeModel) Reveal(n *domain.Node) {
	if m.engine == nil || !m.engine.Tree().Contains(n) {
		return
	}

	var ancestors []*domain.Node
	for p := n.Parent(); p != nil; p = p.Parent() {
		ancestors = append(ancestors, p)
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if ancestors[i].IsCollapsed() {
			m.engine.Toggle(ancestors[i])
		}
	}
	m.engine.Click(n)
	m.refresh()
}

func (m *TreeModel) refresh() {
	if m.engine == nil {
		m.visible = nil
		return
	}
	m.visible = m.engine.Tree().Visible()

	cursor := 0
	active := m.engine.Active()
	for i, n := range m.visible {
		if n == active {
			cursor = i
			break
		}
	}
	m.window.Follow(cursor, len(m.visible))
}

// View renders the tree view
func (m *TreeModel) View() string {
	v := NewViewBuilder().Title(m.title)
	if m.engine == nil {
		return v.Muted("Loading...").String()
	}
	m.header = v.Lines()

	opts := m.engine.Options()
	start, end := m.window.Range()
	for _, n := range m.visible[start:end] {
		v.Line(renderNode(n, opts))
	}

	above, below := m.window.Hidden()
	status := fmt.Sprintf("%d/%d visible", len(m.visible), m.engine.Tree().Len())
	if above > 0 || below > 0 {
		status += fmt.Sprintf(" (%d above, %d below)", above, below)
	}
	if n := m.engine.Active(); n != nil {
		status += "  " + n.Path()
	}

	v.BlankLine().Line(styles.StatusBar.Render(status))
	v.Message(m.Message, m.MessageErr)
	v.Help(m.keys.Activate, m.keys.Search, m.keys.Copy, m.keys.Help, m.keys.Quit)
	return v.String()
}

const indentWidth = 2

func toggleGlyph(n *domain.Node, opts application.Options) string {
	if !opts.InsertToggle {
		return ""
	}
	glyph := styles.TreeCollapsed
	if opts.ToggleMarker != "" {
		glyph = opts.ToggleMarker + " "
	} else if n.IsExpanded() {
		glyph = styles.TreeExpanded
	}
	if !n.HasChildren {
		return strings.Repeat(" ", lipgloss.Width(glyph))
	}
	return glyph
}

func renderNode(n *domain.Node, opts application.Options) string {
	indent := strings.Repeat(" ", indentWidth*(n.Depth-1))

	style := styles.NodeLeaf
	if n.HasChildren {
		style = styles.NodeBranch.Foreground(styles.LevelColor(n.Depth))
	}
	if n.Active {
		style = styles.NodeSelected
	}

	return indent + styles.TreeBranch.Render(toggleGlyph(n, opts)) + style.Render(n.Label)
}
