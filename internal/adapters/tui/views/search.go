package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"a11ytree/internal/adapters/tui/styles"
	"a11ytree/internal/application/commands"
	"a11ytree/internal/domain"
)

const maxShownResults = 10

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "reveal"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// SearchModel finds nodes by label, including nodes inside collapsed branches
type SearchModel struct {
	ViewState
	tree    *domain.Tree
	input   textinput.Model
	results []commands.SearchResult
	query   string
	cursor  int
}

// NewSearchModel creates a new search view model
func NewSearchModel() *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search labels..."
	input.Focus()

	return &SearchModel{input: input}
}

// SetTree sets the tree to search
func (m *SearchModel) SetTree(t *domain.Tree) {
	m.tree = t
	m.results = nil
	m.cursor = 0
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Reset resets the search view
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.query = ""
	m.results = nil
	m.cursor = 0
	m.input.Focus()
}

type searchResultsMsg struct {
	query   string
	results []commands.SearchResult
}

// SearchSelectMsg is sent when a search result is chosen
type SearchSelectMsg struct {
	Node *domain.Node
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		// Drop results for a query the user already typed past
		if msg.query != m.query {
			return m, nil
		}
		m.results = msg.results
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToTreeMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(m.results), maxShownResults)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor >= 0 && m.cursor < len(m.results) {
				node := m.results[m.cursor].Node
				return m, func() tea.Msg {
					return SearchSelectMsg{Node: node}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	query := strings.TrimSpace(m.input.Value())
	if query == m.query {
		return m, cmd
	}
	m.query = query
	if query == "" {
		m.results = nil
		return m, cmd
	}
	return m, tea.Batch(cmd, m.search(query))
}

func (m *SearchModel) search(query string) tea.Cmd {
	tree := m.tree
	return func() tea.Msg {
		if tree == nil {
			return searchResultsMsg{query: query}
		}
		results, err := commands.NewSearchCommand(tree, query).Execute(context.Background())
		if err != nil {
			return searchResultsMsg{query: query}
		}
		return searchResultsMsg{query: query, results: results}
	}
}

// View renders the search view
func (m *SearchModel) View() string {
	v := NewViewBuilder().Title("Search")
	v.Line(styles.InputFocused.Render(m.input.View())).BlankLine()

	switch {
	case m.query == "":
		v.Muted("Type to search node labels")
	case len(m.results) == 0:
		v.Muted("No results found")
	default:
		v.Line(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results)))).BlankLine()

		shown := min(len(m.results), maxShownResults)
		for i := 0; i < shown; i++ {
			v.Line(m.renderResult(m.results[i], i == m.cursor))
		}
		if len(m.results) > shown {
			v.Muted(fmt.Sprintf("... and %d more", len(m.results)-shown))
		}
	}

	v.BlankLine().Help(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel)
	return v.String()
}

func (m *SearchModel) renderResult(r commands.SearchResult, selected bool) string {
	label := r.Node.Label
	if selected {
		label = styles.NodeSelected.Render(label)
	} else {
		label = highlight(label, m.query)
	}

	line := label
	if r.Trail != "" {
		line += "  " + styles.MutedText.Render(r.Trail)
	}
	return line
}

// highlight marks the first case-insensitive occurrence of query in s
func highlight(s, query string) string {
	idx := strings.Index(strings.ToLower(s), strings.ToLower(query))
	if idx < 0 || len(strings.ToLower(s)) != len(s) {
		return s
	}
	end := idx + len(query)
	return s[:idx] + styles.SearchMatch.Render(s[idx:end]) + s[end:]
}
