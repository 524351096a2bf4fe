// Package tui is the interactive terminal front end of the tree widget.
package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"a11ytree/internal/adapters/tui/views"
	"a11ytree/internal/adapters/watcher"
	"a11ytree/internal/application"
	"a11ytree/internal/application/commands"
	"a11ytree/internal/domain"
	"a11ytree/internal/logger"
	"a11ytree/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewTree ViewState = iota
	ViewSearch
	ViewHelp
)

// Option configures an App
type Option func(*App)

// WithKeyMap replaces the default navigation bindings
func WithKeyMap(km application.KeyMap) Option {
	return func(a *App) {
		a.keymap = km
	}
}

// WithEngineOptions passes options to every engine the app creates
func WithEngineOptions(opts ...application.Option) Option {
	return func(a *App) {
		a.engineOpts = append(a.engineOpts, opts...)
	}
}

// WithFocusOnCollapse moves focus to a branch when collapsing it hides the
// active node
func WithFocusOnCollapse(enabled bool) Option {
	return func(a *App) {
		a.focusOnCollapse = enabled
	}
}

// WithEditor enables opening file leaves
func WithEditor(ed ports.EditorOpener) Option {
	return func(a *App) {
		a.editor = ed
	}
}

// WithClipboard enables copying node paths
func WithClipboard(cb ports.Clipboard) Option {
	return func(a *App) {
		a.clipboard = cb
	}
}

// WithWatcher reloads the tree whenever w reports a change
func WithWatcher(w *watcher.Watcher) Option {
	return func(a *App) {
		a.watcher = w
	}
}

// App is the main TUI application model
type App struct {
	source     ports.TreeSource
	keymap     application.KeyMap
	engineOpts []application.Option
	editor     ports.EditorOpener
	clipboard  ports.Clipboard
	watcher    *watcher.Watcher

	focusOnCollapse bool

	state  ViewState
	tree   *views.TreeModel
	search *views.SearchModel
	help   *views.HelpModel
}

// NewApp creates a new TUI application for source
func NewApp(source ports.TreeSource, opts ...Option) *App {
	a := &App{
		source: source,
		keymap: application.DefaultKeyMap(),
		state:  ViewTree,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.tree = views.NewTreeModel(source.Name(), a.keymap, a.focusOnCollapse)
	a.search = views.NewSearchModel()
	a.help = views.NewHelpModel(a.tree.Keys())
	return a
}

// State returns the view being shown
func (a *App) State() ViewState {
	return a.state
}

// Tree returns the tree view
func (a *App) Tree() *views.TreeModel {
	return a.tree
}

// Init loads the tree and starts listening for changes
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.load(), a.waitForChange())
}

type treeLoadedMsg struct {
	tree *domain.Tree
}

type loadErrMsg struct {
	err error
}

type sourceChangedMsg struct{}

type editorFinishedMsg struct{ err error }

func (a *App) load() tea.Cmd {
	source := a.source
	return func() tea.Msg {
		tree, err := commands.NewLoadTreeCommand(source).Execute(context.Background())
		if err != nil {
			return loadErrMsg{err}
		}
		return treeLoadedMsg{tree}
	}
}

func (a *App) waitForChange() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	changed := a.watcher.Changed()
	return func() tea.Msg {
		if _, ok := <-changed; !ok {
			return nil
		}
		return sourceChangedMsg{}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.tree.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case treeLoadedMsg:
		a.setTree(msg.tree)
		return a, nil

	case loadErrMsg:
		logger.For("tui").Error("load failed", "source", a.source.Name(), "error", msg.err)
		a.tree.SetMessage(msg.err.Error(), true)
		return a, nil

	case sourceChangedMsg:
		a.tree.SetMessage("Source changed, reloading", false)
		return a, tea.Batch(a.load(), a.waitForChange())

	case views.ReloadMsg:
		return a, a.load()

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToTreeMsg:
		a.state = ViewTree
		return a, nil

	case views.SearchSelectMsg:
		a.state = ViewTree
		a.tree.Reveal(msg.Node)
		return a, nil

	case views.CopyMsg:
		a.copy(msg)
		return a, nil

	case views.OpenEditorMsg:
		a.state = ViewTree
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.tree.SetMessage(msg.err.Error(), true)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewTree:
		_, cmd = a.tree.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// setTree installs a freshly loaded tree, keeping the expansion state and
// focus of the tree it replaces where the nodes still exist
func (a *App) setTree(tree *domain.Tree) {
	if old := a.tree.Engine(); old != nil {
		domain.TakeSnapshot(old.Tree()).Restore(tree)
	}

	opts := append([]application.Option{}, a.engineOpts...)
	opts = append(opts,
		application.WithOnExpand(func(n *domain.Node) {
			a.tree.SetMessage("Expanded "+n.Label, false)
		}),
		application.WithOnCollapse(func(n *domain.Node) {
			a.tree.SetMessage("Collapsed "+n.Label, false)
		}),
	)

	a.tree.SetEngine(application.NewEngine(tree, opts...))
	a.search.SetTree(tree)
	logger.For("tui").Debug("engine ready", "source", a.source.Name(), "active", a.tree.Engine().Active().Path())
}

func (a *App) copy(msg views.CopyMsg) {
	if a.clipboard == nil {
		a.tree.SetMessage("Clipboard not available", true)
		return
	}
	if err := a.clipboard.WriteAll(msg.Text); err != nil {
		a.tree.SetMessage(err.Error(), true)
		return
	}
	a.tree.SetMessage(fmt.Sprintf("Copied %s: %s", msg.What, msg.Text), false)
}

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		a.tree.SetMessage("No editor configured", true)
		return nil
	}

	if info, err := os.Stat(path); err != nil || info.IsDir() {
		a.tree.SetMessage(fmt.Sprintf("%s is not a file", path), true)
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.tree.View()
	}
}
