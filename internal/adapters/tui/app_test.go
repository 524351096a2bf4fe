package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"a11ytree/internal/adapters/tui/views"
	"a11ytree/internal/domain"
)

type stubSource struct {
	labels []string
	err    error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(context.Context) (*domain.Tree, error) {
	if s.err != nil {
		return nil, s.err
	}
	var items []*domain.Node
	for _, l := range s.labels {
		items = append(items, domain.NewNode(l, domain.NewNode(l+" child")))
	}
	return domain.NewTree(items...), nil
}

type stubClipboard struct {
	text string
	err  error
}

func (c *stubClipboard) WriteAll(text string) error {
	c.text = text
	return c.err
}

// loadNow runs the load command synchronously and feeds its result back
func loadNow(a *App) {
	a.Update(a.load()())
}

func TestApp_LoadAndNavigate(t *testing.T) {
	a := NewApp(&stubSource{labels: []string{"A", "B"}})
	loadNow(a)

	engine := a.Tree().Engine()
	if engine == nil {
		t.Fatal("tree should be loaded")
	}

	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := engine.Active().Label; got != "B" {
		t.Errorf("expected B, got %s", got)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !engine.Active().Expanded {
		t.Error("right should expand B")
	}
	if a.Tree().Message != "Expanded B" {
		t.Errorf("expected expand message, got %q", a.Tree().Message)
	}
}

func TestApp_LoadError(t *testing.T) {
	a := NewApp(&stubSource{err: errors.New("boom")})
	loadNow(a)

	if a.Tree().Engine() != nil {
		t.Error("no tree should be loaded")
	}
	if !a.Tree().MessageErr || !strings.Contains(a.Tree().Message, "boom") {
		t.Errorf("expected error message, got %q", a.Tree().Message)
	}
}

func TestApp_ReloadKeepsState(t *testing.T) {
	src := &stubSource{labels: []string{"A", "B"}}
	a := NewApp(src)
	loadNow(a)

	a.Update(tea.KeyMsg{Type: tea.KeyDown})
	a.Update(tea.KeyMsg{Type: tea.KeyRight})
	a.Update(tea.KeyMsg{Type: tea.KeyRight}) // B child

	src.labels = []string{"Z", "A", "B"}
	loadNow(a)

	engine := a.Tree().Engine()
	if got := engine.Active().LabelPath("/"); got != "B/B child" {
		t.Errorf("expected focus on B/B child, got %s", got)
	}
	if engine.Tree().Lookup("1").Expanded {
		t.Error("the new node Z should start collapsed")
	}
}

func TestApp_SwitchViews(t *testing.T) {
	a := NewApp(&stubSource{labels: []string{"Apples", "Pears"}})
	loadNow(a)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	a.Update(cmd())
	if a.State() != ViewHelp {
		t.Fatalf("expected help view, got %d", a.State())
	}
	if !strings.Contains(a.View(), "Navigation") {
		t.Error("help should list navigation keys")
	}

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a.Update(cmd())
	if a.State() != ViewTree {
		t.Fatalf("expected tree view, got %d", a.State())
	}

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	a.Update(cmd())
	if a.State() != ViewSearch {
		t.Fatalf("expected search view, got %d", a.State())
	}

	child := a.Tree().Engine().Tree().Lookup("2.1")
	a.Update(views.SearchSelectMsg{Node: child})
	if a.State() != ViewTree {
		t.Error("selecting a result returns to the tree")
	}
	if !child.Active || !child.IsVisible() {
		t.Error("selected node should be revealed and focused")
	}
}

func TestApp_Copy(t *testing.T) {
	cb := &stubClipboard{}
	a := NewApp(&stubSource{labels: []string{"A"}}, WithClipboard(cb))
	loadNow(a)

	a.Update(views.CopyMsg{Text: "A / A child", What: "path"})
	if cb.text != "A / A child" {
		t.Errorf("expected clipboard text, got %q", cb.text)
	}
	if a.Tree().MessageErr {
		t.Errorf("unexpected error: %s", a.Tree().Message)
	}

	cb.err = errors.New("no display")
	a.Update(views.CopyMsg{Text: "x", What: "path"})
	if !a.Tree().MessageErr {
		t.Error("clipboard failure should be reported")
	}

	bare := NewApp(&stubSource{labels: []string{"A"}})
	bare.Update(views.CopyMsg{Text: "x"})
	if !bare.Tree().MessageErr {
		t.Error("missing clipboard should be reported")
	}
}

func TestApp_OpenEditorRequiresFile(t *testing.T) {
	a := NewApp(&stubSource{labels: []string{"A"}})
	loadNow(a)

	_, cmd := a.Update(views.OpenEditorMsg{Path: t.TempDir()})
	if cmd != nil {
		t.Error("no editor configured, nothing should run")
	}
	if !a.Tree().MessageErr {
		t.Error("expected an error message")
	}
}
