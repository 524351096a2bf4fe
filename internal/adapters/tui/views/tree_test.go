package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
)

// Fruits[Apples[Fuji, Gala], Pears], Vegetables[Leeks]
func fruitEngine(opts ...application.Option) *application.Engine {
	tree := domain.Annotate(domain.NewTree(
		domain.NewNode("Fruits",
			domain.NewNode("Apples", domain.NewNode("Fuji"), domain.NewNode("Gala")),
			domain.NewNode("Pears"),
		),
		domain.NewNode("Vegetables", domain.NewNode("Leeks")),
	))
	return application.NewEngine(tree, opts...)
}

func newTestTree(km application.KeyMap, focusOnCollapse bool) *TreeModel {
	m := NewTreeModel("fruits.yaml", km, focusOnCollapse)
	m.SetEngine(fruitEngine())
	m.SetSize(80, 40)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *TreeModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func TestTreeModel_KeyboardNavigation(t *testing.T) {
	m := newTestTree(application.DefaultKeyMap(), false)

	tests := []struct {
		key  string
		want string
	}{
		{"right", "Fruits"}, // expand
		{"right", "Apples"}, // first child
		{"down", "Pears"},
		{"down", "Vegetables"}, // parent's next sibling
		{"up", "Pears"},
		{"left", "Fruits"},
		{"end", "Vegetables"},
		{"home", "Fruits"},
	}

	for _, tt := range tests {
		press(m, tt.key)
		if got := m.Engine().Active().Label; got != tt.want {
			t.Fatalf("after %s: expected %s, got %s", tt.key, tt.want, got)
		}
	}

	if !m.Engine().Tree().Lookup("1").Expanded {
		t.Error("Fruits should still be expanded")
	}
}

func TestTreeModel_CustomBindings(t *testing.T) {
	km, err := application.DefaultKeyMap().Merge(map[string]string{"j": "MoveDown", "l": "MoveRight"})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	m := newTestTree(km, false)

	press(m, "l", "l", "l", "l", "j")
	if got := m.Engine().Active().Label; got != "Gala" {
		t.Errorf("expected Gala, got %s", got)
	}

	if !strings.Contains(m.Keys().Down.Help().Key, "j") {
		t.Errorf("expected help for down to list j, got %q", m.Keys().Down.Help().Key)
	}
}

func TestTreeModel_ActivateTogglesAndHooksMessage(t *testing.T) {
	m := NewTreeModel("fruits.yaml", application.DefaultKeyMap(), false)
	m.SetEngine(fruitEngine(application.WithOnExpand(func(n *domain.Node) {
		m.SetMessage("Expanded "+n.Label, false)
	})))

	press(m, "enter")
	if !m.Engine().Active().Expanded {
		t.Fatal("enter should expand Fruits")
	}
	if m.Message != "Expanded Fruits" {
		t.Errorf("expected hook message, got %q", m.Message)
	}

	press(m, "enter")
	if m.Engine().Active().Expanded {
		t.Error("second enter should collapse Fruits")
	}
}

func TestTreeModel_ActionKeys(t *testing.T) {
	m := newTestTree(application.DefaultKeyMap(), false)

	if cmd := press(m, "/"); cmd == nil {
		t.Fatal("expected a command for /")
	} else if _, ok := cmd().(SwitchToSearchMsg); !ok {
		t.Error("/ should switch to search")
	}

	cmd := press(m, "y")
	if cmd == nil {
		t.Fatal("expected a command for y")
	}
	copyMsg, ok := cmd().(CopyMsg)
	if !ok || copyMsg.Text != "Fruits" {
		t.Errorf("expected copy of Fruits, got %#v", cmd())
	}

	// Branches have no file to open
	if cmd := press(m, "o"); cmd != nil {
		t.Error("o on a branch should not open an editor")
	}
	if !m.MessageErr {
		t.Error("expected an error message")
	}

	if cmd := press(m, "q"); cmd == nil {
		t.Error("q should quit")
	}
}

func TestTreeModel_OpenLeafWithKey(t *testing.T) {
	m := newTestTree(application.DefaultKeyMap(), false)
	m.Engine().Tree().Lookup("2.1").Key = "/tmp/leeks.txt"
	m.Reveal(m.Engine().Tree().Lookup("2.1"))

	cmd := press(m, "o")
	if cmd == nil {
		t.Fatal("expected a command for o")
	}
	if msg, ok := cmd().(OpenEditorMsg); !ok || msg.Path != "/tmp/leeks.txt" {
		t.Errorf("expected OpenEditorMsg for leeks, got %#v", cmd())
	}
}

func TestTreeModel_Reveal(t *testing.T) {
	m := newTestTree(application.DefaultKeyMap(), false)
	gala := m.Engine().Tree().Lookup("1.1.2")

	m.Reveal(gala)

	if !gala.Active || !gala.IsVisible() {
		t.Fatal("Gala should be visible and active")
	}
	if !m.Engine().Tree().Lookup("1").Expanded || !m.Engine().Tree().Lookup("1.1").Expanded {
		t.Error("ancestors should be expanded")
	}
}

func TestTreeModel_MouseClick(t *testing.T) {
	m := newTestTree(application.DefaultKeyMap(), false)
	m.View()

	// Row of Vegetables: padding, title, blank line, Fruits
	y := padTop + 2 + 1

	m.Update(tea.MouseMsg{X: 10, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	veg := m.Engine().Tree().Lookup("2")
	if !veg.Active {
		t.Fatalf("click should focus Vegetables, active is %s", m.Engine().Active().Label)
	}
	if veg.Expanded {
		t.Error("click on the label should not expand")
	}

	m.Update(tea.MouseMsg{X: padLeft, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if !veg.Expanded {
		t.Error("click on the toggle should expand")
	}
}

func TestTreeModel_FocusOnCollapse(t *testing.T) {
	for _, focus := range []bool{true, false} {
		m := newTestTree(application.DefaultKeyMap(), focus)
		tree := m.Engine().Tree()
		m.Reveal(tree.Lookup("1.1.1")) // Fuji

		m.Toggle(tree.Lookup("1")) // collapse Fruits

		active := m.Engine().Active()
		if focus && active != tree.Lookup("1") {
			t.Errorf("focus on collapse: expected Fruits, got %s", active.Label)
		}
		if !focus && active != tree.Lookup("1.1.1") {
			t.Errorf("without focus on collapse the cursor stays on Fuji, got %s", active.Label)
		}
	}
}

func TestTreeModel_View(t *testing.T) {
	m := newTestTree(application.DefaultKeyMap(), false)
	press(m, "right")

	view := m.View()
	for _, want := range []string{"fruits.yaml", "Fruits", "Apples", "Pears", "Vegetables", "4/7 visible"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	if strings.Contains(view, "Fuji") {
		t.Error("Fuji is inside a collapsed branch")
	}
}
