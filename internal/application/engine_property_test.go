package application

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"a11ytree/internal/domain"
)

func drawNodes(t *rapid.T, depth int, prefix string) []*domain.Node {
	maxChildren := 4
	if depth > 3 {
		maxChildren = 0
	}
	count := rapid.IntRange(0, maxChildren).Draw(t, "children"+prefix)

	nodes := make([]*domain.Node, 0, count)
	for i := 0; i < count; i++ {
		label := fmt.Sprintf("%s%d", prefix, i+1)
		nodes = append(nodes, domain.NewNode(label, drawNodes(t, depth+1, label+".")...))
	}
	return nodes
}

func drawTree(t *rapid.T) *domain.Tree {
	items := drawNodes(t, 1, "")
	if len(items) == 0 {
		items = []*domain.Node{domain.NewNode("1")}
	}
	return domain.Annotate(domain.NewTree(items...))
}

func indexOf(nodes []*domain.Node, target *domain.Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}

func checkInvariants(t *rapid.T, tree *domain.Tree) {
	active := 0
	tree.Walk(func(n *domain.Node) bool {
		if n.Active {
			active++
		}
		if n.Expanded && !n.HasChildren {
			t.Fatalf("%s expanded without children", n.Label)
		}
		return true
	})
	if active != 1 {
		t.Fatalf("expected one active node, got %d", active)
	}
}

func TestProperty_InvariantsHoldForAnyCommandStream(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := drawTree(t)
		e := NewEngine(tree)
		cmds := rapid.SliceOfN(rapid.SampledFrom(domain.Commands), 1, 60).Draw(t, "commands")

		checkInvariants(t, tree)
		for _, cmd := range cmds {
			e.Dispatch(cmd)
			checkInvariants(t, tree)
			if !e.Active().IsVisible() {
				t.Fatalf("%s left the cursor on hidden node %s", cmd, e.Active().Label)
			}
		}
	})
}

func TestProperty_VerticalMovesFollowVisibleOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := drawTree(t)
		e := NewEngine(tree)
		setup := rapid.SliceOfN(rapid.SampledFrom(domain.Commands), 0, 30).Draw(t, "setup")
		for _, cmd := range setup {
			e.Dispatch(cmd)
		}

		visible := tree.Visible()
		before := e.Active()
		idx := indexOf(visible, before)

		e.Dispatch(domain.MoveUp)
		switch {
		case idx == 0 && e.Active() != before:
			t.Fatalf("MoveUp from the first visible node moved to %s", e.Active().Label)
		case idx > 0 && e.Active() != visible[idx-1]:
			t.Fatalf("MoveUp from %s: expected %s, got %s", before.Label, visible[idx-1].Label, e.Active().Label)
		}

		e.Click(before)
		e.Dispatch(domain.MoveDown)
		if moved := e.Active(); moved != before {
			if idx+1 >= len(visible) || moved != visible[idx+1] {
				t.Fatalf("MoveDown from %s jumped to %s", before.Label, moved.Label)
			}
		}
	})
}

func TestProperty_HomeAndEnd(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := drawTree(t)
		e := NewEngine(tree)
		setup := rapid.SliceOfN(rapid.SampledFrom(domain.Commands), 0, 30).Draw(t, "setup")
		for _, cmd := range setup {
			e.Dispatch(cmd)
		}

		e.Dispatch(domain.End)
		visible := tree.Visible()
		if e.Active() != visible[len(visible)-1] {
			t.Fatalf("End: expected %s, got %s", visible[len(visible)-1].Label, e.Active().Label)
		}

		e.Dispatch(domain.Home)
		first := e.Active()
		e.Dispatch(domain.Home)
		if e.Active() != first || first != tree.First() {
			t.Fatalf("Home is not idempotent")
		}
	})
}

func TestProperty_RightLeftRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := drawTree(t)
		e := NewEngine(tree)
		setup := rapid.SliceOfN(rapid.SampledFrom(domain.Commands), 0, 30).Draw(t, "setup")
		for _, cmd := range setup {
			e.Dispatch(cmd)
		}

		active := e.Active()
		if !active.IsCollapsed() {
			t.Skip("round trip starts from a collapsed branch")
		}

		e.Dispatch(domain.MoveRight)
		e.Dispatch(domain.MoveLeft)

		if e.Active() != active || active.Expanded {
			t.Fatalf("round trip changed state of %s", active.Label)
		}
	})
}
