package mcp

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a11ytree/internal/adapters/source"
	"a11ytree/internal/application"
	"a11ytree/internal/domain"
	"a11ytree/internal/ports"
)

const fruitsYAML = `
- Fruits:
    - Apples: [Fuji, Gala]
    - Pears
- Vegetables: [Leeks]
`

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fruits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fruitsYAML), 0644))

	open := func(location string) (ports.TreeSource, error) {
		return source.Open(location, source.Options{})
	}
	return NewSession(open, application.DefaultKeyMap()), path
}

func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, res.IsError
}

func TestTools_RequireLoadedTree(t *testing.T) {
	sess, _ := newTestSession(t)

	text, isErr := call(t, treeHandler(sess), nil)
	assert.True(t, isErr)
	assert.Contains(t, text, "call the load tool first")

	_, isErr = call(t, navigateHandler(sess), map[string]any{"commands": "down"})
	assert.True(t, isErr)

	_, isErr = call(t, reloadHandler(sess), nil)
	assert.True(t, isErr)
}

func TestTools_LoadAndNavigate(t *testing.T) {
	sess, path := newTestSession(t)

	text, isErr := call(t, loadHandler(sess), map[string]any{"source": path})
	require.False(t, isErr, text)
	assert.Equal(t, "Loaded 7 nodes (2 at the top level).", text)

	text, isErr = call(t, navigateHandler(sess), map[string]any{"commands": "right, down, MoveRight, enter"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Hook: expanded 1\n")
	assert.Contains(t, text, "Hook: expanded 1.1\n")
	assert.Contains(t, text, "Hook: collapsed 1.1\n")
	assert.Contains(t, text, "Active: 1.1  Fruits / Apples  (level 2, collapsed)")

	text, _ = call(t, treeHandler(sess), nil)
	assert.Equal(t, "  ▼ Fruits\n>   ▶ Apples\n      Pears\n  ▶ Vegetables\n", text)

	text, isErr = call(t, navigateHandler(sess), map[string]any{"commands": "sideways"})
	assert.True(t, isErr)
	assert.Contains(t, text, "sideways")
}

func TestTools_CallerHooksKeepEventReport(t *testing.T) {
	_, path := newTestSession(t)

	var expanded []string
	open := func(location string) (ports.TreeSource, error) {
		return source.Open(location, source.Options{})
	}
	sess := NewSession(open, application.DefaultKeyMap(),
		application.WithOnExpand(func(n *domain.Node) { expanded = append(expanded, n.Label) }),
	)

	_, isErr := call(t, loadHandler(sess), map[string]any{"source": path})
	require.False(t, isErr)

	text, isErr := call(t, navigateHandler(sess), map[string]any{"commands": "right"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Hook: expanded 1\n")
	assert.Equal(t, []string{"Fruits"}, expanded)
}

func TestTools_PointerActions(t *testing.T) {
	sess, path := newTestSession(t)
	_, isErr := call(t, loadHandler(sess), map[string]any{"source": path})
	require.False(t, isErr)

	text, isErr := call(t, toggleHandler(sess), map[string]any{"path": "2"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Hook: expanded 2")
	assert.Contains(t, text, "Active: 1  Fruits")

	text, isErr = call(t, activateHandler(sess), map[string]any{"path": "2.1"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "Active: 2.1  Vegetables / Leeks  (level 2, leaf)")

	text, isErr = call(t, activateHandler(sess), map[string]any{"path": "9.9"})
	assert.True(t, isErr)
	assert.Contains(t, text, "no node at 9.9")

	text, _ = call(t, stateHandler(sess), nil)
	assert.Contains(t, text, "2.1")
}

func TestTools_SearchRenderKeys(t *testing.T) {
	sess, path := newTestSession(t)
	_, isErr := call(t, loadHandler(sess), map[string]any{"source": path})
	require.False(t, isErr)

	text, isErr := call(t, searchHandler(sess), map[string]any{"query": "gala"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "1.1.2  Fruits / Apples / Gala")

	text, _ = call(t, searchHandler(sess), map[string]any{"query": "zzz"})
	assert.Equal(t, "No results found.", text)

	text, isErr = call(t, renderHandler(sess), map[string]any{"format": "html"})
	require.False(t, isErr, text)
	assert.Contains(t, text, `role="tree"`)
	assert.Contains(t, text, `aria-selected="true"`)

	text, isErr = call(t, renderHandler(sess), map[string]any{"format": "json"})
	require.False(t, isErr, text)
	assert.Contains(t, text, `"label": "Fruits"`)

	text, _ = call(t, keysHandler(sess), nil)
	assert.Contains(t, text, "MoveDown   down")
}

func TestSession_ConcurrentCalls(t *testing.T) {
	sess, path := newTestSession(t)
	_, err := sess.Load(context.Background(), path)
	require.NoError(t, err)

	navigate := navigateHandler(sess)
	tree := treeHandler(sess)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := mcp.CallToolRequest{}
			req.Params.Arguments = map[string]any{"commands": "right down end home"}
			for j := 0; j < 20; j++ {
				navigate(context.Background(), req)
				tree(context.Background(), mcp.CallToolRequest{})
			}
		}()
	}
	wg.Wait()

	err = sess.With(func(e *application.Engine) error {
		active := 0
		e.Tree().Walk(func(n *domain.Node) bool {
			if n.Active {
				active++
			}
			return true
		})
		assert.Equal(t, 1, active)
		return nil
	})
	require.NoError(t, err)
}
