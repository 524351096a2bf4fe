package document

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
)

const fruitsYAML = `
items:
  - Fruits:
      - label: Apples
        key: apples
        children: [Fuji, Gala]
      - Pears
  - Vegetables: Leeks
  - 42
`

const fruitsJSON = `[
  {"Fruits": [
    {"label": "Apples", "key": "apples", "children": ["Fuji", "Gala"]},
    "Pears"
  ]},
  {"Vegetables": "Leeks"},
  42
]`

func labelPaths(tree *domain.Tree) []string {
	var out []string
	domain.Annotate(tree).Walk(func(n *domain.Node) bool {
		out = append(out, n.Path()+" "+n.Label)
		return true
	})
	return out
}

var wantFruits = []string{
	"1 Fruits",
	"1.1 Apples",
	"1.1.1 Fuji",
	"1.1.2 Gala",
	"1.2 Pears",
	"2 Vegetables",
	"2.1 Leeks",
	"3 42",
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"yaml", fruitsYAML, FormatYAML},
		{"json", fruitsJSON, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Decode(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, wantFruits, labelPaths(tree))
			assert.Equal(t, "apples", tree.Lookup("1.1").Key)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	tree, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, tree.Items)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"ambiguous mapping", "- {A: [x], B: [y]}", FormatYAML},
		{"unknown field", `[{"label": "A", "kids": []}]`, FormatJSON},
		{"null item", "- A\n- \n", FormatYAML},
		{"unknown format", "- A", Format("toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			assert.ErrorIs(t, err, application.ErrUnsupportedFormat)
		})
	}

	_, err := Decode(strings.NewReader("{not json"), FormatJSON)
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	tree, err := Decode(strings.NewReader(fruitsYAML), FormatYAML)
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, tree, format))

			again, err := Decode(&buf, format)
			require.NoError(t, err)
			assert.Equal(t, wantFruits, labelPaths(again))
			assert.Equal(t, "apples", again.Lookup("1.1").Key)
		})
	}
}

func TestEncode_PlainLeaves(t *testing.T) {
	tree := domain.NewTree(domain.NewNode("A", domain.NewNode("B")), domain.NewNode("C"))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tree, FormatYAML))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "- label: A\n"))
	assert.Contains(t, out, "- B\n")
	assert.True(t, strings.HasSuffix(out, "- C\n"))
	assert.NotContains(t, out, "key:")
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("tree.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFromPath("/tmp/tree.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = FormatFromPath("tree.toml")
	assert.ErrorIs(t, err, application.ErrUnsupportedFormat)
}

func TestSource_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruits.json")
	require.NoError(t, os.WriteFile(path, []byte(fruitsJSON), 0644))

	src, err := NewSource(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Name())

	tree, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, tree.Items, 3)

	missing, err := NewSource(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	_, err = missing.Load(context.Background())
	var srcErr *application.SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
