package markup

import (
	"bufio"
	"io"
	"strings"

	"a11ytree/internal/domain"
)

// Outline glyphs
const (
	OutlineExpanded  = "▼ "
	OutlineCollapsed = "▶ "
	OutlineLeaf      = "  "
	OutlineCursor    = "> "
)

// WriteOutline writes tree as an indented text outline, one node per line,
// with the active node marked. Hidden nodes are written only when all is set.
func WriteOutline(w io.Writer, tree *domain.Tree, all bool) error {
	bw := bufio.NewWriter(w)
	writeOutline(bw, tree.Items, all)
	return bw.Flush()
}

func writeOutline(w *bufio.Writer, nodes []*domain.Node, all bool) {
	for _, n := range nodes {
		if n.Active {
			w.WriteString(OutlineCursor)
		} else {
			w.WriteString("  ")
		}
		w.WriteString(strings.Repeat("  ", max(n.Depth-1, 0)))

		switch {
		case n.IsExpanded():
			w.WriteString(OutlineExpanded)
		case n.HasChildren:
			w.WriteString(OutlineCollapsed)
		default:
			w.WriteString(OutlineLeaf)
		}
		w.WriteString(n.Label)
		w.WriteByte('\n')

		if n.Expanded || all {
			writeOutline(w, n.Children, all)
		}
	}
}
