package markup

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
	"a11ytree/internal/ports"
)

// ToggleClass marks the toggle affordance inserted in front of branch labels
const ToggleClass = "at-toggle"

var _ ports.TreeSource = (*Source)(nil)

// Source implements ports.TreeSource for HTML documents holding nested
// ul/ol lists
type Source struct {
	path   string
	rootID string
}

// SourceOption configures a Source
type SourceOption func(*Source)

// WithRootID selects the list element with the given id instead of the
// first list in the document
func WithRootID(id string) SourceOption {
	return func(s *Source) {
		s.rootID = id
	}
}

// NewSource creates an HTML tree source
func NewSource(path string, opts ...SourceOption) *Source {
	s := &Source{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the document path
func (s *Source) Name() string {
	return s.path
}

// Load reads and parses the document
func (s *Source) Load(ctx context.Context) (*domain.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &application.SourceError{Path: s.path, Reason: "cannot open document", Err: err}
	}
	defer f.Close()

	tree, err := Parse(f, s.rootID)
	if err != nil {
		return nil, &application.SourceError{Path: s.path, Reason: "invalid document", Err: err}
	}
	return tree, nil
}

// Parse builds a tree from the first ul/ol element of r, or from the list
// with id rootID when it is set. List items become nodes labelled with
// their own text; lists nested in an item become its children.
func Parse(r io.Reader, rootID string) (*domain.Tree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	root := findList(doc, rootID)
	if root == nil {
		if rootID != "" {
			return nil, fmt.Errorf("list #%s: %w", rootID, application.ErrNotFound)
		}
		return nil, fmt.Errorf("no ul or ol element: %w", application.ErrNotFound)
	}

	return domain.NewTree(parseItems(root)...), nil
}

func isList(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Ul || n.DataAtom == atom.Ol)
}

func isItem(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Li
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findList(n *html.Node, id string) *html.Node {
	if isList(n) && (id == "" || attr(n, "id") == id) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findList(c, id); found != nil {
			return found
		}
	}
	return nil
}

// parseItems converts the li children of a list element
func parseItems(list *html.Node) []*domain.Node {
	var nodes []*domain.Node
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if !isItem(c) {
			continue
		}

		var label strings.Builder
		var children []*domain.Node
		scanItem(c, &label, &children)

		n := domain.NewNode(strings.Join(strings.Fields(label.String()), " "), children...)
		n.Key = attr(c, "id")
		nodes = append(nodes, n)
	}
	return nodes
}

// scanItem collects the text of an item and its nested lists. Nested lists
// are not part of the label; neither are toggle affordances from a
// previous rendering.
func scanItem(n *html.Node, label *strings.Builder, children *[]*domain.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			label.WriteString(c.Data)
		case isList(c):
			*children = append(*children, parseItems(c)...)
		case isItem(c):
			// stray li outside a list
		case c.Type == html.ElementNode && hasClass(c, ToggleClass):
		case c.Type == html.ElementNode:
			scanItem(c, label, children)
		}
	}
}
