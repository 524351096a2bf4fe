package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
)

const (
	HasChildrenClass = "at-has-children"
	NoChildrenClass  = "at-no-children"
)

// Render writes tree as a nested list carrying the ARIA tree-view
// attributes of its current state. Collapsed groups are still written;
// hiding them is left to the stylesheet, keyed on aria-expanded.
func Render(w io.Writer, tree *domain.Tree, opts application.Options) error {
	root := element(atom.Ul,
		html.Attribute{Key: "role", Val: string(tree.Role())},
		html.Attribute{Key: "tabindex", Val: "0"},
	)

	var marker []*html.Node
	if opts.InsertToggle {
		var err error
		if marker, err = parseMarker(opts.ToggleMarker); err != nil {
			return err
		}
	}

	appendItems(root, tree.Items, opts.InsertToggle, marker)

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// parseMarker parses the custom toggle markup once; each toggle gets a
// deep copy of the resulting nodes
func parseMarker(marker string) ([]*html.Node, error) {
	if strings.TrimSpace(marker) == "" {
		return nil, nil
	}
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(marker), context)
	if err != nil {
		return nil, fmt.Errorf("toggle marker: %w", err)
	}
	return nodes, nil
}

func appendItems(list *html.Node, nodes []*domain.Node, insertToggle bool, marker []*html.Node) {
	for _, n := range nodes {
		li := element(atom.Li,
			html.Attribute{Key: "role", Val: string(n.Role())},
			html.Attribute{Key: "aria-level", Val: strconv.Itoa(n.Depth)},
			html.Attribute{Key: "aria-selected", Val: strconv.FormatBool(n.Active)},
		)
		if n.Key != "" && !strings.ContainsAny(n.Key, " \t\n") {
			li.Attr = append(li.Attr, html.Attribute{Key: "id", Val: n.Key})
		}

		if !n.HasChildren {
			li.Attr = append(li.Attr, html.Attribute{Key: "class", Val: NoChildrenClass})
			li.AppendChild(&html.Node{Type: html.TextNode, Data: n.Label})
			list.AppendChild(li)
			continue
		}

		li.Attr = append(li.Attr,
			html.Attribute{Key: "class", Val: HasChildrenClass},
			html.Attribute{Key: "aria-expanded", Val: strconv.FormatBool(n.Expanded)},
		)
		if insertToggle {
			toggle := element(atom.Div,
				html.Attribute{Key: "class", Val: ToggleClass},
				html.Attribute{Key: "aria-hidden", Val: "true"},
			)
			for _, m := range marker {
				toggle.AppendChild(clone(m))
			}
			li.AppendChild(toggle)
		}
		li.AppendChild(&html.Node{Type: html.TextNode, Data: n.Label})

		group := element(atom.Ul, html.Attribute{Key: "role", Val: string(n.GroupRole())})
		appendItems(group, n.Children, insertToggle, marker)
		li.AppendChild(group)

		list.AppendChild(li)
	}
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

func clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		Data:      n.Data,
		DataAtom:  n.DataAtom,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(clone(child))
	}
	return c
}
