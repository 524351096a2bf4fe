// Package document reads and writes trees stored as nested lists in YAML
// or JSON documents.
//
// Each list element is one node, written in any of these forms:
//
//	- Leaf                       # plain string
//	- Branch: [Child, Other]     # single-key mapping
//	- label: Branch              # explicit form
//	  key: optional-id
//	  children: [Child]
//
// The document is either a list of root-level items or a mapping with an
// "items" list.
package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
	"a11ytree/internal/ports"
)

// Format is a document encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%s: %w", path, application.ErrUnsupportedFormat)
}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("format %q: %w", s, application.ErrUnsupportedFormat)
}

var _ ports.TreeSource = (*Source)(nil)

// Source implements ports.TreeSource for YAML and JSON files
type Source struct {
	path   string
	format Format
}

// NewSource creates a document source, detecting the format from the
// file extension
func NewSource(path string) (*Source, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &Source{path: path, format: format}, nil
}

// Name returns the document path
func (s *Source) Name() string {
	return s.path
}

// Load reads and decodes the document
func (s *Source) Load(ctx context.Context) (*domain.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &application.SourceError{Path: s.path, Reason: "cannot read document", Err: err}
	}

	tree, err := Decode(bytes.NewReader(data), s.format)
	if err != nil {
		return nil, &application.SourceError{Path: s.path, Reason: "invalid document", Err: err}
	}
	return tree, nil
}

// Decode reads a tree document in the given format
func Decode(r io.Reader, format Format) (*domain.Tree, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("format %q: %w", format, application.ErrUnsupportedFormat)
	}

	if raw == nil {
		return domain.NewTree(), nil
	}
	if m, ok := raw.(map[string]any); ok {
		if items, ok := m["items"]; ok {
			raw = items
		}
	}

	items, err := convertList(raw, "")
	if err != nil {
		return nil, err
	}
	return domain.NewTree(items...), nil
}

func convertList(raw any, path string) ([]*domain.Node, error) {
	list, ok := raw.([]any)
	if !ok {
		// A lone element stands for a one-item list
		n, err := convertNode(raw, childPath(path, 0))
		if err != nil {
			return nil, err
		}
		return []*domain.Node{n}, nil
	}

	nodes := make([]*domain.Node, 0, len(list))
	for i, v := range list {
		n, err := convertNode(v, childPath(path, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func convertNode(raw any, path string) (*domain.Node, error) {
	switch v := raw.(type) {
	case string:
		return domain.NewNode(v), nil
	case int, int64, uint64, float64, bool:
		return domain.NewNode(fmt.Sprint(v)), nil

	case map[string]any:
		if label, ok := v["label"]; ok {
			return convertExplicit(v, label, path)
		}
		if len(v) != 1 {
			return nil, fmt.Errorf("item %s: mapping needs a label field or a single key: %w", path, application.ErrUnsupportedFormat)
		}
		for label, children := range v {
			n := domain.NewNode(label)
			if children != nil {
				kids, err := convertList(children, path)
				if err != nil {
					return nil, err
				}
				n.Children = kids
			}
			return n, nil
		}
	}

	return nil, fmt.Errorf("item %s: unsupported value of type %T: %w", path, raw, application.ErrUnsupportedFormat)
}

func convertExplicit(v map[string]any, label any, path string) (*domain.Node, error) {
	text, ok := label.(string)
	if !ok {
		text = fmt.Sprint(label)
	}
	n := domain.NewNode(text)

	if key, ok := v["key"]; ok && key != nil {
		n.Key = fmt.Sprint(key)
	}

	if children, ok := v["children"]; ok && children != nil {
		kids, err := convertList(children, path)
		if err != nil {
			return nil, err
		}
		n.Children = kids
	}

	for field := range v {
		switch field {
		case "label", "key", "children":
		default:
			return nil, fmt.Errorf("item %s: unknown field %q: %w", path, field, application.ErrUnsupportedFormat)
		}
	}
	return n, nil
}

func childPath(parent string, i int) string {
	if parent == "" {
		return strconv.Itoa(i + 1)
	}
	return parent + "." + strconv.Itoa(i+1)
}

// entry is the explicit node form used when writing documents
type entry struct {
	Label    string `yaml:"label" json:"label"`
	Key      string `yaml:"key,omitempty" json:"key,omitempty"`
	Children []any  `yaml:"children,omitempty" json:"children,omitempty"`
}

// Encode writes tree in the given format. Plain leaves are written as
// strings; everything else uses the explicit form.
func Encode(w io.Writer, tree *domain.Tree, format Format) error {
	items := encodeList(tree.Items)

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("format %q: %w", format, application.ErrUnsupportedFormat)
}

func encodeList(nodes []*domain.Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		if len(n.Children) == 0 && n.Key == "" {
			out = append(out, n.Label)
			continue
		}
		out = append(out, entry{
			Label:    n.Label,
			Key:      n.Key,
			Children: encodeList(n.Children),
		})
	}
	return out
}
