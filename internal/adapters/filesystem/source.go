package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"a11ytree/internal/application"
	"a11ytree/internal/domain"
	"a11ytree/internal/logger"
	"a11ytree/internal/ports"
)

var _ ports.TreeSource = (*DirSource)(nil)

// DirSource implements ports.TreeSource over a directory hierarchy.
// Directories become branches and files become leaves; each node's Key is
// its absolute path.
type DirSource struct {
	root       string
	maxDepth   int
	showHidden bool
	readDir    func(name string) ([]os.DirEntry, error)
}

// Option configures a DirSource
type Option func(*DirSource)

// WithMaxDepth stops descending below depth levels (0 means unlimited)
func WithMaxDepth(depth int) Option {
	return func(s *DirSource) {
		s.maxDepth = depth
	}
}

// WithHidden includes dot files and directories
func WithHidden(show bool) Option {
	return func(s *DirSource) {
		s.showHidden = show
	}
}

// NewDirSource creates a new directory tree source
func NewDirSource(root string, opts ...Option) *DirSource {
	// Expand ~ to home directory
	if strings.HasPrefix(root, "~") {
		home, _ := os.UserHomeDir()
		root = filepath.Join(home, root[1:])
	}
	s := &DirSource{root: root, readDir: os.ReadDir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the root directory
func (s *DirSource) Name() string {
	return s.root
}

// Load walks the directory. The root itself is not a node: its entries
// are the root-level items.
func (s *DirSource) Load(ctx context.Context) (*domain.Tree, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, &application.SourceError{Path: s.root, Reason: "cannot stat directory", Err: err}
	}
	if !info.IsDir() {
		return nil, &application.SourceError{Path: s.root, Reason: "not a directory"}
	}

	items, err := s.walk(ctx, s.root, 1)
	if err != nil {
		return nil, err
	}
	return domain.NewTree(items...), nil
}

func (s *DirSource) walk(ctx context.Context, dir string, depth int) ([]*domain.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := s.readDir(dir)
	if err != nil {
		return nil, &application.SourceError{Path: dir, Reason: "cannot read directory", Err: err}
	}

	// Directories first, then files, each alphabetically
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	nodes := make([]*domain.Node, 0, len(entries))
	for _, entry := range entries {
		if !s.showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		n := domain.NewNode(entry.Name())
		n.Key = path

		// Symlinked directories are not followed, so the walk cannot loop
		if entry.IsDir() && (s.maxDepth == 0 || depth < s.maxDepth) {
			children, err := s.walk(ctx, path, depth+1)
			switch {
			case ctx.Err() != nil:
				return nil, ctx.Err()
			case err != nil:
				// An unreadable directory stays in the tree as a leaf
				logger.For("filesystem").Warn("skipping directory", "path", path, "error", err)
			default:
				n.Children = children
			}
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
