// Package source picks the tree source adapter for a location.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"a11ytree/internal/adapters/document"
	"a11ytree/internal/adapters/filesystem"
	"a11ytree/internal/adapters/markup"
	"a11ytree/internal/adapters/sqlite"
	"a11ytree/internal/application"
	"a11ytree/internal/ports"
)

// Options tunes the adapters Open may choose
type Options struct {
	HTMLRootID string // list id for HTML documents
	MaxDepth   int    // directory depth limit, 0 for none
	ShowHidden bool   // include dot entries in directory trees
}

// Open returns the source for location:
//
//	dir/                 directory tree
//	page.html, page.htm  nested ul/ol lists
//	tree.yaml, tree.json nested list documents
//	trees.db#name        tree stored with the import command
func Open(location string, opts Options) (ports.TreeSource, error) {
	if err := application.ValidateRequired("sourcePath", location); err != nil {
		return nil, err
	}

	location = expandHome(location)

	if path, name, ok := strings.Cut(location, "#"); ok && isDatabase(path) {
		if strings.TrimSpace(name) == "" {
			return nil, &application.ValidationError{Field: "sourcePath", Message: "database source needs a tree name, e.g. trees.db#name"}
		}
		return sqlite.NewTreeSource(path, name), nil
	}

	if info, err := os.Stat(location); err == nil && info.IsDir() {
		var fsOpts []filesystem.Option
		if opts.MaxDepth > 0 {
			fsOpts = append(fsOpts, filesystem.WithMaxDepth(opts.MaxDepth))
		}
		if opts.ShowHidden {
			fsOpts = append(fsOpts, filesystem.WithHidden(true))
		}
		return filesystem.NewDirSource(location, fsOpts...), nil
	}

	switch ext := strings.ToLower(filepath.Ext(location)); ext {
	case ".html", ".htm", ".xhtml":
		var mOpts []markup.SourceOption
		if opts.HTMLRootID != "" {
			mOpts = append(mOpts, markup.WithRootID(opts.HTMLRootID))
		}
		return markup.NewSource(location, mOpts...), nil
	case ".yaml", ".yml", ".json":
		return document.NewSource(location)
	case ".db", ".sqlite", ".sqlite3":
		return nil, &application.ValidationError{Field: "sourcePath", Message: "database source needs a tree name, e.g. trees.db#name"}
	}

	return nil, fmt.Errorf("%s: %w", location, application.ErrUnsupportedFormat)
}

// OpenAll opens several locations with the same options
func OpenAll(locations []string, opts Options) ([]ports.TreeSource, error) {
	sources := make([]ports.TreeSource, 0, len(locations))
	for _, loc := range locations {
		src, err := Open(loc, opts)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func isDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// WatchPath returns the file system path that changes when location
// changes, for live reload
func WatchPath(location string) string {
	location = expandHome(location)
	if path, _, ok := strings.Cut(location, "#"); ok && isDatabase(path) {
		return path
	}
	return location
}
