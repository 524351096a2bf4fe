package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"a11ytree/internal/adapters/clipboard"
	"a11ytree/internal/adapters/editor"
	"a11ytree/internal/adapters/source"
	"a11ytree/internal/adapters/tui"
	"a11ytree/internal/adapters/watcher"
	"a11ytree/internal/config"
	"a11ytree/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "config file (default "+config.ConfigPath()+")")
	htmlRoot := flag.String("html-root", "", "id of the list to read from an HTML file")
	maxDepth := flag.Int("max-depth", 0, "depth limit for directory trees (0 = unlimited)")
	hidden := flag.Bool("hidden", false, "include dotfiles in directory trees")
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}
	if flag.NArg() > 0 {
		cfg.Source = flag.Arg(0)
	}

	if err := logger.Init(cfg.LoggerOptions("a11ytree")); err != nil {
		return err
	}
	defer logger.Close()

	src, err := source.Open(cfg.Source, source.Options{
		HTMLRootID: *htmlRoot,
		MaxDepth:   *maxDepth,
		ShowHidden: *hidden,
	})
	if err != nil {
		return err
	}

	keys, err := cfg.KeyMap()
	if err != nil {
		return err
	}

	opts := []tui.Option{
		tui.WithKeyMap(keys),
		tui.WithEngineOptions(cfg.EngineOptions()...),
		tui.WithFocusOnCollapse(cfg.FocusOnCollapse),
		tui.WithEditor(editor.NewOpener(editor.WithEditor(cfg.Editor))),
	}
	if clipboard.Available() {
		opts = append(opts, tui.WithClipboard(clipboard.System{}))
	}

	if cfg.Watch {
		if w, err := startWatcher(source.WatchPath(cfg.Source)); err != nil {
			logger.For("watcher").Warn("live reload disabled", "error", err)
		} else {
			defer w.Stop()
			opts = append(opts, tui.WithWatcher(w))
		}
	}

	app := tui.NewApp(src, opts...)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// startWatcher watches path for live reload. Watch errors, including the
// source being removed, go to the log since the screen belongs to the UI.
func startWatcher(path string) (*watcher.Watcher, error) {
	w, err := watcher.NewWatcher(path,
		watcher.WithOnError(func(err error) {
			logger.For("watcher").Warn("watch", "path", path, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
