package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"a11ytree/internal/adapters/source"
	"a11ytree/internal/application"
	"a11ytree/internal/application/commands"
	"a11ytree/internal/config"
	"a11ytree/internal/domain"
	"a11ytree/internal/logger"
	"a11ytree/internal/ports"
)

var (
	configPath string
	sourcePath string
	sourceOpts source.Options
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "a11ytree-cli",
	Short: "Navigate accessible tree views from the command line",
	Long: `a11ytree-cli loads a tree (HTML nested list, YAML, JSON, a directory
or a tree stored in SQLite) and applies the keyboard navigation of an
ARIA tree view to it.

It can print the tree, replay key sequences, render the annotated tree
with ARIA attributes, search labels, and import trees into a database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		if sourcePath == "" {
			sourcePath = cfg.Source
		}
		return logger.Init(cfg.LoggerOptions("a11ytree-cli"))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVarP(&sourcePath, "source", "s", "", "tree source: file, directory or db#tree")
	rootCmd.PersistentFlags().StringVar(&sourceOpts.HTMLRootID, "html-root", "", "id of the list to read from an HTML file")
	rootCmd.PersistentFlags().IntVar(&sourceOpts.MaxDepth, "max-depth", 0, "depth limit for directory trees (0 = unlimited)")
	rootCmd.PersistentFlags().BoolVar(&sourceOpts.ShowHidden, "hidden", false, "include dotfiles in directory trees")
}

// openSource resolves the --source flag or the configured source
func openSource() (ports.TreeSource, error) {
	return source.Open(sourcePath, sourceOpts)
}

// loadTree loads and annotates the selected source
func loadTree(ctx context.Context) (*domain.Tree, error) {
	src, err := openSource()
	if err != nil {
		return nil, err
	}
	return commands.NewLoadTreeCommand(src).Execute(ctx)
}

// newEngine builds an engine with the configured options plus opts
func newEngine(tree *domain.Tree, opts ...application.Option) *application.Engine {
	return application.NewEngine(tree, append(cfg.EngineOptions(), opts...)...)
}

// navigate replays the commands parsed from list with the configured keys
func navigate(ctx context.Context, engine *application.Engine, list string) (*commands.NavigateResult, error) {
	if list == "" {
		return &commands.NavigateResult{Active: engine.Active()}, nil
	}
	keys, err := cfg.KeyMap()
	if err != nil {
		return nil, err
	}
	cmds, err := application.ParseCommands(list, keys)
	if err != nil {
		return nil, err
	}
	return commands.NewNavigateCommand(engine, cmds...).Execute(ctx)
}
