package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"a11ytree/internal/adapters/sqlite"
	"a11ytree/internal/application/commands"
)

var dbPath string

var importCmd = &cobra.Command{
	Use:   "import <name>",
	Short: "Store the source tree in the database",
	Long: `Import the tree from --source into the SQLite tree store under
name, replacing any tree with the same name. Stored trees can be
loaded back with the source "trees.db#name".

Examples:
  a11ytree-cli import -s menu.html menu
  a11ytree-cli import -s ~/notes --db ./trees.db notes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource()
		if err != nil {
			return err
		}

		store := sqlite.NewStore()
		if err := store.Open(storePath()); err != nil {
			return err
		}
		defer store.Close()

		n, err := commands.NewImportCommand(src, store, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d nodes into %s#%s\n", n, store.Path(), args[0])
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trees in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := sqlite.NewStore()
		if err := store.Open(storePath()); err != nil {
			return err
		}
		defer store.Close()

		names, err := store.Trees(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a tree from the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := sqlite.NewStore()
		if err := store.Open(storePath()); err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

// storePath prefers --db, then the configured database, then the default
func storePath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.Database
}

func init() {
	for _, c := range []*cobra.Command{importCmd, listCmd, deleteCmd} {
		c.Flags().StringVar(&dbPath, "db", "", "tree database (default "+sqlite.DefaultPath()+")")
		rootCmd.AddCommand(c)
	}
}
