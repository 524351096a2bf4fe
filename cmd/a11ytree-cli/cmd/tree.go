package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"a11ytree/internal/adapters/markup"
	"a11ytree/internal/adapters/source"
	"a11ytree/internal/application/commands"
)

var treeAll bool

var treeCmd = &cobra.Command{
	Use:   "tree [location...]",
	Short: "Display the tree outline",
	Long: `Display the visible rows of a freshly loaded tree, or every node with
--all. Several locations are loaded concurrently and printed in order.

Examples:
  a11ytree-cli tree -s menu.html
  a11ytree-cli tree --all ~/notes
  a11ytree-cli tree menu.html trees.db#menu`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			tree, err := loadTree(ctx)
			if err != nil {
				return err
			}
			return markup.WriteOutline(out, tree, treeAll)
		}

		sources, err := source.OpenAll(args, sourceOpts)
		if err != nil {
			return err
		}
		results, err := commands.NewLoadAllCommand(sources...).Execute(ctx)
		if err != nil {
			return err
		}

		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# %s\n", r.Name)
			if err := markup.WriteOutline(out, r.Tree, treeAll); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVarP(&treeAll, "all", "a", false, "show collapsed descendants too")
	rootCmd.AddCommand(treeCmd)
}
