package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"a11ytree/internal/application/commands"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search node labels",
	Long: `Search the labels of every node, including nodes inside collapsed
branches. Results are ranked by relevance using fuzzy matching and
printed with their positional path.

Examples:
  a11ytree-cli search -s menu.html apple
  a11ytree-cli search -s ~/notes --limit 5 readme`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		tree, err := loadTree(ctx)
		if err != nil {
			return err
		}

		search := commands.NewSearchCommand(tree, args[0])
		search.Limit = searchLimit
		results, err := search.Execute(ctx)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}

		for _, r := range results {
			fmt.Fprintf(out, "%-8s %s\n", r.Path, r.Trail)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results (0 = all)")
	rootCmd.AddCommand(searchCmd)
}
