package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"a11ytree/internal/adapters/markup"
	"a11ytree/internal/application"
	"a11ytree/internal/domain"
)

var navQuiet bool

var navCmd = &cobra.Command{
	Use:   "nav <commands>",
	Short: "Replay key presses against a tree",
	Long: `Replay a sequence of keys or command names against a freshly loaded
tree and print each transition, the expand/collapse events and the
resulting outline.

Keys are looked up in the configured key map; command names
(MoveDown, MoveUp, MoveRight, MoveLeft, Activate, Home, End) always work.

Examples:
  a11ytree-cli nav -s menu.html "right,down,down"
  a11ytree-cli nav -s tree.yaml "End Home MoveRight enter"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		tree, err := loadTree(ctx)
		if err != nil {
			return err
		}

		var events []string
		engine := newEngine(tree,
			application.WithOnExpand(func(n *domain.Node) {
				events = append(events, "expanded "+n.Path())
			}),
			application.WithOnCollapse(func(n *domain.Node) {
				events = append(events, "collapsed "+n.Path())
			}),
		)

		result, err := navigate(ctx, engine, args[0])
		if err != nil {
			return err
		}

		if !navQuiet {
			for i, step := range result.Steps {
				fmt.Fprintf(out, "%2d. %-10s %-28s active %s\n", i+1, step.Command, step.Effect, step.Active)
			}
			for _, e := range events {
				fmt.Fprintf(out, "hook: %s\n", e)
			}
			fmt.Fprintln(out)
		}

		return markup.WriteOutline(out, tree, false)
	},
}

func init() {
	navCmd.Flags().BoolVarP(&navQuiet, "quiet", "q", false, "print only the final outline")
	rootCmd.AddCommand(navCmd)
}
