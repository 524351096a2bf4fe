package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"a11ytree/internal/domain"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List key bindings",
	Long: `List the keys bound to each navigation command, including the
overrides from the keys section of the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keys, err := cfg.KeyMap()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, c := range domain.Commands {
			bound := keys.Keys(c)
			if len(bound) == 0 {
				fmt.Fprintf(out, "%-10s (unbound)\n", c)
				continue
			}
			fmt.Fprintf(out, "%-10s %s\n", c, strings.Join(bound, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
