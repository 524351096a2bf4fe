package cmd

import (
	"github.com/spf13/cobra"

	"a11ytree/internal/adapters/document"
	"a11ytree/internal/adapters/markup"
)

var (
	renderFormat string
	renderNav    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the annotated tree",
	Long: `Render the tree after an optional key sequence.

html writes a ul/li tree with role, aria-level, aria-expanded and
aria-selected attributes and toggle elements on branches. yaml and json
write the structure in the document format accepted as a source.

Examples:
  a11ytree-cli render -s tree.yaml
  a11ytree-cli render -s menu.html --nav "right,down" --format html
  a11ytree-cli render -s ~/notes --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		tree, err := loadTree(ctx)
		if err != nil {
			return err
		}
		engine := newEngine(tree)
		if _, err := navigate(ctx, engine, renderNav); err != nil {
			return err
		}

		if renderFormat == "html" {
			return markup.Render(out, tree, engine.Options())
		}
		format, err := document.ParseFormat(renderFormat)
		if err != nil {
			return err
		}
		return document.Encode(out, tree, format)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "output format: html, yaml or json")
	renderCmd.Flags().StringVar(&renderNav, "nav", "", "keys or commands to apply before rendering")
	rootCmd.AddCommand(renderCmd)
}
