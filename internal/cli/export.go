package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deployledger/internal/cli/render"
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the recorded addresses of a chain",
		Long: `Write every recorded address of a chain as a flat address book keyed by
record path, for scripts and frontends.

Examples:
  deployledger export --chain arbitrum
  deployledger export --chain arbitrum --format json --output addresses.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			chain, err := resolveChain(cmd, app)
			if err != nil {
				return err
			}

			book, err := app.ExportAddresses.Run(cmd.Context(), chain.ID)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			renderer, err := render.NewExportRenderer(out, format)
			if err != nil {
				return err
			}
			return renderer.Render(book)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatYAML, "Output format (yaml or json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
