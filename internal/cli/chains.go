package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/deployledger/internal/cli/render"
)

// NewChainsCmd creates the chains command
func NewChainsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "List supported chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			return render.NewChainsRenderer(cmd.OutOrStdout()).Render(app.Chains.All())
		},
	}
}
