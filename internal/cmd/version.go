package cmd

import (
	"github.com/dendrascience/toolbelt/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates and returns the version subcommand for the toolbelt CLI.
func NewVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return version.WriteJSON(cmd.OutOrStdout())
			}
			version.PrintVersion(cmd.OutOrStdout(), "toolbelt")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version information as JSON")

	return cmd
}
