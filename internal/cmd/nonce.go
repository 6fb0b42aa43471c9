package cmd

import (
	"fmt"

	"github.com/dendrascience/toolbelt/util"
	"github.com/spf13/cobra"
)

// NewNonceCmd creates and returns the nonce subcommand for the toolbelt CLI.
func NewNonceCmd() *cobra.Command {
	var (
		digits int
		count  int
	)

	cmd := &cobra.Command{
		Use:   "nonce",
		Short: "Print random hex strings",
		Long: `Print random lowercase hex strings, one per line. Useful for unique
names of scratch databases, buckets and topics in tests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if digits < 1 {
				return fmt.Errorf("--digits must be positive, got %d", digits)
			}
			for range count {
				fmt.Fprintln(cmd.OutOrStdout(), util.Nonce(digits))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&digits, "digits", "n", 8, "Number of hex digits")
	cmd.Flags().IntVarP(&count, "count", "c", 1, "Number of nonces to print")

	return cmd
}
