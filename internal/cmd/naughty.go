package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewNaughtyCmd creates and returns the naughty subcommand for the toolbelt CLI.
// It exposes the bundled naughty-string fixture.
func NewNaughtyCmd(a *app) *cobra.Command {
	var (
		index     int
		countOnly bool
	)

	cmd := &cobra.Command{
		Use:   "naughty",
		Short: "Print the bundled naughty-string fixture",
		Long: `Print strings from the big list of naughty strings bundled under
ROOT/fixtures/blns.json, one quoted string per line.

ROOT comes from --root or TOOLBELT_ROOT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			strs, err := a.fixtures().Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case countOnly:
				fmt.Fprintln(out, len(strs))
			case cmd.Flags().Changed("index"):
				if index < 0 || index >= len(strs) {
					return fmt.Errorf("index %d out of range [0, %d)", index, len(strs))
				}
				fmt.Fprintf(out, "%q\n", strs[index])
			default:
				for i, s := range strs {
					fmt.Fprintf(out, "%d\t%q\n", i, s)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "Print only the string at this index")
	cmd.Flags().BoolVar(&countOnly, "count", false, "Print only the number of strings")

	return cmd
}
