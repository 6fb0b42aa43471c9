package cmd

import (
	"errors"
	"fmt"

	"github.com/dendrascience/toolbelt/util"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewHashCmd creates and returns the hash subcommand for the toolbelt CLI.
// It prints SHA-256 digests of files and literal strings.
func NewHashCmd(a *app) *cobra.Command {
	var (
		strs   []string
		rename bool
	)

	cmd := &cobra.Command{
		Use:   "hash [FILE...]",
		Short: "Print SHA-256 digests of files and strings",
		Long: `Print the SHA-256 digest of each FILE and of each --string value.

Files are streamed, so large inputs are fine, and several files are hashed
concurrently. A string is hashed as its UTF-8 bytes, so a file holding exactly
that string has the same digest.

With --rename each FILE is renamed in place to its content-addressed name,
<bucket>-<sha256><ext>, the same name the cache command uses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(strs) == 0 {
				return errors.New("nothing to hash: pass a FILE or --string")
			}
			digests, err := util.HashFiles(cmd.Context(), args)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Source", "SHA-256")
			for _, d := range digests {
				a.log.WithField("path", d.Path).WithField("sha256", d.Hash).Debug("hashed file")
				source := d.Path
				if rename {
					dest, err := util.RenameHashedFile(d.Path)
					if err != nil {
						return fmt.Errorf("renaming %s: %w", d.Path, err)
					}
					a.log.WithField("src", d.Path).WithField("dest", dest).Info("renamed")
					source = dest
				}
				table.Append([]string{source, d.Hash})
			}
			for _, s := range strs {
				table.Append([]string{fmt.Sprintf("%q", s), util.GetStringHash(s)})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&strs, "string", "s", nil, "Hash a literal string (repeatable)")
	cmd.Flags().BoolVar(&rename, "rename", false, "Rename each FILE to its content-addressed name")

	return cmd
}
