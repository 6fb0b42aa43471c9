package cmd

import (
	"fmt"

	"github.com/dendrascience/toolbelt/util"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewCacheCmd creates and returns the cache subcommand for the toolbelt CLI.
// It copies files into a content-addressed directory.
func NewCacheCmd(a *app) *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "cache FILE...",
		Short: "Copy files into a content-addressed cache",
		Long: `Copy each FILE into the cache directory under a name derived from its
SHA-256, spread over bucket subdirectories. Content already in the cache is
not copied again, so caching the same bytes twice yields the same path.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.EnsureDirExists(cacheDir); err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("File", "Cached As")
			for _, src := range args {
				if pathsOverlap(src, cacheDir) {
					a.log.WithField("path", src).Warn("skipping file already inside the cache")
					continue
				}
				dest, err := util.CacheFile(src, cacheDir)
				if err != nil {
					return fmt.Errorf("caching %s: %w", src, err)
				}
				a.log.WithFields(logrus.Fields{"src": src, "dest": dest}).Debug("cached")
				table.Append([]string{src, dest})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&cacheDir, "dir", ".cache", "Cache directory")

	return cmd
}
