package cmd

import (
	"fmt"

	"github.com/dendrascience/toolbelt/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewDecompressCmd creates and returns the decompress subcommand for the toolbelt CLI.
func NewDecompressCmd(a *app) *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "decompress FILE.zst...",
		Short: "Decompress zstd files into a directory",
		Long: `Decompress each zstd FILE into the destination directory.

The output keeps the input's name without its final extension, so
dump.sql.zst becomes DEST/dump.sql. The destination is created if needed.
A corrupt input fails without leaving a partial file behind.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.EnsureDirExists(destDir); err != nil {
				return err
			}
			for _, src := range args {
				if !util.IsZstFile(src) {
					a.log.WithField("path", src).Warn("input does not end in .zst")
				}
				paths, err := util.DecompressZstToDirectory(src, destDir)
				if err != nil {
					return fmt.Errorf("decompressing %s: %w", src, err)
				}
				for _, p := range paths {
					a.log.WithFields(logrus.Fields{"src": src, "dest": p}).Info("decompressed")
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&destDir, "dest", "d", ".", "Directory to write decompressed files to")

	return cmd
}

// NewCompressCmd creates and returns the compress subcommand for the toolbelt CLI.
func NewCompressCmd(a *app) *cobra.Command {
	var destDir string

	cmd := &cobra.Command{
		Use:   "compress FILE...",
		Short: "Compress files with zstd",
		Long: `Write a zstd-compressed copy of each FILE to the destination directory
as FILE.zst. The originals are left in place.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := util.EnsureDirExists(destDir); err != nil {
				return err
			}
			for _, src := range args {
				out, err := util.CompressFileToZst(src, destDir)
				if err != nil {
					return fmt.Errorf("compressing %s: %w", src, err)
				}
				a.log.WithFields(logrus.Fields{"src": src, "dest": out}).Info("compressed")
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&destDir, "dest", "d", ".", "Directory to write compressed files to")

	return cmd
}
