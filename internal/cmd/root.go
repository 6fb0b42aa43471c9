package cmd

import (
	"time"

	"github.com/dendrascience/toolbelt/internal/config"
	"github.com/dendrascience/toolbelt/internal/logging"
	"github.com/dendrascience/toolbelt/util"
	"github.com/dendrascience/toolbelt/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries the configuration and logger loaded before any subcommand runs.
type app struct {
	cfgFile string
	cfg     config.Config
	log     *logrus.Logger
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	l, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = l
	if cfg.File != "" {
		l.WithField("file", cfg.File).Debug("loaded config")
	}
	return nil
}

func (a *app) fixtures() *util.FixtureLoader {
	return util.NewFixtureLoaderForRoot(a.cfg.Root)
}

// NewRootCmd creates and returns the root cobra command for the toolbelt CLI.
// It sets up all subcommands, command groups, and the shared configuration.
func NewRootCmd() *cobra.Command {
	a := &app{log: logging.Discard()}

	rootCmd := &cobra.Command{
		Use:   "toolbelt",
		Short: "toolbelt - hashing, zstd and fixture helpers for build and test tooling",
		Long: `toolbelt bundles the small helpers shared by build and test tooling.

It hashes files and strings with SHA-256, compresses and decompresses single
files with zstd, keeps a content-addressed file cache, generates nonces and
exposes the bundled naughty-string fixture. The checks subcommand runs the
built-in self-checks, each on its own background worker.

Settings come from flags, TOOLBELT_* environment variables and an optional
YAML config file, in that order of precedence.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.toolbelt/config.yaml)")
	pf.String("root", "", "repository root holding bundled fixtures (env "+util.RootEnvVar+")")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.Duration("join-timeout", 5*time.Minute, "how long to wait for each background worker")

	groupFiles := "files"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFiles,
		Title: "File Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	hashCmd := NewHashCmd(a)
	compressCmd := NewCompressCmd(a)
	decompressCmd := NewDecompressCmd(a)
	cacheCmd := NewCacheCmd(a)
	nonceCmd := NewNonceCmd()
	naughtyCmd := NewNaughtyCmd(a)
	checksCmd := NewChecksCmd(a)
	versionCmd := NewVersionCmd()

	hashCmd.GroupID = groupFiles
	compressCmd.GroupID = groupFiles
	decompressCmd.GroupID = groupFiles
	cacheCmd.GroupID = groupFiles
	nonceCmd.GroupID = groupUtilities
	naughtyCmd.GroupID = groupUtilities
	checksCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(decompressCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(nonceCmd)
	rootCmd.AddCommand(naughtyCmd)
	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
