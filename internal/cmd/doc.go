// Package cmd provides the command-line interface implementation for toolbelt.
//
// This package contains all the subcommand implementations for the toolbelt CLI.
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: persistent flags, config loading and logger setup
//   - hash: SHA-256 digests of files and strings
//   - compress, decompress: single-file zstd
//   - cache: content-addressed file cache
//   - nonce: random hex strings
//   - naughty: the bundled naughty-string fixture
//   - checks: listing and running the built-in self-checks
//   - version: build metadata
//
// Each command is implemented as a separate file with its own constructor function
// that returns a *cobra.Command. Commands that need configuration or logging take
// the shared app value populated by the root command's PersistentPreRunE.
package cmd
