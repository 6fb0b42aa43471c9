// Package main provides the toolbelt command-line interface.
//
// toolbelt bundles the small helpers shared by build and test tooling: SHA-256
// hashing of files and strings, single-file zstd compression, a
// content-addressed file cache, nonces and the bundled naughty-string
// fixture. The checks subcommand runs self-checks of those helpers, each on
// its own background worker.
//
// The main binary supports multiple subcommands:
//   - hash: print SHA-256 digests of files and strings
//   - compress, decompress: zstd a file into a directory, or back
//   - cache: copy files into a content-addressed cache
//   - nonce: print random hex strings
//   - naughty: print entries of the naughty-string fixture
//   - checks: list or run the built-in self-checks
//   - version: print build metadata
package main
