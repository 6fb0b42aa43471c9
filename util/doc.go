// Package util provides the small file and fixture helpers shared by the
// toolbelt build and test tooling.
//
// Key Components:
//
// Content Hashing:
//   - Streaming SHA-256 of files and readers (GetFileHash, GetHash)
//   - SHA-256 of UTF-8 strings that matches the digest of an equivalent file
//   - Concurrent hashing of many files bounded by the CPU count (HashFiles)
//   - Content-addressed cache layout with colorhash buckets (CacheFile)
//
// Compression:
//   - Streaming zstd decompression of a single file into a directory
//   - zstd compression of a single file, used to build test inputs
//   - Partial files renamed into place so failures never leave truncated output
//
// Fixtures:
//   - The naughty-string list, read once from the root named by TOOLBELT_ROOT
//   - FixtureLoader for loading the same fixture from an explicit root
//
// Miscellaneous:
//   - Nonce for short random hex identifiers
//   - EnsureDirExists with mkdir -p semantics
//   - YesNoOnce, a tri-state pflag.Value
//
// Functions in this package never log; errors are returned to the caller
// unchanged or wrapped with the path involved.
package util
