// Package version provides version information and build metadata for toolbelt.
//
// Version Information Sources:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//   - Fallback defaults for development builds
//
// The package provides multiple version formats:
//   - GetVersion(): Simple version string
//   - GetFullVersion(): Formatted version with commit and build date
//   - GetInfo(): Complete version information as a struct
//   - PrintVersion(): Human-readable version output
//   - WriteJSON(): Info encoded as JSON
//
// Build Integration:
// The Makefile sets version information at build time using:
//
//	-ldflags "-X github.com/dendrascience/toolbelt/version.Version=v1.0.0 -X github.com/dendrascience/toolbelt/version.Commit=abc123"
package version
