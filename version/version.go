package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
)

// Package names the module in version output.
const Package = "toolbelt"

const unknown = "unknown"

// Set with -ldflags "-X"; left alone, build info is consulted instead.
var (
	Version = "dev"
	Commit  = unknown
	Date    = unknown
)

// Info is the build metadata reported by `toolbelt version`.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Package string `json:"package"`
}

// buildSetting returns the value of a vcs.* setting recorded by the Go
// toolchain, or "" when the binary carries no build info.
func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

func moduleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "(devel)" {
		return ""
	}
	return info.Main.Version
}

// pick returns the first value that is neither empty nor the placeholder.
func pick(placeholder string, values ...string) string {
	for _, v := range values {
		if v != "" && v != placeholder {
			return v
		}
	}
	return ""
}

// GetVersion prefers an injected Version, then the module version from
// build info, and reports "development" otherwise.
func GetVersion() string {
	if v := pick("dev", Version, moduleVersion()); v != "" {
		return v
	}
	return "development"
}

// GetCommit prefers an injected Commit over vcs.revision.
func GetCommit() string {
	if c := pick(unknown, Commit, buildSetting("vcs.revision")); c != "" {
		return c
	}
	return unknown
}

// GetBuildDate prefers an injected Date over vcs.time.
func GetBuildDate() string {
	if d := pick(unknown, Date, buildSetting("vcs.time")); d != "" {
		return d
	}
	return unknown
}

func GetInfo() Info {
	return Info{
		Version: GetVersion(),
		Commit:  GetCommit(),
		Date:    GetBuildDate(),
		Package: Package,
	}
}

// String renders the version with a short commit and build date when known,
// e.g. "v1.0.0 (0123456, built 2024-01-01T00:00:00Z)".
func (i Info) String() string {
	if i.Commit == unknown || len(i.Commit) <= 7 {
		return i.Version
	}
	short := i.Commit[:7]
	if i.Date == unknown {
		return fmt.Sprintf("%s (%s)", i.Version, short)
	}
	return fmt.Sprintf("%s (%s, built %s)", i.Version, short, i.Date)
}

// GetFullVersion is GetInfo().String().
func GetFullVersion() string {
	return GetInfo().String()
}

// PrintVersion writes human-readable version information to w.
func PrintVersion(w io.Writer, appName string) {
	info := GetInfo()
	fmt.Fprintf(w, "%s version %s\n", appName, info)
	fmt.Fprintf(w, "Package: %s\n", info.Package)
	fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	fmt.Fprintf(w, "Build Date: %s\n", info.Date)
}

// WriteJSON writes GetInfo to w as indented JSON.
func WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GetInfo())
}
