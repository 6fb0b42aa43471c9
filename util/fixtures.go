package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// RootEnvVar names the environment variable holding the repository root.
// Bundled fixtures are resolved relative to it.
const RootEnvVar = "TOOLBELT_ROOT"

// NaughtyStringsFile is the location of the naughty-string fixture below the root.
//
// The strings come from https://github.com/minimaxir/big-list-of-naughty-strings
// (MIT license, Copyright (c) 2015-2020 Max Woolf).
var NaughtyStringsFile = filepath.Join("fixtures", "blns.json")

var defaultFixtures = NewFixtureLoader(func() (string, error) {
	root, err := RootDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, NaughtyStringsFile), nil
})

// RootDir returns the repository root named by RootEnvVar.
func RootDir() (string, error) {
	root := os.Getenv(RootEnvVar)
	if root == "" {
		return "", ErrRootNotSet
	}
	return root, nil
}

// NaughtyStrings returns the process-wide naughty-string fixture set.
// The fixture file is read on first successful use and cached afterwards.
func NaughtyStrings() ([]string, error) {
	return defaultFixtures.Load()
}

// FixtureLoader lazily reads a JSON array of strings and caches it.
// A failed load is not cached, so a later call may succeed once the
// environment is fixed. It is safe for concurrent use.
type FixtureLoader struct {
	resolve func() (string, error)

	mu      sync.Mutex
	loaded  bool
	strings []string
}

// NewFixtureLoader returns a loader reading the file named by resolve.
func NewFixtureLoader(resolve func() (string, error)) *FixtureLoader {
	return &FixtureLoader{resolve: resolve}
}

// NewFixtureLoaderForRoot returns a loader for the naughty-string fixture under root.
func NewFixtureLoaderForRoot(root string) *FixtureLoader {
	return NewFixtureLoader(func() (string, error) {
		if root == "" {
			return "", ErrRootNotSet
		}
		return filepath.Join(root, NaughtyStringsFile), nil
	})
}

// Load returns the cached strings, reading the fixture on first use.
// Callers receive their own copy.
func (l *FixtureLoader) Load() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		path, err := l.resolve()
		if err != nil {
			return nil, err
		}
		s, err := ReadStringsFile(path)
		if err != nil {
			return nil, err
		}
		l.strings = s
		l.loaded = true
	}
	return slices.Clone(l.strings), nil
}

// ReadStringsFile decodes a JSON array of strings from path.
func ReadStringsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	if err := json.NewDecoder(f).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFixture)
	}
	return out, nil
}
