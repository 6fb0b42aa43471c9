package util

import "os"

// EnsureDirExists creates path and any missing parents, like mkdir -p.
// An existing directory is not an error; an existing file is.
func EnsureDirExists(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return ErrExpectedDirectory
		}
		return nil
	}
	return os.MkdirAll(path, 0o755)
}
