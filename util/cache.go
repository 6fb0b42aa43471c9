package util

import (
	"io"
	"os"
	"path/filepath"
	"sync"
)

var cacheLock sync.Mutex

// CacheFile copies the file at path into cacheDir under its content-addressed
// name, <cacheDir>/<bucket>/<bucket>-<sha256><ext>, and returns that location.
// A file whose content is already cached is not copied again.
func CacheFile(path, cacheDir string) (string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if stat.IsDir() {
		return "", ErrExpectedFile
	}
	hash, err := GetFileHash(path)
	if err != nil {
		return "", err
	}

	cacheLock.Lock()
	defer cacheLock.Unlock()
	dest, ok := CachedPath(cacheDir, hash, filepath.Ext(path))
	if ok {
		return dest, nil
	}
	if dest == "" {
		return "", ErrInvalidHashPath
	}
	if err := EnsureDirExists(filepath.Dir(dest)); err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	newFile, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer newFile.Close()
	if _, err = io.Copy(newFile, file); err != nil {
		os.Remove(dest)
		return "", err
	}
	return dest, nil
}

// CachedPath returns the location CacheFile would use for content with the
// given hash and extension, and whether it is present.
func CachedPath(cacheDir, hash, ext string) (string, bool) {
	hashPath := HashPathFromHash(hash)
	bucket, err := BucketFromHashPath(hashPath)
	if err != nil {
		return "", false
	}
	p := filepath.Join(cacheDir, bucket, hashPath+ext)
	_, err = os.Stat(p)
	return p, err == nil
}
