package util

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/taigrr/colorhash"
	"golang.org/x/sync/errgroup"
)

// BucketCount is the number of top-level buckets in a content-addressed cache.
const BucketCount = 1000

// FileDigest pairs a path with the SHA-256 of its contents.
type FileDigest struct {
	Path string
	Hash string
}

// Hashes a file and returns the hash as a hex string suitable for use in a filepath
func GetFileHash(path string) (hash string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// GetStringHash returns the SHA-256 of the UTF-8 bytes of s.
// For any file holding exactly s, GetFileHash returns the same digest.
func GetStringHash(s string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(s)))
}

// HashFiles hashes every path concurrently, at most one file per CPU at a time.
// Results come back in the order of paths. The first failure cancels the
// remaining work and is returned.
func HashFiles(ctx context.Context, paths []string) ([]FileDigest, error) {
	digests := make([]FileDigest, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := GetFileHash(p)
			if err != nil {
				return fmt.Errorf("hashing %s: %w", p, err)
			}
			digests[i] = FileDigest{Path: p, Hash: h}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return digests, nil
}

// RenameHashedFile renames a file in place to its content-addressed name,
// HashPathFromHash of its SHA-256 plus the original extension, and returns
// the new path. A file already carrying the name for its content is left alone.
func RenameHashedFile(path string) (string, error) {
	hash, err := GetFileHash(path)
	if err != nil {
		return "", err
	}
	if named, err := HashFromHashPath(path); err == nil && named == hash {
		return path, nil
	}

	dest := filepath.Join(filepath.Dir(path), HashPathFromHash(hash)+filepath.Ext(path))
	if err := os.Rename(path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// HashPathFromHash generates a content-addressed identifier from a hash.
// The result is in the format "bucket-hash" (e.g., "742-abc123...") and is
// used as the cache entry name by CacheFile.
//
// The bucket is derived from a color hash mod BucketCount so that a cache
// directory never holds more than a fraction of its entries in one place.
func HashPathFromHash(hash string) string {
	bucket := colorhash.HashString(hash) % BucketCount
	if bucket < 0 {
		bucket = -bucket
	}
	return fmt.Sprintf("%03d-%s", bucket, hash)
}

// HashFromHashPath extracts the original hash from a hash-based file path.
// It expects a path in the format "bucket-hash[.ext]" and returns the hash portion.
func HashFromHashPath(path string) (string, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ErrInvalidHashPath
	}
	return parts[1], nil
}

// BucketFromHashPath returns the bucket directory name of a hash path.
func BucketFromHashPath(path string) (string, error) {
	parts := strings.Split(filepath.Base(path), "-")
	if len(parts) != 2 || parts[0] == "" {
		return "", ErrInvalidHashPath
	}
	return parts[0], nil
}
