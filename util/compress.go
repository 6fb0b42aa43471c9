package util

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// ZstExtension is the suffix written by CompressFileToZst.
const ZstExtension = ".zst"

// DecompressZstToDirectory streams the zstd file at zstPath into destDir.
// The output takes the input's base name without its final extension, so
// "dump.sql.zst" becomes "<destDir>/dump.sql". It returns the paths written.
//
// Data is decoded into a temporary file beside the destination and renamed
// into place once the stream has been fully read, so a corrupt input never
// leaves a truncated file under the final name.
func DecompressZstToDirectory(zstPath, destDir string) ([]string, error) {
	info, err := os.Stat(destDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, ErrExpectedDirectory
	}

	compressed, err := os.Open(zstPath)
	if err != nil {
		return nil, err
	}
	defer compressed.Close()

	dec, err := zstd.NewReader(compressed)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	base := filepath.Base(zstPath)
	outputPath := filepath.Join(destDir, strings.TrimSuffix(base, filepath.Ext(base)))
	if err := writeAtomically(outputPath, dec); err != nil {
		return nil, err
	}
	return []string{outputPath}, nil
}

// CompressFileToZst writes a zstd-compressed copy of path into destDir as
// <base name>.zst and returns the new file's path.
func CompressFileToZst(path, destDir string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	outputPath := filepath.Join(destDir, filepath.Base(path)+ZstExtension)
	pr, pw := io.Pipe()
	go func() {
		enc, err := zstd.NewWriter(pw)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(enc, src); err != nil {
			enc.Close()
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(enc.Close())
	}()
	if err := writeAtomically(outputPath, pr); err != nil {
		pr.CloseWithError(err)
		return "", err
	}
	return outputPath, nil
}

// IsZstFile reports whether path carries the zstd file extension.
func IsZstFile(path string) bool {
	return filepath.Ext(path) == ZstExtension
}

func writeAtomically(dest string, r io.Reader) error {
	partial := dest + "." + uuid.NewString() + ".partial"
	f, err := os.Create(partial)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(partial)
		return err
	}
	if err = f.Close(); err != nil {
		os.Remove(partial)
		return err
	}
	if err = os.Rename(partial, dest); err != nil {
		os.Remove(partial)
		return err
	}
	return nil
}
