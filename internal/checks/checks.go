// Package checks holds the self-checks run by "toolbelt checks". Each check
// is a kind in a registry hierarchy rooted at Root; abstract kinds group
// related checks and have no Run function of their own.
package checks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/toolbelt/registry"
	"github.com/dendrascience/toolbelt/util"
	"github.com/dendrascience/toolbelt/worker"
)

// Root is the kind every check descends from.
const Root = "check"

var ErrCheckFailed = errors.New("check failed")

// Env is what a check may touch while running.
type Env struct {
	// TempDir is a scratch directory private to one attempt.
	TempDir string
	// Fixtures loads the naughty-string list.
	Fixtures *util.FixtureLoader
}

// Check is one runnable (or grouping) kind.
type Check struct {
	Description string
	Run         func(ctx context.Context, env Env) error
}

// Abstract reports whether c only groups other checks.
func (c Check) Abstract() bool {
	return c.Run == nil
}

// NewRegistry returns the built-in checks.
func NewRegistry() *registry.Registry[Check] {
	r := registry.New[Check]()
	r.MustRegister(Root, "", Check{Description: "all checks"})

	r.MustRegister("hash", Root, Check{Description: "SHA-256 helpers"})
	r.MustRegister("hash-known-digest", "hash", Check{
		Description: "string hash matches a published SHA-256 vector",
		Run:         checkKnownDigest,
	})
	r.MustRegister("hash-file-string", "hash", Check{
		Description: "file hash equals string hash for identical content",
		Run:         checkFileStringHash,
	})

	r.MustRegister("zstd", Root, Check{Description: "zstd compression helpers"})
	r.MustRegister("zstd-roundtrip", "zstd", Check{
		Description: "compress then decompress reproduces the original digest",
		Run:         checkZstdRoundTrip,
	})

	r.MustRegister("nonce", Root, Check{
		Description: "nonces have the requested length and are hex",
		Run:         checkNonce,
	})

	r.MustRegister("fixtures", Root, Check{Description: "naughty-string fixture"})
	r.MustRegister("naughty-load", "fixtures", Check{
		Description: "fixture loads and is cached",
		Run:         checkNaughtyLoad,
	})
	r.MustRegister("naughty-hash", "fixtures", Check{
		Description: "every naughty string hashes the same as a file and as a string",
		Run:         checkNaughtyHash,
	})

	r.MustRegister("worker", Root, Check{Description: "background worker"})
	r.MustRegister("worker-propagate", "worker", Check{
		Description: "a worker's error reaches the joining goroutine unchanged",
		Run:         checkWorkerPropagate,
	})
	return r
}

func failf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCheckFailed, fmt.Sprintf(format, args...))
}

func checkKnownDigest(_ context.Context, _ Env) error {
	const want = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got := util.GetStringHash("hello world"); got != want {
		return failf("sha256(hello world) = %s, want %s", got, want)
	}
	return nil
}

func checkFileStringHash(ctx context.Context, env Env) error {
	inputs := []string{"", "hello world", "田中さんにあげて下さい", "line1\nline2\r\n"}
	return compareFileAndStringHashes(ctx, env.TempDir, inputs)
}

func compareFileAndStringHashes(ctx context.Context, dir string, inputs []string) error {
	path := filepath.Join(dir, "content")
	for i, s := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
			return err
		}
		fileHash, err := util.GetFileHash(path)
		if err != nil {
			return err
		}
		if strHash := util.GetStringHash(s); fileHash != strHash {
			return failf("input %d: file hash %s != string hash %s", i, fileHash, strHash)
		}
	}
	return nil
}

func checkZstdRoundTrip(_ context.Context, env Env) error {
	content := strings.Repeat("toolbelt zstd round trip\n", 4096)
	src := filepath.Join(env.TempDir, "payload.txt")
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		return err
	}
	zstDir := filepath.Join(env.TempDir, "zst")
	outDir := filepath.Join(env.TempDir, "out")
	for _, d := range []string{zstDir, outDir} {
		if err := util.EnsureDirExists(d); err != nil {
			return err
		}
	}

	zstPath, err := util.CompressFileToZst(src, zstDir)
	if err != nil {
		return err
	}
	paths, err := util.DecompressZstToDirectory(zstPath, outDir)
	if err != nil {
		return err
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "payload.txt" {
		return failf("unexpected output paths %v", paths)
	}
	got, err := util.GetFileHash(paths[0])
	if err != nil {
		return err
	}
	if want := util.GetStringHash(content); got != want {
		return failf("round trip digest %s, want %s", got, want)
	}
	return nil
}

func checkNonce(_ context.Context, _ Env) error {
	seen := make(map[string]struct{})
	for n := 1; n <= 64; n++ {
		s := util.Nonce(n)
		if len(s) != n {
			return failf("Nonce(%d) has length %d", n, len(s))
		}
		if strings.Trim(s, "0123456789abcdef") != "" {
			return failf("Nonce(%d) = %q is not hex", n, s)
		}
		if n >= 16 {
			if _, dup := seen[s]; dup {
				return failf("Nonce(%d) repeated %q", n, s)
			}
			seen[s] = struct{}{}
		}
	}
	return nil
}

func checkNaughtyLoad(_ context.Context, env Env) error {
	first, err := env.Fixtures.Load()
	if err != nil {
		return err
	}
	second, err := env.Fixtures.Load()
	if err != nil {
		return err
	}
	if len(first) == 0 || len(first) != len(second) {
		return failf("fixture sizes %d and %d", len(first), len(second))
	}
	return nil
}

func checkNaughtyHash(ctx context.Context, env Env) error {
	strs, err := env.Fixtures.Load()
	if err != nil {
		return err
	}
	return compareFileAndStringHashes(ctx, env.TempDir, strs)
}

func checkWorkerPropagate(_ context.Context, _ Env) error {
	sentinel := errors.New("propagated")
	w := worker.Go(func() (int, error) { return 0, sentinel })
	if _, err := w.Join(0); err != sentinel {
		return failf("join returned %v, want the worker's own error", err)
	}
	ok := worker.Go(func() (int, error) { return 42, nil })
	if v, err := ok.Join(0); err != nil || v != 42 {
		return failf("join returned %d, %v, want 42, nil", v, err)
	}
	return nil
}
