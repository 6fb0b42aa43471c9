package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/dendrascience/toolbelt/internal/checks"
	"github.com/dendrascience/toolbelt/internal/config"
	"github.com/dendrascience/toolbelt/selector"
	"github.com/dendrascience/toolbelt/util"
	"github.com/dendrascience/toolbelt/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloWorldSHA256 = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

// execute runs the root command with args in an environment free of user
// config and TOOLBELT_* variables, returning everything written to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"ROOT", "LOG_LEVEL", "LOG_FORMAT", "JOIN_TIMEOUT"} {
		key := config.EnvPrefix + "_" + k
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestHashCmd_String(t *testing.T) {
	out, err := execute(t, "hash", "--string", "hello world")
	require.NoError(t, err)
	assert.Contains(t, out, helloWorldSHA256)
}

func TestHashCmd_FileMatchesString(t *testing.T) {
	p := writeFile(t, t.TempDir(), "hello.txt", "hello world")

	out, err := execute(t, "hash", p)
	require.NoError(t, err)
	assert.Contains(t, out, helloWorldSHA256)
}

func TestHashCmd_Rename(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "hello.txt", "hello world")

	out, err := execute(t, "hash", "--rename", p)
	require.NoError(t, err)

	renamed := filepath.Join(dir, util.HashPathFromHash(helloWorldSHA256)+".txt")
	assert.FileExists(t, renamed)
	assert.NoFileExists(t, p)
	assert.Contains(t, out, filepath.Base(renamed))
}

func TestHashCmd_NothingToHash(t *testing.T) {
	_, err := execute(t, "hash")
	assert.Error(t, err)
}

func TestHashCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "hash", filepath.Join(t.TempDir(), "absent"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompressDecompressCmd_RoundTrip(t *testing.T) {
	src := t.TempDir()
	packed := t.TempDir()
	unpacked := filepath.Join(t.TempDir(), "out")
	content := strings.Repeat("the quick brown fox\n", 500)
	p := writeFile(t, src, "fox.txt", content)

	out, err := execute(t, "compress", "--dest", packed, p)
	require.NoError(t, err)
	zst := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(packed, "fox.txt"+util.ZstExtension), zst)

	out, err = execute(t, "decompress", "--dest", unpacked, zst)
	require.NoError(t, err)
	restored := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(unpacked, "fox.txt"), restored)

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestDecompressCmd_RequiresArgs(t *testing.T) {
	_, err := execute(t, "decompress")
	assert.Error(t, err)
}

func TestCacheCmd_Dedup(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	a := writeFile(t, dir, "a.json", `{"k":1}`)
	b := writeFile(t, dir, "b.json", `{"k":1}`)

	out, err := execute(t, "cache", "--dir", cacheDir, a, b)
	require.NoError(t, err)

	name := util.HashPathFromHash(util.GetStringHash(`{"k":1}`)) + ".json"
	assert.Equal(t, 2, strings.Count(out, name))

	var files int
	require.NoError(t, filepath.WalkDir(cacheDir, func(_ string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files++
		}
		return err
	}))
	assert.Equal(t, 1, files)
}

func TestCacheCmd_SkipsFilesInsideCache(t *testing.T) {
	cacheDir := t.TempDir()
	inside := writeFile(t, cacheDir, "already.txt", "x")

	out, err := execute(t, "cache", "--dir", cacheDir, inside)
	require.NoError(t, err)
	assert.NotContains(t, out, util.GetStringHash("x"))
}

func TestNonceCmd(t *testing.T) {
	out, err := execute(t, "nonce", "--digits", "12", "--count", "3")
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, 3)
	hex := regexp.MustCompile(`^[0-9a-f]{12}$`)
	for _, l := range lines {
		assert.Regexp(t, hex, l)
	}
}

func TestNonceCmd_RejectsZeroDigits(t *testing.T) {
	_, err := execute(t, "nonce", "--digits", "0")
	assert.Error(t, err)
}

func TestNaughtyCmd_Count(t *testing.T) {
	want, err := util.NewFixtureLoaderForRoot("../..").Load()
	require.NoError(t, err)

	out, err := execute(t, "naughty", "--root", "../..", "--count")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(len(want)), strings.TrimSpace(out))
}

func TestNaughtyCmd_Index(t *testing.T) {
	want, err := util.NewFixtureLoaderForRoot("../..").Load()
	require.NoError(t, err)

	out, err := execute(t, "naughty", "--root", "../..", "--index", "1")
	require.NoError(t, err)
	assert.Equal(t, strconv.Quote(want[1]), strings.TrimSpace(out))

	_, err = execute(t, "naughty", "--root", "../..", "--index", strconv.Itoa(len(want)))
	assert.Error(t, err)
}

func TestNaughtyCmd_RootFromEnvironment(t *testing.T) {
	var out bytes.Buffer
	t.Setenv("HOME", t.TempDir())
	t.Setenv(util.RootEnvVar, "../..")

	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"naughty", "--count"})
	require.NoError(t, root.Execute())
	assert.NotEmpty(t, strings.TrimSpace(out.String()))
}

func TestNaughtyCmd_RootNotSet(t *testing.T) {
	_, err := execute(t, "naughty")
	assert.ErrorIs(t, err, util.ErrRootNotSet)
}

func TestChecksListCmd(t *testing.T) {
	out, err := execute(t, "checks", "list")
	require.NoError(t, err)
	for _, name := range []string{"hash", "hash-known-digest", "zstd-roundtrip", "worker-propagate"} {
		assert.Contains(t, out, name)
	}

	out, err = execute(t, "checks", "list", "--under", "zstd")
	require.NoError(t, err)
	assert.Contains(t, out, "zstd-roundtrip")
	assert.NotContains(t, out, "hash-known-digest")
}

func TestChecksListCmd_UnknownKind(t *testing.T) {
	_, err := execute(t, "checks", "list", "--under", "nope")
	assert.Error(t, err)
}

func TestChecksRunCmd(t *testing.T) {
	out, err := execute(t, "checks", "run", "--root", "../..", "--parallel", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "naughty-hash")
	assert.NotContains(t, out, "FAIL")
}

func TestChecksRunCmd_ByKind(t *testing.T) {
	out, err := execute(t, "checks", "run", "hash")
	require.NoError(t, err)
	assert.Contains(t, out, "hash-known-digest")
	assert.Contains(t, out, "hash-file-string")
	assert.NotContains(t, out, "zstd-roundtrip")
}

func TestChecksRunCmd_FailureWithoutRoot(t *testing.T) {
	out, err := execute(t, "checks", "run", "--retry", "once", "naughty-load")
	require.ErrorIs(t, err, checks.ErrCheckFailed)
	assert.Contains(t, out, "FAIL")
}

func TestChecksRunCmd_UnknownName(t *testing.T) {
	_, err := execute(t, "checks", "run", "no-such-check")
	assert.ErrorIs(t, err, selector.ErrUnknownName)
}

func TestChecksRunCmd_BadRetry(t *testing.T) {
	_, err := execute(t, "checks", "run", "--retry", "sometimes")
	assert.Error(t, err)
}

func TestVersionCmd_JSON(t *testing.T) {
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"package": "`+version.Package+`"`)
}

func TestRootCmd_InvalidLogFormat(t *testing.T) {
	_, err := execute(t, "--log-format", "xml", "nonce")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
