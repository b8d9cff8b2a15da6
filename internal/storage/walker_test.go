package storage_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabeHardgrave/dircrypt/internal/events"
	"github.com/GabeHardgrave/dircrypt/internal/storage"
)

func collect(paths <-chan string) []string {
	var out []string
	for p := range paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func quietLogger() *events.Logger {
	return events.NewLogger(events.ErrorLevel, "text", io.Discard)
}

func TestWalkYieldsOnlyFiles(t *testing.T) {
	tmp := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "top.txt"), []byte("1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a", "mid.txt"), []byte("2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "a", "b", "deep.txt"), []byte("3"), 0o644))

	got := collect(storage.Walk(tmp, quietLogger()))

	want := []string{
		filepath.Join(tmp, "a", "b", "deep.txt"),
		filepath.Join(tmp, "a", "mid.txt"),
		filepath.Join(tmp, "top.txt"),
	}
	assert.Equal(t, want, got)
}

func TestWalkFileRoot(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "only.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	got := collect(storage.Walk(file, quietLogger()))
	assert.Equal(t, []string{file}, got)
}

func TestWalkMissingRoot(t *testing.T) {
	tmp := t.TempDir()

	got := collect(storage.Walk(filepath.Join(tmp, "nope"), quietLogger()))
	assert.Empty(t, got)
}

func TestWalkSkipsSymlinksWithWarning(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "real.txt")
	link := filepath.Join(tmp, "link.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	var buf bytes.Buffer
	logger := events.NewLogger(events.WarnLevel, "text", &buf)

	got := collect(storage.Walk(tmp, logger))
	assert.Equal(t, []string{target}, got)

	// The skipped entry is operator-visible, not silently dropped.
	assert.Contains(t, buf.String(), "Skipping non-regular entry")
	assert.Contains(t, buf.String(), link)
}
