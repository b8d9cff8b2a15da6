package engine_test

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabeHardgrave/dircrypt/internal/crypto"
	"github.com/GabeHardgrave/dircrypt/internal/engine"
	"github.com/GabeHardgrave/dircrypt/internal/events"
	"github.com/GabeHardgrave/dircrypt/internal/models"
	"github.com/GabeHardgrave/dircrypt/internal/pathmap"
	"github.com/GabeHardgrave/dircrypt/internal/storage"
)

func quietLogger() *events.Logger {
	return events.NewLogger(events.ErrorLevel, "text", io.Discard)
}

// runEngine drives a full run of mode over target into outputDir.
func runEngine(t *testing.T, target, outputDir string, mode crypto.Mode) *models.RunReport {
	t.Helper()
	require.NoError(t, os.Mkdir(outputDir, 0o755))

	logger := quietLogger()
	mapper := pathmap.NewMapper(target, outputDir, mode, logger)
	eng := engine.New(mapper, mode, 4, logger)
	return eng.Run(storage.Walk(target, logger))
}

// listFiles returns all regular files under root, relative to root.
func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	password := []byte("pw")

	vault := filepath.Join(tmp, "vault")
	require.NoError(t, os.MkdirAll(filepath.Join(vault, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "a", "b", "c.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "a", "d.txt"), []byte("world"), 0o644))

	encOut := filepath.Join(tmp, "ENC")
	report := runEngine(t, vault, encOut, crypto.NewEncrypter(password))
	assert.Equal(t, 2, report.Processed())
	assert.Zero(t, report.Relabeled())
	assert.Zero(t, report.Failed())
	assert.Empty(t, report.Warnings())

	// Every path segment in the output is an opaque token; the
	// plaintext names and contents appear nowhere.
	for _, rel := range listFiles(t, encOut) {
		assert.NotContains(t, rel, "a/")
		assert.NotContains(t, rel, "c.txt")
	}

	decOut := filepath.Join(tmp, "DEC")
	report = runEngine(t, encOut, decOut, crypto.NewDecrypter(password))
	assert.Equal(t, 2, report.Processed())
	assert.Zero(t, report.Relabeled())

	got, err := os.ReadFile(filepath.Join(decOut, "a", "b", "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	got, err = os.ReadFile(filepath.Join(decOut, "a", "d.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), got)
}

func TestDecryptWithWrongPassword(t *testing.T) {
	tmp := t.TempDir()

	vault := filepath.Join(tmp, "vault")
	require.NoError(t, os.MkdirAll(filepath.Join(vault, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "docs", "one.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "docs", "two.txt"), []byte("again"), 0o644))

	encOut := filepath.Join(tmp, "ENC")
	report := runEngine(t, vault, encOut, crypto.NewEncrypter([]byte("pw")))
	require.Equal(t, 2, report.Processed())

	decOut := filepath.Join(tmp, "DEC")
	report = runEngine(t, encOut, decOut, crypto.NewDecrypter([]byte("wrong")))
	assert.Equal(t, 2, report.Processed())
	assert.Equal(t, 2, report.Relabeled())
	assert.Len(t, report.Warnings(), 2)

	// Every name is a distinct sentinel and every file is relabeled.
	filePattern := regexp.MustCompile(`^MALFORMED_FILE_NAME_\d+_MALFORMED_CONTENTS$`)
	files := listFiles(t, decOut)
	require.Len(t, files, 2)

	seen := make(map[string]bool)
	for _, rel := range files {
		segs := strings.Split(rel, "/")
		require.Len(t, segs, 2)
		assert.Regexp(t, `^MALFORMED_DIR_NAME_\d+$`, segs[0])
		assert.Regexp(t, filePattern, segs[1])
		assert.False(t, seen[segs[1]], "duplicate sentinel %s", segs[1])
		seen[segs[1]] = true
	}
}

func TestCorruptContentIsRelabeled(t *testing.T) {
	tmp := t.TempDir()
	password := []byte("pw")

	vault := filepath.Join(tmp, "vault")
	require.NoError(t, os.MkdirAll(vault, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "c.txt"), []byte("hello"), 0o644))

	encOut := filepath.Join(tmp, "ENC")
	report := runEngine(t, vault, encOut, crypto.NewEncrypter(password))
	require.Equal(t, 1, report.Processed())

	// Flip a ciphertext bit in the single encrypted file.
	encFiles := listFiles(t, encOut)
	require.Len(t, encFiles, 1)
	encPath := filepath.Join(encOut, filepath.FromSlash(encFiles[0]))
	blob, err := os.ReadFile(encPath)
	require.NoError(t, err)
	blob[crypto.WireOverhead] ^= 0x01
	require.NoError(t, os.WriteFile(encPath, blob, 0o644))

	decOut := filepath.Join(tmp, "DEC")
	report = runEngine(t, encOut, decOut, crypto.NewDecrypter(password))
	assert.Equal(t, 1, report.Processed())
	assert.Equal(t, 1, report.Relabeled())

	// The name still decrypts; only the contents were damaged.
	_, err = os.Stat(filepath.Join(decOut, "c.txt_MALFORMED_CONTENTS"))
	assert.NoError(t, err)

	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], encPath)
	assert.Contains(t, warnings[0], "c.txt_MALFORMED_CONTENTS")
}

func TestFilesystemErrorDoesNotAbortSiblings(t *testing.T) {
	tmp := t.TempDir()
	password := []byte("pw")

	vault := filepath.Join(tmp, "vault")
	require.NoError(t, os.MkdirAll(vault, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "ok.txt"), []byte("fine"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(vault, "gone.txt"), []byte("doomed"), 0o644))

	logger := quietLogger()
	mode := crypto.NewEncrypter(password)
	encOut := filepath.Join(tmp, "ENC")
	require.NoError(t, os.Mkdir(encOut, 0o755))

	mapper := pathmap.NewMapper(vault, encOut, mode, logger)
	eng := engine.New(mapper, mode, 1, logger)

	// Feed one path that disappears before its task runs.
	paths := make(chan string, 2)
	paths <- filepath.Join(vault, "gone.txt")
	paths <- filepath.Join(vault, "ok.txt")
	close(paths)
	require.NoError(t, os.Remove(filepath.Join(vault, "gone.txt")))

	report := eng.Run(paths)
	assert.Equal(t, 2, report.Processed())
	assert.Equal(t, 1, report.Failed())
	require.Len(t, report.Warnings(), 1)
	assert.Contains(t, report.Warnings()[0], "gone.txt")

	// The surviving sibling was fully encrypted; the failed task left
	// only its empty destination behind.
	files := listFiles(t, encOut)
	require.Len(t, files, 2)
	var nonEmpty int
	for _, rel := range files {
		info, err := os.Stat(filepath.Join(encOut, filepath.FromSlash(rel)))
		require.NoError(t, err)
		if info.Size() > 0 {
			nonEmpty++
		}
	}
	assert.Equal(t, 1, nonEmpty)
}
