// Package storage provides the filesystem collaborators for a run:
// uniquified directory and file creation, malformed-content relabeling,
// and the lazy directory walker.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ForceCreateDir creates a new directory with the given name, returning
// the path actually created. If the name is taken, an incrementing
// number is appended until creation succeeds.
func ForceCreateDir(name string) (string, error) {
	if parent := filepath.Dir(name); parent != "." {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return "", fmt.Errorf("create parent of %s: %w", name, err)
		}
	}

	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = name + strconv.Itoa(i-1)
		}

		err := os.Mkdir(candidate, 0o755)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("create directory %s: %w", candidate, err)
		}
	}
}

// ForceCreateFile creates a new empty file named name+suffix, returning
// the path actually created. If the name is taken, an incrementing
// number is appended before the suffix until creation succeeds.
func ForceCreateFile(name, suffix string) (string, error) {
	for i := 0; ; i++ {
		candidate := name + suffix
		if i > 0 {
			candidate = name + strconv.Itoa(i-1) + suffix
		}

		f, err := os.OpenFile(candidate, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			if cerr := f.Close(); cerr != nil {
				return "", fmt.Errorf("close %s: %w", candidate, cerr)
			}
			return candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("create file %s: %w", candidate, err)
		}
	}
}

// CreatePathAndFile creates every missing ancestor directory of path and
// then the file itself, exclusively. An already existing destination
// file is an error; translated names are fresh by construction, so a
// collision means something else wrote into the output tree.
func CreatePathAndFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create ancestors of %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create file %s: %w", path, err)
	}
	return f.Close()
}

// LabelMalformed renames the file at path to <path>_MALFORMED_CONTENTS,
// appending an incrementing number on collision. Returns the new path.
// The partially written contents are preserved for inspection.
func LabelMalformed(path string) (string, error) {
	base := path + "_MALFORMED_CONTENTS"

	for i := 0; ; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}

		if _, err := os.Lstat(candidate); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}

		if err := os.Rename(path, candidate); err != nil {
			return "", fmt.Errorf("rename %s: %w", path, err)
		}
		return candidate, nil
	}
}
