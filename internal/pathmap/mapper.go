// Package pathmap translates original file paths into their destination
// counterparts, memoizing the translation of every directory segment so
// that concurrent workers agree on the output layout.
package pathmap

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/GabeHardgrave/dircrypt/internal/crypto"
	"github.com/GabeHardgrave/dircrypt/internal/events"
)

// Mapper maps original file paths under root to destination paths under
// outputDir. The directory map is the only shared mutable state in a
// run; the lookup-miss-compute-insert sequence for a key is atomic, so
// two workers racing on a common ancestor always see one translated
// name for it.
type Mapper struct {
	root      string // parent of the target, original paths are relative to this
	outputDir string
	mode      crypto.Mode
	logger    *events.Logger

	mu        sync.Mutex
	dirs      map[string]string // cumulative original sub-path -> translated name
	sentinels Sentinels
}

// NewMapper creates a mapper for one run. root is the directory holding
// the target; outputDir is the already-created destination root.
func NewMapper(root, outputDir string, mode crypto.Mode, logger *events.Logger) *Mapper {
	return &Mapper{
		root:      root,
		outputDir: outputDir,
		mode:      mode,
		logger:    logger.WithField("component", "pathmap"),
		dirs:      make(map[string]string),
	}
}

// TranslatePath returns the destination path for an original file path.
// Intermediate directory segments are translated at most once per run;
// the terminal file segment is translated fresh for every call and
// never cached. Segments that fail to translate become sentinel names.
func (m *Mapper) TranslatePath(original string) (string, error) {
	rel, err := filepath.Rel(m.root, original)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", original, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s escapes root %s", original, m.root)
	}

	segments := strings.Split(filepath.ToSlash(rel), "/")
	intermediate, leaf := segments[:len(segments)-1], segments[len(segments)-1]

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, m.outputDir)

	// Keys are cumulative sub-paths, so same-named directories under
	// different parents translate independently.
	key := ""
	for _, segment := range intermediate {
		key = path.Join(key, segment)
		parts = append(parts, m.translateDir(key, segment))
	}

	name, err := m.mode.TransformName(leaf)
	if err != nil {
		name = m.sentinels.NextFile()
		m.logger.WithFields(map[string]interface{}{
			"original": original,
			"sentinel": name,
		}).Warn("Cannot translate file name")
	}
	parts = append(parts, name)

	return filepath.Join(parts...), nil
}

// translateDir resolves one directory key under the map lock, computing
// and inserting the translation on a miss.
func (m *Mapper) translateDir(key, segment string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name, ok := m.dirs[key]; ok {
		return name
	}

	name, err := m.mode.TransformName(segment)
	if err != nil {
		name = m.sentinels.NextDir()
		m.logger.WithFields(map[string]interface{}{
			"original": key,
			"sentinel": name,
		}).Warn("Cannot translate directory name")
	}

	m.dirs[key] = name
	return name
}
