package storage

import (
	"os"
	"path/filepath"

	"github.com/GabeHardgrave/dircrypt/internal/events"
)

// Walk lazily yields every regular file under root, in no particular
// order. If root is itself a file, only root is yielded. Unreadable
// directories, symlinks, and other non-regular entries are skipped
// with a warning. The channel is closed when the walk finishes.
func Walk(root string, logger *events.Logger) <-chan string {
	paths := make(chan string)

	go func() {
		defer close(paths)

		info, err := os.Stat(root)
		if err != nil {
			logger.WithError(err).WithField("path", root).Warn("Cannot stat walk root")
			return
		}

		if info.Mode().IsRegular() {
			paths <- root
			return
		}
		if !info.IsDir() {
			return
		}

		stack := []string{root}
		for len(stack) > 0 {
			dir := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			entries, err := os.ReadDir(dir)
			if err != nil {
				logger.WithError(err).WithField("path", dir).Warn("Cannot read directory")
				continue
			}

			for _, entry := range entries {
				path := filepath.Join(dir, entry.Name())
				switch {
				case entry.IsDir():
					stack = append(stack, path)
				case entry.Type().IsRegular():
					paths <- path
				default:
					// Symlinks and other non-regular entries are not
					// followed; say so rather than dropping them from
					// the output silently.
					logger.WithFields(map[string]interface{}{
						"path": path,
						"type": entry.Type().String(),
					}).Warn("Skipping non-regular entry")
				}
			}
		}
	}()

	return paths
}
