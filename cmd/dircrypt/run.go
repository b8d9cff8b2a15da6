package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/GabeHardgrave/dircrypt/internal/crypto"
	"github.com/GabeHardgrave/dircrypt/internal/engine"
	"github.com/GabeHardgrave/dircrypt/internal/models"
	"github.com/GabeHardgrave/dircrypt/internal/pathmap"
	"github.com/GabeHardgrave/dircrypt/internal/storage"
)

// runDircrypt wires one run together: validate the target, create the
// output directory, and drive the engine over the walked files.
func runDircrypt(mode crypto.Mode, target, outputName string) error {
	info, err := os.Stat(target)
	if err != nil || !(info.IsDir() || info.Mode().IsRegular()) {
		return &models.ConfigError{
			Reason: "'" + target + "' must be a file or directory",
			Err:    models.ErrTargetNotFound,
		}
	}

	if outputName == "" {
		outputName = cfg.Run.Output
	}
	if outputName == "" {
		outputName = mode.OutputDirName()
	}

	outputDir, err := storage.ForceCreateDir(outputName)
	if err != nil {
		return &models.ConfigError{Reason: "create output directory", Err: err}
	}

	// Directory targets are the mapping root themselves, so the output
	// tree starts at the target's children. A file target maps relative
	// to its parent.
	root := filepath.Clean(target)
	if !info.IsDir() {
		root = filepath.Dir(root)
	}
	mapper := pathmap.NewMapper(root, outputDir, mode, logger)
	eng := engine.New(mapper, mode, cfg.WorkerCount(), logger)

	printInfo("%s '%s'", mode.Verb(), target)
	start := time.Now()

	report := eng.Run(storage.Walk(target, logger))

	for _, warning := range report.Warnings() {
		printWarning("%s", warning)
	}

	printInfo("Finished %s '%s'", mode.Verb(), target)

	if jsonOutput {
		printJSON(map[string]interface{}{
			"target":    target,
			"output":    outputDir,
			"processed": report.Processed(),
			"relabeled": report.Relabeled(),
			"failed":    report.Failed(),
			"duration":  report.Duration().String(),
		})
		return nil
	}

	printSuccess("%d files -> '%s' in %s (%d relabeled, %d failed)",
		report.Processed(), outputDir, time.Since(start).Round(time.Millisecond),
		report.Relabeled(), report.Failed())
	return nil
}
