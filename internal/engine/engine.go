// Package engine fans one task per discovered file across a fixed
// worker pool and collects the outcomes.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/GabeHardgrave/dircrypt/internal/crypto"
	"github.com/GabeHardgrave/dircrypt/internal/events"
	"github.com/GabeHardgrave/dircrypt/internal/models"
	"github.com/GabeHardgrave/dircrypt/internal/pathmap"
	"github.com/GabeHardgrave/dircrypt/internal/storage"
	"github.com/GabeHardgrave/dircrypt/internal/streamer"
)

// Engine processes files for one run. A task failure is reported and
// swallowed; it never cancels sibling tasks, and the run completes only
// once every submitted task has finished.
type Engine struct {
	mapper  *pathmap.Mapper
	mode    crypto.Mode
	workers int
	logger  *events.Logger
}

// New creates an engine with a fixed worker pool size.
func New(mapper *pathmap.Mapper, mode crypto.Mode, workers int, logger *events.Logger) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		mapper:  mapper,
		mode:    mode,
		workers: workers,
		logger:  logger.WithField("component", "engine"),
	}
}

// Run consumes file paths from the walker channel, one task per file.
// Tasks are picked up individually rather than pre-batched, so a skewed
// mix of file sizes cannot strand work on one worker.
func (e *Engine) Run(paths <-chan string) *models.RunReport {
	report := models.NewRunReport()

	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				e.processFile(path, report)
			}
		}()
	}
	wg.Wait()

	report.Finish()
	return report
}

// processFile is the per-file task: translate the path, create the
// destination, stream the contents, and relabel on malformed input.
func (e *Engine) processFile(original string, report *models.RunReport) {
	logger := e.logger.WithField("file", original)

	destination, err := e.mapper.TranslatePath(original)
	if err != nil {
		e.reportFailure(report, &models.TaskError{Path: original, Phase: "translate", Err: err})
		return
	}

	if err := storage.CreatePathAndFile(destination); err != nil {
		e.reportFailure(report, &models.TaskError{Path: original, Phase: "create", Err: err})
		return
	}

	err = streamer.StreamFile(original, destination, e.mode)
	switch {
	case errors.Is(err, crypto.ErrMalformed):
		relabeled, rerr := storage.LabelMalformed(destination)
		if rerr != nil {
			e.reportFailure(report, &models.TaskError{Path: original, Phase: "relabel", Err: rerr})
			return
		}
		warning := fmt.Sprintf("%s '%s' contents failed. View '%s' at your own risk.",
			e.mode.Verb(), original, relabeled)
		logger.WithField("relabeled", relabeled).Warn("Malformed contents")
		report.AddRelabeled(warning)

	case err != nil:
		e.reportFailure(report, &models.TaskError{Path: original, Phase: "stream", Err: err})

	default:
		logger.WithField("destination", destination).Debug("File processed")
		report.AddSuccess()
	}
}

func (e *Engine) reportFailure(report *models.RunReport, taskErr *models.TaskError) {
	e.logger.WithError(taskErr).WithField("file", taskErr.Path).Warn("Task failed")
	report.AddFailure(fmt.Sprintf("Error handling '%s'. Failed with '%v'", taskErr.Path, taskErr.Err))
}
