package models

import (
	"sync"
	"time"
)

// RunReport accumulates per-file outcomes across concurrent workers.
type RunReport struct {
	mu        sync.Mutex
	processed int
	relabeled int
	failed    int
	warnings  []string
	start     time.Time
	duration  time.Duration
}

// NewRunReport starts the run clock.
func NewRunReport() *RunReport {
	return &RunReport{start: time.Now()}
}

// AddSuccess records a fully processed file.
func (r *RunReport) AddSuccess() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed++
}

// AddRelabeled records a file whose contents could not be decrypted and
// was renamed in place.
func (r *RunReport) AddRelabeled(warning string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed++
	r.relabeled++
	r.warnings = append(r.warnings, warning)
}

// AddFailure records a file abandoned on a filesystem error.
func (r *RunReport) AddFailure(warning string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processed++
	r.failed++
	r.warnings = append(r.warnings, warning)
}

// Finish stops the run clock.
func (r *RunReport) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.duration = time.Since(r.start)
}

// Processed returns the number of files handled, in any outcome.
func (r *RunReport) Processed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.processed
}

// Relabeled returns the number of files renamed as malformed.
func (r *RunReport) Relabeled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.relabeled
}

// Failed returns the number of files abandoned on filesystem errors.
func (r *RunReport) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Warnings returns a copy of the accumulated warning lines.
func (r *RunReport) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Duration returns the wall-clock run time recorded by Finish.
func (r *RunReport) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.duration
}
