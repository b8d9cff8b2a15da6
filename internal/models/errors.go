package models

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrTargetNotFound reports a target that is neither a file nor a
	// directory. Configuration-class: fatal before any file work starts.
	ErrTargetNotFound = errors.New("target is not a file or directory")

	// ErrEmptyPassword reports an empty password source.
	ErrEmptyPassword = errors.New("password must not be empty")
)

// TaskError wraps a per-file failure. Task errors are reported and
// swallowed at the task boundary; they never cancel sibling tasks.
type TaskError struct {
	Path  string // original file path
	Phase string // "translate", "create", "stream", "relabel"
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s: %s: %v", e.Phase, e.Path, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// ConfigError wraps a fatal pre-run failure such as an unreadable
// password file or an uncreatable output directory.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
