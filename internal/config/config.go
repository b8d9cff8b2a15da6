package config

import (
	"errors"
	"fmt"
	"runtime"
)

// Config holds all application configuration.
type Config struct {
	// Run behavior
	Run RunConfig `mapstructure:"run"`

	// Logging
	Log LogConfig `mapstructure:"log"`
}

// RunConfig controls the worker pool and output placement.
type RunConfig struct {
	// Workers is the fixed worker pool size. Zero means one worker per
	// available execution unit.
	Workers int `mapstructure:"workers"`

	// Output overrides the mode's default output directory name.
	Output string `mapstructure:"output"`
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			Workers: runtime.NumCPU(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Run.Workers < 0 {
		return errors.New("run.workers must not be negative")
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}

	return nil
}

// WorkerCount resolves the configured pool size, defaulting to the
// available execution units.
func (c *Config) WorkerCount() int {
	if c.Run.Workers > 0 {
		return c.Run.Workers
	}
	return runtime.NumCPU()
}
