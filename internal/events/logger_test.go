package events_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabeHardgrave/dircrypt/internal/events"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewLogger(events.WarnLevel, "text", &buf)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "[ERROR]")
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewLogger(events.InfoLevel, "json", &buf)

	logger.WithField("file", "a.txt").Info("processed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "processed", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "a.txt", entry["file"])
	assert.NotEmpty(t, entry["time"])
}

func TestLoggerFieldChainsAreImmutable(t *testing.T) {
	var buf bytes.Buffer
	base := events.NewLogger(events.InfoLevel, "json", &buf)

	child := base.WithField("component", "engine")
	grandchild := child.WithFields(map[string]interface{}{"file": "x"})

	base.Info("plain")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasComponent := entry["component"]
	assert.False(t, hasComponent, "child field leaked into parent")

	buf.Reset()
	grandchild.Info("rich")
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "x", entry["file"])
}

func TestLoggerWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewLogger(events.InfoLevel, "text", &buf)

	logger.WithError(errors.New("boom")).Error("failed")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestLoggerTextFieldOrderIsDeterministic(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewLogger(events.InfoLevel, "text", &buf).
		WithFields(map[string]interface{}{"b": 2, "a": 1, "c": 3})

	logger.Info("msg")
	line := buf.String()
	assert.Less(t, strings.Index(line, "a=1"), strings.Index(line, "b=2"))
	assert.Less(t, strings.Index(line, "b=2"), strings.Index(line, "c=3"))
}

func TestLoggerConcurrentUse(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewLogger(events.InfoLevel, "json", &buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.WithField("worker", i).Info("tick")
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 8)
	for _, line := range lines {
		var entry map[string]interface{}
		assert.NoError(t, json.Unmarshal([]byte(line), &entry))
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, events.DebugLevel, events.ParseLevel("debug"))
	assert.Equal(t, events.WarnLevel, events.ParseLevel("WARN"))
	assert.Equal(t, events.ErrorLevel, events.ParseLevel("error"))
	assert.Equal(t, events.InfoLevel, events.ParseLevel("anything else"))
}
