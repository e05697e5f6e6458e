package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug allowed at debug", LevelDebug, LevelDebug, true},
		{"info allowed at debug", LevelDebug, LevelInfo, true},
		{"warn allowed at debug", LevelDebug, LevelWarn, true},
		{"error allowed at debug", LevelDebug, LevelError, true},
		{"debug blocked at info", LevelInfo, LevelDebug, false},
		{"info allowed at info", LevelInfo, LevelInfo, true},
		{"warn allowed at info", LevelInfo, LevelWarn, true},
		{"error allowed at info", LevelInfo, LevelError, true},
		{"debug blocked at warn", LevelWarn, LevelDebug, false},
		{"info blocked at warn", LevelWarn, LevelInfo, false},
		{"warn allowed at warn", LevelWarn, LevelWarn, true},
		{"error allowed at warn", LevelWarn, LevelError, true},
		{"debug blocked at error", LevelError, LevelDebug, false},
		{"info blocked at error", LevelError, LevelInfo, false},
		{"warn blocked at error", LevelError, LevelWarn, false},
		{"error allowed at error", LevelError, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New()
			logger.SetLevel(tt.minLevel)
			logger.SetOutput(log.New(&buf, "", 0))

			switch tt.logLevel {
			case LevelDebug:
				logger.Debug("test message")
			case LevelInfo:
				logger.Info("test message")
			case LevelWarn:
				logger.Warn("test message")
			case LevelError:
				logger.Error("test message")
			}

			if tt.shouldLog {
				assert.NotEmpty(t, buf.String(), "expected log output")
				assert.Contains(t, buf.String(), "test message")
			} else {
				assert.Empty(t, buf.String(), "expected no log output")
			}
		})
	}
}

func TestLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetLevel(LevelDebug)
	logger.SetOutput(log.New(&buf, "", 0))

	childLogger := logger.With("run", "3f2a9c1e")
	childLogger.Warn("chart export failed")

	output := buf.String()
	assert.Contains(t, output, "WARN: chart export failed")
	assert.Contains(t, output, "run=3f2a9c1e")
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetLevel(LevelDebug)
	logger.SetOutput(log.New(&buf, "", 0))

	childLogger := logger.WithFields(map[string]interface{}{
		"run":       "3f2a9c1e",
		"component": "feed",
	})
	childLogger.Error("watch failed")

	output := buf.String()
	assert.Contains(t, output, "ERROR: watch failed")
	assert.Contains(t, output, "run=3f2a9c1e")
	assert.Contains(t, output, "component=feed")
}

func TestLoggerInlineKeyVals(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetLevel(LevelDebug)
	logger.SetOutput(log.New(&buf, "", 0))

	logger.Warn("feed read failed", "error", errors.New("permission denied"), "attempt", 3)

	output := buf.String()
	assert.Contains(t, output, "WARN: feed read failed")
	assert.Contains(t, output, "error=\"permission denied\"")
	assert.Contains(t, output, "attempt=3")
}

func TestLoggerChainingPreservesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetLevel(LevelDebug)
	logger.SetOutput(log.New(&buf, "", 0))

	runLogger := logger.With("run", "3f2a9c1e")
	opLogger := runLogger.With("component", "calculator")
	opLogger.Info("reading applied")

	output := buf.String()
	assert.Contains(t, output, "run=3f2a9c1e")
	assert.Contains(t, output, "component=calculator")
}

func TestLoggerOriginalUnmodified(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetLevel(LevelDebug)
	logger.SetOutput(log.New(&buf, "", 0))

	_ = logger.With("run", "3f2a9c1e")
	logger.Info("original logger")

	output := buf.String()
	assert.NotContains(t, output, "run=3f2a9c1e")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"simple string", "hello", "hello"},
		{"string with spaces", "hello world", `"hello world"`},
		{"string with newline", "hello\nworld", `"hello\nworld"`},
		{"integer", 42, "42"},
		{"error", errors.New("oops"), `"oops"`},
		{"bool", true, "true"},
		{"empty string", "", `""`},
		{"float", 3.333333, "3.333"},
		{"stringer", LevelInfo, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatValue(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	// Test that package-level functions work
	var buf bytes.Buffer
	Default().SetOutput(log.New(&buf, "", 0))
	SetLevel(LevelWarn)

	// Debug should be filtered out
	Debug("debug message")
	assert.Empty(t, buf.String())

	// Warn should be logged
	Warn("warn message")
	assert.Contains(t, buf.String(), "WARN: warn message")

	buf.Reset()

	// With should return a child logger
	childLogger := With("component", "cli")
	childLogger.Error("error message")
	assert.Contains(t, buf.String(), "component=cli")
}

func TestLevelNames(t *testing.T) {
	tests := []struct {
		level Level
		name  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New()
			logger.SetLevel(LevelDebug)
			logger.SetOutput(log.New(&buf, "", 0))

			switch tt.level {
			case LevelDebug:
				logger.Debug("test")
			case LevelInfo:
				logger.Info("test")
			case LevelWarn:
				logger.Warn("test")
			case LevelError:
				logger.Error("test")
			}

			assert.True(t, strings.HasPrefix(buf.String(), tt.name+":"))
		})
	}
}

func TestDerivedLoggerSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(log.New(&buf, "", 0))

	// Derived before the level is raised, as components do at construction.
	child := logger.With("component", "calculator")
	child.Debug("reading skipped")
	assert.Empty(t, buf.String())

	logger.SetLevel(LevelDebug)
	child.Debug("reading skipped", "reason", "missing start time")
	assert.Contains(t, buf.String(), `DEBUG: reading skipped | component=calculator reason="missing start time"`)
	assert.Equal(t, LevelDebug, child.Level())
}

func TestFieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetLevel(LevelDebug)
	logger.SetOutput(log.New(&buf, "", 0))

	logger.Info("reading applied", "total", 1000, "processed", 100, "delta", "none")
	assert.Equal(t, "INFO: reading applied | delta=none processed=100 total=1000\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"Error", LevelError, false},
		{"verbose", LevelWarn, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
