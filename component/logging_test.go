package component

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	cl := NewLogger("test-component", "instance-1", base)

	assert.Equal(t, "test-component", cl.componentName)
	assert.Equal(t, "instance-1", cl.instanceID)
	assert.Equal(t, base, cl.logger)
}

func TestNewLogger_NilBaseDefaultsToSlogDefault(t *testing.T) {
	cl := NewLogger("test-component", "instance-1", nil)
	assert.NotNil(t, cl.logger)
}

func TestLogger_LogLevels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cl := NewLogger("test-component", "test-instance", base)

	cl.Debug("debug message")
	cl.Info("info message")
	cl.Warn("warning message")
	cl.Error("error message", nil)
	cl.Error("error occurred", assertError("boom"))

	out := buf.String()
	assert.Contains(t, out, "debug message")
	assert.Contains(t, out, "info message")
	assert.Contains(t, out, "warning message")
	assert.Contains(t, out, "error message")
	assert.Contains(t, out, "error occurred")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "test-component")
	assert.Contains(t, out, "test-instance")
}

type simpleError string

func (e simpleError) Error() string { return string(e) }

func assertError(msg string) error { return simpleError(msg) }
