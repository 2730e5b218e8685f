package component

import (
	"context"
	"fmt"
	"log/slog"
)

// LogLevel represents the severity level of a log entry
type LogLevel string

const (
	// LogLevelDebug represents debug-level logs
	LogLevelDebug LogLevel = "DEBUG"
	// LogLevelInfo represents informational logs
	LogLevelInfo LogLevel = "INFO"
	// LogLevelWarn represents warning logs
	LogLevelWarn LogLevel = "WARN"
	// LogLevelError represents error logs
	LogLevelError LogLevel = "ERROR"
)

// LogEntry is the structured shape a component's log calls are rendered into.
// Callers that want to inspect component log output (tests, in-process
// health dashboards) can format a Logger call into this shape themselves;
// the Logger type below logs through slog directly and does not buffer.
type LogEntry struct {
	Timestamp string   `json:"timestamp"` // RFC3339 format
	Level     LogLevel `json:"level"`
	Component string   `json:"component"`
	InstanceID string  `json:"instance_id"`
	Message   string   `json:"message"`
	Stack     string   `json:"stack,omitempty"` // Stack trace for errors
}

// Logger provides structured, component-scoped logging on top of slog.Logger.
// Every call is tagged with the owning component's name and instance id so
// multiple CSV loads or WS client sessions interleaving in one process stay
// distinguishable in the log stream.
type Logger struct {
	componentName string
	instanceID    string
	logger        *slog.Logger
}

// NewLogger creates a component-scoped logger. A nil base logger falls back
// to slog.Default().
func NewLogger(componentName, instanceID string, base *slog.Logger) *Logger {
	if base == nil {
		base = slog.Default()
	}
	return &Logger{
		componentName: componentName,
		instanceID:    instanceID,
		logger:        base,
	}
}

// Debug logs a debug-level message
func (cl *Logger) Debug(msg string) {
	cl.DebugContext(context.Background(), msg)
}

// Info logs an info-level message
func (cl *Logger) Info(msg string) {
	cl.InfoContext(context.Background(), msg)
}

// Warn logs a warning-level message
func (cl *Logger) Warn(msg string) {
	cl.WarnContext(context.Background(), msg)
}

// Error logs an error-level message with optional error details
func (cl *Logger) Error(msg string, err error) {
	cl.ErrorContext(context.Background(), msg, err)
}

// DebugContext logs a debug-level message with context
func (cl *Logger) DebugContext(ctx context.Context, msg string) {
	cl.logger.DebugContext(ctx, msg, "component", cl.componentName, "instance", cl.instanceID)
}

// InfoContext logs an info-level message with context
func (cl *Logger) InfoContext(ctx context.Context, msg string) {
	cl.logger.InfoContext(ctx, msg, "component", cl.componentName, "instance", cl.instanceID)
}

// WarnContext logs a warning-level message with context
func (cl *Logger) WarnContext(ctx context.Context, msg string) {
	cl.logger.WarnContext(ctx, msg, "component", cl.componentName, "instance", cl.instanceID)
}

// ErrorContext logs an error-level message with optional error details and context
func (cl *Logger) ErrorContext(ctx context.Context, msg string, err error) {
	if err == nil {
		cl.logger.ErrorContext(ctx, msg, "component", cl.componentName, "instance", cl.instanceID)
		return
	}
	cl.logger.ErrorContext(ctx, msg,
		"component", cl.componentName, "instance", cl.instanceID,
		"error", fmt.Sprintf("%+v", err))
}
