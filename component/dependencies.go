package component

import (
	"log/slog"

	"github.com/c360/plotcore/metric"
	"github.com/c360/plotcore/pkg/security"
)

// PlatformMeta provides host application identity to components.
type PlatformMeta struct {
	Organization string `json:"organization"`
	Platform     string `json:"platform"`
}

// Dependencies provides all external dependencies needed by components.
// This structure follows the same pattern as Dependencies, enabling
// components to receive properly structured dependencies rather than individual fields.
type Dependencies struct {
	MetricsRegistry *metric.MetricsRegistry // Metrics registry for Prometheus (can be nil)
	Logger          *slog.Logger            // Structured logger (can be nil, defaults to slog.Default())
	Platform        PlatformMeta            // Host application identity
	Security        security.Config         // Platform-wide security configuration
}

// GetLogger returns the configured logger or a default logger if none is provided
func (d *Dependencies) GetLogger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// GetLoggerWithComponent returns a logger configured with component context
func (d *Dependencies) GetLoggerWithComponent(componentName string) *slog.Logger {
	return d.GetLogger().With("component", componentName)
}
