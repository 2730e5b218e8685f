// Package componentregistry provides component registration for the plotcore
// ingestion engines.
package componentregistry

import (
	"errors"

	"github.com/c360/plotcore/component"
	pkgerrors "github.com/c360/plotcore/errors"
	"github.com/c360/plotcore/csvparse"
	"github.com/c360/plotcore/wsstream"
)

// Register registers all plotcore ingestion components with the provided
// registry:
//
//   - CSV loader (bounded delimited-text parse into a PlotDataSink)
//   - WebSocket streaming client (long-lived topic subscription session)
func Register(registry *component.Registry) error {
	// CRITICAL: Nil registry is a programming error (fatal), not invalid input
	if registry == nil {
		return pkgerrors.WrapFatal(
			errors.New("registry cannot be nil"),
			"ComponentRegistry", "Register", "registry validation")
	}

	if err := csvparse.Register(registry); err != nil {
		return pkgerrors.WrapInvalid(err, "ComponentRegistry", "Register", "CSV loader component registration")
	}

	if err := wsstream.Register(registry); err != nil {
		return pkgerrors.WrapInvalid(err, "ComponentRegistry", "Register", "WebSocket stream component registration")
	}

	return nil
}
