package wsstream

import (
	"encoding/json"

	"github.com/c360/plotcore/component"
	"github.com/c360/plotcore/errors"
)

var wsClientSchema = component.ConfigSchema{
	Properties: map[string]component.PropertySchema{
		"url": {
			Type:        "string",
			Description: "WebSocket server URL to connect to",
			Category:    "basic",
		},
		"topics": {
			Type:        "array",
			Description: "Topic names to subscribe to once discovered",
			Category:    "basic",
		},
		"reconnect": {
			Type:        "object",
			Description: "Reconnection backoff configuration",
			Category:    "reliability",
		},
	},
	Required: []string{"url"},
}

// globalParsers is the process-wide parser registry hosts populate before
// components are started (spec §9: factories are an external collaborator,
// not something csvparse/wsstream construct themselves).
var globalParsers = NewParserRegistry()

// Parsers returns the shared ParserRegistry that CreateClient wires every
// Client component against. Hosts call RegisterFactory on it during startup.
func Parsers() *ParserRegistry {
	return globalParsers
}

// CreateClient is the factory function for creating WebSocket streaming
// client components.
func CreateClient(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	cfg := DefaultClientConfig()
	if len(rawConfig) > 0 {
		if err := component.SafeUnmarshal(rawConfig, &cfg); err != nil {
			return nil, errors.Wrap(err, "ws-client-factory", "create", "config parsing")
		}
	}
	return NewClient("ws-client", cfg, nil, globalParsers, deps)
}

// Register registers the WebSocket streaming client component with the registry.
func Register(registry *component.Registry) error {
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "ws-client",
		Factory:     CreateClient,
		Schema:      wsClientSchema,
		Type:        "input",
		Protocol:    "websocket",
		Domain:      "telemetry",
		Description: "Long-lived WebSocket session decoding binary frames into a PlotDataSink",
		Version:     "1.0.0",
	})
}
