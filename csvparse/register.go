package csvparse

import (
	"encoding/json"

	"github.com/c360/plotcore/component"
	"github.com/c360/plotcore/errors"
)

var csvLoaderSchema = component.ConfigSchema{
	Properties: map[string]component.PropertySchema{
		"path": {
			Type:        "string",
			Description: "Path to the delimited text file to parse",
			Category:    "basic",
		},
		"delimiter": {
			Type:        "string",
			Description: "Field delimiter; empty auto-detects among comma, semicolon, tab, space",
			Category:    "basic",
		},
		"skip_rows": {
			Type:        "int",
			Description: "Number of leading lines to discard before the header",
			Category:    "advanced",
		},
		"time_column_index": {
			Type:        "int",
			Description: "Column index to use as the time axis; -1 uses the row index",
			Category:    "advanced",
		},
		"combined_column_index": {
			Type:        "int",
			Description: "Index into the auto-detected date+time column pairs to use as the time axis; -1 disables",
			Category:    "advanced",
		},
		"custom_time_format": {
			Type:        "string",
			Description: "Go reference-time layout string for the time column, overriding type-based parsing",
			Category:    "advanced",
		},
	},
	Required: []string{"path"},
}

// CreateLoader is the factory function for creating CSV loader components.
func CreateLoader(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	cfg := DefaultLoaderConfig()
	if len(rawConfig) > 0 {
		if err := component.SafeUnmarshal(rawConfig, &cfg); err != nil {
			return nil, errors.Wrap(err, "csv-loader-factory", "create", "config parsing")
		}
	}
	return NewLoader("csv-loader", cfg, nil, deps)
}

// Register registers the CSV loader component with the registry.
func Register(registry *component.Registry) error {
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "csv-loader",
		Factory:     CreateLoader,
		Schema:      csvLoaderSchema,
		Type:        "input",
		Protocol:    "file",
		Domain:      "telemetry",
		Description: "Bounded, run-to-completion CSV parse into a PlotDataSink",
		Version:     "1.0.0",
	})
}
