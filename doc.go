// Package plotcore provides the ingestion core consumed by a time-series
// plotting host application's CSV and WebSocket plugins.
//
// # Overview
//
// plotcore ships two independent ingestion engines behind a shared component
// framework:
//
//   - CSV loader: a bounded, run-to-completion parse of a delimited text
//     file into a PlotDataSink (detects the delimiter, infers column types,
//     resolves the time axis, and reports non-fatal shape problems as
//     warnings rather than errors).
//   - WebSocket streaming client: a long-lived session against a data
//     source that discovers topics, subscribes, and decodes zstd-compressed
//     binary data frames as they arrive.
//
// Both engines implement the same component.Discoverable /
// component.LifecycleComponent contract, so a host application can list,
// configure, and monitor either one uniformly.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│           componentregistry          │  wires csvparse + wsstream
//	└──────────────────┬────────────────────┘
//	                   │ registers
//	┌──────────────────┴────────────────────┐
//	│              component                │  Registry, Discoverable,
//	│  (registry, lifecycle, schema, log)   │  LifecycleComponent
//	└──────────────────┬────────────────────┘
//	                   │ implemented by
//	          ┌────────┴─────────┐
//	          ↓                  ↓
//	   ┌─────────────┐    ┌─────────────┐
//	   │  csvparse   │    │  wsstream   │
//	   │ (bounded    │    │ (long-lived │
//	   │  parse)     │    │  session)   │
//	   └──────┬──────┘    └──────┬──────┘
//	          └─────────┬────────┘
//	                    ↓
//	              ┌───────────┐
//	              │   sink    │  PlotDataSink: NumericSeries,
//	              │           │  StringSeries (interned)
//	              └───────────┘
//
// # Packages
//
//   - component: component lifecycle, registry, config schema, structured logging
//   - componentregistry: registration of the CSV loader and WebSocket client
//   - config: persisted defaults and per-project session state (§6.5)
//   - csvparse: the CSV parsing engine
//   - wsstream: the WebSocket streaming client
//   - sink: the PlotDataSink contract consumed by both engines
//   - metric: Prometheus metrics registry and HTTP handler
//   - errors: three-class (Transient/Invalid/Fatal) error classification
//   - health: component health status tracking and aggregation
//   - pkg/timestamp, pkg/retry, pkg/security, pkg/tlsutil, pkg/acme: shared utilities
//
// # Usage
//
//	registry := component.NewRegistry()
//	if err := componentregistry.Register(registry); err != nil {
//	    log.Fatal(err)
//	}
//
//	deps := component.Dependencies{
//	    Platform: component.PlatformMeta{Organization: "acme", Platform: "plotter"},
//	    Logger:   slog.Default(),
//	}
//
//	instance, err := registry.CreateComponent("csv-1", component.ComponentConfig{
//	    Type:   "input",
//	    Name:   "csv-loader",
//	    Config: json.RawMessage(`{"path": "data.csv", "delimiter": ","}`),
//	}, deps)
package plotcore
