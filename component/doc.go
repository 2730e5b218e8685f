// Package component provides the core component infrastructure for plotcore,
// enabling dynamic component discovery, registration, lifecycle management, and
// instance creation.
//
// # Overview
//
// The component package defines fundamental abstractions for plotcore's two
// component families: CSV loaders (bounded, run-to-completion parses) and
// WebSocket streaming clients (long-lived sessions). Components are
// self-describing units that can be discovered at runtime, configured
// through schemas, and managed through their lifecycle.
//
// The Registry serves as the central component management system, handling both factory
// registration and instance management with thread-safe operations and proper lifecycle
// control.
//
// # Component Registration Pattern
//
// plotcore uses EXPLICIT registration rather than init() self-registration. This provides:
//   - Testability: Can create isolated registries for testing
//   - Explicitness: Clear component dependency graph
//   - Control: Main application controls what gets registered
//   - No side effects: No global state modification during package initialization
//
// Registration Flow:
//
//  1. Each component package exports a Register(*Registry) error function
//  2. componentregistry.Register() orchestrates all registrations
//  3. main.go explicitly calls Register() with a created Registry
//  4. Components are now available for instantiation
//
// Example component registration:
//
//	// In csvparse/register.go
//	func Register(registry *component.Registry) error {
//		return registry.RegisterWithConfig(component.RegistrationConfig{
//			Name:        "csv-loader",
//			Factory:     CreateLoader,
//			Schema:      csvLoaderSchema,
//			Type:        "input",
//			Protocol:    "file",
//			Domain:      "telemetry",
//			Description: "Bounded, run-to-completion CSV parse into a PlotDataSink",
//			Version:     "1.0.0",
//		})
//	}
//
//	// In componentregistry/register.go
//	func Register(registry *component.Registry) error {
//		if err := csvparse.Register(registry); err != nil {
//			return err
//		}
//		if err := wsstream.Register(registry); err != nil {
//			return err
//		}
//		return nil
//	}
//
//	// In the host application's main.go
//	registry := component.NewRegistry()
//	if err := componentregistry.Register(registry); err != nil {
//		log.Fatal(err)
//	}
//
// # Quick Start
//
// Creating and using a component:
//
//	// Create component registry and register all components
//	registry := component.NewRegistry()
//	if err := componentregistry.Register(registry); err != nil {
//		return err
//	}
//
//	// Create component configuration
//	config := component.ComponentConfig{
//		Type:   "input",
//		Name:   "csv-loader",
//		Config: json.RawMessage(`{"path": "data.csv", "delimiter": ","}`),
//	}
//
//	// Prepare component dependencies
//	deps := component.Dependencies{
//		Platform: component.PlatformMeta{
//			Organization: "c360",
//			Platform:     "plotcore",
//		},
//		Logger: slog.Default(),
//	}
//
//	// Create component instance
//	instance, err := registry.CreateComponent("csv-loader-1", config, deps)
//	if err != nil {
//		return err
//	}
//
//	// Component is now ready to use
//	meta := instance.Meta()
//	health := instance.Health()
//
// # core Concepts
//
// Discoverable Interface:
//
// Every component must implement Discoverable, providing metadata,
// configuration schema, health status, and data flow metrics. This enables
// runtime introspection and management.
//
// Registry Pattern:
//
// The Registry manages component factories and instances with thread-safe operations.
// Components register explicitly via Register() functions called by componentregistry,
// and the Registry handles creation and lifecycle management.
//
// Dependencies:
//
// All external dependencies (metrics, logger, platform identity, security
// config) are injected through the Dependencies struct, following clean
// dependency injection patterns.
//
// # Configuration Schema
//
// Components define their configuration through ConfigSchema, enabling:
//   - Schema-driven UI generation with type-specific form inputs
//   - Client and server-side validation before config persistence
//   - Property categorization (basic vs advanced) for progressive disclosure
//   - Default value population for improved user experience
//
// Schema Definition Example:
//
//	func (c *Loader) ConfigSchema() component.ConfigSchema {
//		return component.ConfigSchema{
//			Properties: map[string]component.PropertySchema{
//				"delimiter": {
//					Type:        "string",
//					Description: "Field delimiter; empty string auto-detects",
//					Default:     "",
//					Category:    "basic",
//				},
//				"max_line_count": {
//					Type:        "int",
//					Description: "Rows to sample when auto-detecting the delimiter",
//					Default:     100,
//					Minimum:     ptrInt(1),
//					Category:    "advanced",
//				},
//			},
//		}
//	}
//
// Property Types:
//   - "string": Text input, optional pattern validation
//   - "int": Number input with min/max constraints
//   - "bool": Checkbox input
//   - "float": Number input allowing decimals
//   - "enum": Dropdown select with predefined values
//   - "object": Complex nested configuration (JSON editor fallback in MVP)
//   - "array": List of values (JSON editor fallback in MVP)
//
// Schema Validation:
//
// Configurations are validated both client-side (instant feedback) and server-side
// (before persistence) using the ValidateConfig() function:
//
//	config := map[string]any{
//		"max_line_count": -1,  // Below minimum
//	}
//
//	errors := component.ValidateConfig(config, schema)
//	if len(errors) > 0 {
//		// Returns: [{Field: "max_line_count", Message: "... must be >= 1", Code: "min"}]
//		// Frontend displays error next to the field
//	}
//
// Property Categorization:
//
// The Category field organizes properties for progressive disclosure:
//   - "basic": Common settings shown by default
//   - "advanced": Expert settings in collapsible section
//   - Empty/unset: Defaults to "advanced"
//
// UI renders basic properties first, then advanced in a collapsible <details> element.
// Properties within each category are sorted alphabetically for consistency.
//
// Helper Functions:
//   - GetProperties(schema, category): Filter properties by category
//   - SortedPropertyNames(schema): Get property names in UI display order
//   - IsComplexType(propType): Identify object/array types needing special handling
//   - ValidateConfig(config, schema): Validate configuration against schema
//
// # Discoverable Interface
//
// All components must implement the Discoverable interface:
//
//	type Discoverable interface {
//		Meta() Metadata             // Component metadata (name, type, version)
//		ConfigSchema() ConfigSchema // Configuration schema for validation
//		Health() HealthStatus       // Current health status
//		DataFlow() FlowMetrics      // Data flow metrics (messages, bytes)
//	}
//
// This interface enables:
//   - Runtime introspection of component capabilities
//   - Dynamic configuration validation
//   - Health monitoring and metrics collection
//   - Data flow visualization and debugging
//
// # Dependencies
//
// Dependencies are injected through a structured dependencies object:
//
//	type Dependencies struct {
//		MetricsRegistry *metric.MetricsRegistry // Optional: Prometheus metrics
//		Logger          *slog.Logger            // Optional: structured logging
//		Platform        PlatformMeta            // Host application identity
//		Security        security.Config         // Platform-wide TLS/mTLS/ACME config
//	}
//
// Benefits:
//   - Clean dependency injection
//   - Easy testing with mock dependencies
//   - Avoids parameter proliferation in factory functions
//   - Follows service architecture patterns
//
// # Factory Pattern
//
// Component factories follow a consistent signature:
//
//	type Factory func(rawConfig json.RawMessage, deps Dependencies) (Discoverable, error)
//
// Example factory implementation:
//
//	func CreateLoader(rawConfig json.RawMessage, deps Dependencies) (component.Discoverable, error) {
//		var config LoaderConfig
//		if err := component.SafeUnmarshal(rawConfig, &config); err != nil {
//			return nil, fmt.Errorf("parse CSV loader config: %w", err)
//		}
//		return &Loader{config: config, logger: deps.Logger}, nil
//	}
//
// Factories:
//   - Receive raw JSON configuration and parse it themselves
//   - Validate configuration before creating instances
//   - Return initialized components ready to use
//   - Follow service constructor patterns for consistency
//
// # Registry Thread Safety
//
// All Registry operations are thread-safe:
//   - Factory registration uses write locks
//   - Component creation uses read locks for factory lookup
//   - Instance tracking uses write locks
//   - Listing operations use read locks
//
// Concurrency characteristics:
//   - Multiple goroutines can create components concurrently
//   - Factory registration blocks component creation temporarily
//   - ListAvailable() is safe to call during component creation
//   - No deadlocks due to ordered lock acquisition
//
// # Testing
//
// The explicit registration pattern makes testing straightforward:
//
//	// Create isolated test registry
//	registry := component.NewRegistry()
//
//	// Register only components needed for test
//	if err := csvparse.Register(registry); err != nil {
//		t.Fatal(err)
//	}
//
//	// Create test dependencies
//	deps := component.Dependencies{
//		Platform: component.PlatformMeta{
//			Organization: "test",
//			Platform:     "test-platform",
//		},
//		Logger: slog.Default(),
//	}
//
//	// Test component creation
//	instance, err := registry.CreateComponent("test-1", config, deps)
//	if err != nil {
//		t.Fatal(err)
//	}
//
//	// Verify component behavior through Discoverable interface
//	assert.Equal(t, "csv-loader", instance.Meta().Type)
//	assert.True(t, instance.Health().Healthy)
//
// # Architecture Decisions
//
// Explicit Registration vs init() Self-Registration:
//
// Decision: Use explicit Register() functions called by componentregistry
//
// Benefits:
//   - Testability: Can create isolated registries without global state
//   - Explicitness: Clear component dependency graph in componentregistry
//   - Control: Main application controls what gets registered and when
//   - No side effects: Package imports don't modify global state
//   - Deterministic: Registration order is explicit and controllable
//
// Registry-Based Architecture vs Distributed Catalog:
//
// Decision: Use centralized Registry for component management
//
// Benefits:
//   - Simpler to reason about and test
//   - Single source of truth for component management
//   - Thread-safe operations with minimal overhead
//   - No network dependencies for component discovery
//
// Dependency Injection via Struct:
//
// Decision: Use Dependencies struct instead of individual parameters
//
// Benefits:
//   - Avoids parameter proliferation in factory functions
//   - Easy to add new dependencies without breaking existing factories
//   - Enables easy testing with mock dependencies
//   - Follows service architecture patterns
//
// # Integration Points
//
// Dependencies:
//   - metric: Optional for Prometheus metrics
//   - pkg/security: Optional TLS/mTLS/ACME configuration for WS clients
//   - log/slog: Optional for structured logging (defaults to slog.Default())
//
// Used By:
//   - componentregistry: Orchestrates component registration
//   - cmd/plotcore-csv, cmd/plotcore-wsclient: Application entry points
//
// Data Flow:
//
//	Configuration → Factory Lookup → Factory Execution → Component Instance → Registry
package component
