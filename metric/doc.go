// Package metric provides Prometheus-based metrics collection and an HTTP
// server for plotcore's ingestion engines.
//
// The package offers a centralized metrics registry managing both core
// platform metrics (component lifecycle, CSV parse throughput, WebSocket
// session health) and component-specific metrics registered ad hoc. It
// includes an HTTP server exposing metrics in Prometheus format.
//
// # Architecture
//
// The package follows a three-layer design:
//
//  1. Core Metrics: platform-level metrics automatically registered (Metrics type)
//  2. Component Registry: extensible registration for component-specific metrics (MetricsRegistrar interface)
//  3. HTTP Server: metrics endpoint with health checks (Server type)
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	securityCfg := security.Config{}
//	server := metric.NewServer(9090, "/metrics", registry, securityCfg)
//
//	go func() {
//	    if err := server.Start(); err != nil && err != http.ErrServerClosed {
//	        log.Printf("metrics server error: %v", err)
//	    }
//	}()
//
//	coreMetrics := registry.CoreMetrics()
//	coreMetrics.RecordComponentStatus("csv-loader-1", 2)
//	coreMetrics.RecordCSVRowsParsed("csv-loader-1", 1500)
//
// The metrics server exposes Prometheus-formatted metrics at
// http://localhost:9090/metrics and a health check at /health.
//
// # Core Metrics
//
//   - Component lifecycle: component_status, health_status
//   - CSV loader: csv_rows_parsed_total, csv_warnings_total, csv_parse_duration_seconds
//   - WebSocket client: ws_messages_received_total, ws_frames_decoded_total,
//     ws_reconnects_total, ws_request_duration_seconds, ws_connected
//   - Error tracking: errors_total, labeled by component and error class
//     (transient/invalid/fatal)
//
// # Component-Specific Metrics
//
// Components register custom metrics through the registry:
//
//	requestCounter := prometheus.NewCounter(prometheus.CounterOpts{
//	    Name: "rows_skipped_total",
//	    Help: "Total number of rows skipped due to parse warnings",
//	})
//	err := registry.RegisterCounter("csv-loader-1", "rows_skipped_total", requestCounter)
//
// # HTTP Server
//
// The metrics server provides three endpoints:
//
//   - GET / - HTML page with links to metrics and health endpoints
//   - GET /metrics - Prometheus-formatted metrics
//   - GET /health - plain-text "OK" health check response
//
//	server := metric.NewServer(9090, "/metrics", registry, securityCfg)
//	if err := server.Start(); err != nil {
//	    log.Fatalf("failed to start metrics server: %v", err)
//	}
//	defer server.Stop()
//
// # Prometheus Integration
//
// All core metrics use the namespace "plotcore":
//
//   - plotcore_component_status{component="..."}
//   - plotcore_csv_rows_parsed_total{component="..."}
//   - plotcore_ws_connected{component="..."}
//
// Component-specific metrics use the metric name as provided during
// registration.
//
// # Thread Safety
//
// All registry operations are thread-safe:
//   - Registration methods use mutex protection
//   - Metric recording is lock-free (Prometheus guarantee)
//   - CoreMetrics() returns a thread-safe shared instance
package metric
