package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all platform-level metrics shared by plotcore's ingestion
// cores (not component-specific — those register their own via
// MetricsRegistry.RegisterCounter/RegisterGauge/...).
type Metrics struct {
	// Component lifecycle
	ComponentStatus   *prometheus.GaugeVec
	HealthCheckStatus *prometheus.GaugeVec
	ErrorsTotal       *prometheus.CounterVec

	// CSV loader (§4.1-§4.7)
	CSVRowsParsed      *prometheus.CounterVec
	CSVWarningsEmitted *prometheus.CounterVec
	CSVParseDuration   *prometheus.HistogramVec

	// WebSocket streaming client (§4.8-§4.9)
	WSMessagesReceived *prometheus.CounterVec
	WSFramesDecoded    *prometheus.CounterVec
	WSReconnects       *prometheus.CounterVec
	WSRequestLatency   *prometheus.HistogramVec
	WSConnected        *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all platform metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		ComponentStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "plotcore",
				Subsystem: "component",
				Name:      "status",
				Help:      "Component status (0=stopped, 1=starting, 2=running, 3=stopping, 4=failed)",
			},
			[]string{"component"},
		),

		HealthCheckStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "plotcore",
				Subsystem: "health",
				Name:      "status",
				Help:      "Health check status (0=unhealthy, 1=healthy)",
			},
			[]string{"component"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "plotcore",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors by component and class (transient/invalid/fatal)",
			},
			[]string{"component", "class"},
		),

		CSVRowsParsed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "plotcore",
				Subsystem: "csv",
				Name:      "rows_parsed_total",
				Help:      "Total number of CSV data rows parsed",
			},
			[]string{"component"},
		),

		CSVWarningsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "plotcore",
				Subsystem: "csv",
				Name:      "warnings_total",
				Help:      "Total number of CSV parse warnings emitted, by warning code",
			},
			[]string{"component", "code"},
		),

		CSVParseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "plotcore",
				Subsystem: "csv",
				Name:      "parse_duration_seconds",
				Help:      "CSV file parse duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"component"},
		),

		WSMessagesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "plotcore",
				Subsystem: "ws",
				Name:      "messages_received_total",
				Help:      "Total number of WebSocket protocol messages received",
			},
			[]string{"component", "type"},
		),

		WSFramesDecoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "plotcore",
				Subsystem: "ws",
				Name:      "frames_decoded_total",
				Help:      "Total number of binary data frames decoded, by outcome",
			},
			[]string{"component", "outcome"},
		),

		WSReconnects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "plotcore",
				Subsystem: "ws",
				Name:      "reconnects_total",
				Help:      "Total number of WebSocket reconnect attempts",
			},
			[]string{"component"},
		),

		WSRequestLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "plotcore",
				Subsystem: "ws",
				Name:      "request_duration_seconds",
				Help:      "Request/reply round-trip latency for subscribe/unsubscribe commands",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"component", "command"},
		),

		WSConnected: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "plotcore",
				Subsystem: "ws",
				Name:      "connected",
				Help:      "WebSocket connection status (0=disconnected, 1=connected)",
			},
			[]string{"component"},
		),
	}
}

// RecordComponentStatus updates a component's lifecycle status gauge.
func (c *Metrics) RecordComponentStatus(component string, status int) {
	c.ComponentStatus.WithLabelValues(component).Set(float64(status))
}

// RecordHealthStatus updates a component's health check status.
func (c *Metrics) RecordHealthStatus(component string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	c.HealthCheckStatus.WithLabelValues(component).Set(value)
}

// RecordError increments the error counter for a component and error class.
func (c *Metrics) RecordError(component, class string) {
	c.ErrorsTotal.WithLabelValues(component, class).Inc()
}

// RecordCSVRowsParsed adds to the rows-parsed counter for a CSV loader instance.
func (c *Metrics) RecordCSVRowsParsed(component string, rows int) {
	c.CSVRowsParsed.WithLabelValues(component).Add(float64(rows))
}

// RecordCSVWarning increments the warning counter for a parse warning code.
func (c *Metrics) RecordCSVWarning(component, code string) {
	c.CSVWarningsEmitted.WithLabelValues(component, code).Inc()
}

// RecordCSVParseDuration records how long a CSV parse took.
func (c *Metrics) RecordCSVParseDuration(component string, duration time.Duration) {
	c.CSVParseDuration.WithLabelValues(component).Observe(duration.Seconds())
}

// RecordWSMessageReceived increments the received-message counter by protocol message type.
func (c *Metrics) RecordWSMessageReceived(component, msgType string) {
	c.WSMessagesReceived.WithLabelValues(component, msgType).Inc()
}

// RecordWSFrameDecoded increments the frame-decode counter by outcome ("ok", "checksum_mismatch", "truncated").
func (c *Metrics) RecordWSFrameDecoded(component, outcome string) {
	c.WSFramesDecoded.WithLabelValues(component, outcome).Inc()
}

// RecordWSReconnect increments the reconnect-attempt counter.
func (c *Metrics) RecordWSReconnect(component string) {
	c.WSReconnects.WithLabelValues(component).Inc()
}

// RecordWSRequestLatency records round-trip latency for a request/reply command.
func (c *Metrics) RecordWSRequestLatency(component, command string, duration time.Duration) {
	c.WSRequestLatency.WithLabelValues(component, command).Observe(duration.Seconds())
}

// RecordWSConnected updates the WebSocket connection status gauge.
func (c *Metrics) RecordWSConnected(component string, connected bool) {
	value := 0.0
	if connected {
		value = 1.0
	}
	c.WSConnected.WithLabelValues(component).Set(value)
}
