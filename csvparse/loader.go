package csvparse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360/plotcore/component"
	"github.com/c360/plotcore/errors"
	"github.com/c360/plotcore/metric"
	"github.com/c360/plotcore/sink"
)

// LoaderConfig configures one CSV loader component instance.
type LoaderConfig struct {
	Path                string `json:"path"`
	Delimiter           string `json:"delimiter,omitempty"` // single byte; empty means auto-detect
	SkipRows            int    `json:"skip_rows,omitempty"`
	TimeColumnIndex     int    `json:"time_column_index,omitempty"`
	CombinedColumnIndex int    `json:"combined_column_index,omitempty"`
	CustomTimeFormat    string `json:"custom_time_format,omitempty"`
}

// DefaultLoaderConfig returns a LoaderConfig with row-index timestamps and
// delimiter auto-detection.
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		TimeColumnIndex:     -1,
		CombinedColumnIndex: -1,
	}
}

func (c LoaderConfig) toParseConfig() CsvParseConfig {
	cfg := DefaultConfig()
	if c.Delimiter != "" {
		cfg.Delimiter = c.Delimiter[0]
	}
	cfg.SkipRows = c.SkipRows
	cfg.TimeColumnIndex = c.TimeColumnIndex
	cfg.CombinedColumnIndex = c.CombinedColumnIndex
	cfg.CustomTimeFormat = c.CustomTimeFormat
	return cfg
}

// Loader is a component.LifecycleComponent wrapping a single bounded,
// run-to-completion CSV parse. Start launches the parse in a goroutine (so
// Start itself returns promptly, matching the lifecycle contract); the parse
// drains its result into Sink as it completes.
type Loader struct {
	name    string
	cfg     LoaderConfig
	sink    sink.PlotDataSink
	metrics *metric.MetricsRegistry
	logger  *slog.Logger

	mu          sync.Mutex
	started     bool
	done        bool
	startTime   time.Time
	result      *CsvParseResult
	lastErr     string
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	rowsParsed  atomic.Int64
	warnCount   atomic.Int64
}

// NewLoader creates a CSV loader component. Sink may be nil, in which case a
// fresh sink.MemorySink is used.
func NewLoader(name string, cfg LoaderConfig, s sink.PlotDataSink, deps component.Dependencies) (*Loader, error) {
	if cfg.Path == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "Loader", "NewLoader", "path validation")
	}
	if s == nil {
		s = sink.NewMemorySink()
	}
	return &Loader{
		name:    name,
		cfg:     cfg,
		sink:    s,
		metrics: deps.MetricsRegistry,
		logger:  deps.GetLoggerWithComponent(name),
	}, nil
}

// Meta implements component.Discoverable.
func (l *Loader) Meta() component.Metadata {
	return component.Metadata{
		Name:        l.name,
		Type:        "csv-loader",
		Description: "Bounded, run-to-completion CSV parse into a PlotDataSink",
		Version:     "1.0.0",
	}
}

// ConfigSchema implements component.Discoverable.
func (l *Loader) ConfigSchema() component.ConfigSchema {
	return csvLoaderSchema
}

// Health implements component.Discoverable.
func (l *Loader) Health() component.HealthStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	healthy := l.started
	if l.done && l.result != nil {
		healthy = l.result.Success
	}
	uptime := time.Duration(0)
	if l.started && !l.startTime.IsZero() {
		uptime = time.Since(l.startTime)
	}
	return component.HealthStatus{
		Healthy:    healthy,
		LastCheck:  time.Now(),
		ErrorCount: int(l.warnCount.Load()),
		LastError:  l.lastErr,
		Uptime:     uptime,
	}
}

// DataFlow implements component.Discoverable.
func (l *Loader) DataFlow() component.FlowMetrics {
	rows := l.rowsParsed.Load()
	var rowsPerSecond float64
	l.mu.Lock()
	started := l.startTime
	l.mu.Unlock()
	if !started.IsZero() {
		elapsed := time.Since(started).Seconds()
		if elapsed > 0 {
			rowsPerSecond = float64(rows) / elapsed
		}
	}
	return component.FlowMetrics{
		MessagesPerSecond: rowsPerSecond,
		LastActivity:      time.Now(),
	}
}

// Initialize implements component.LifecycleComponent. The CSV loader has no
// setup beyond what NewLoader already did.
func (l *Loader) Initialize() error {
	return nil
}

// Start launches the bounded parse in a background goroutine (spec §5: the
// row loop is single-threaded and cooperative; running it off the calling
// goroutine lets Start return promptly per the lifecycle contract).
func (l *Loader) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return errors.WrapFatal(errors.ErrAlreadyStarted, "Loader", "Start", "lifecycle check")
	}
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.started = true
	l.startTime = time.Now()
	l.mu.Unlock()

	l.wg.Add(1)
	go l.run(runCtx)
	return nil
}

// Stop cancels an in-progress parse (the row loop checks cancellation at its
// progress-callback boundary) and waits up to timeout for it to finish.
func (l *Loader) Stop(timeout time.Duration) error {
	l.mu.Lock()
	if !l.started {
		l.mu.Unlock()
		return nil
	}
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	doneCh := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(doneCh)
	}()
	select {
	case <-doneCh:
		return nil
	case <-time.After(timeout):
		return errors.WrapTransient(fmt.Errorf("csv loader did not stop within %s", timeout), "Loader", "Stop", "graceful shutdown wait")
	}
}

func (l *Loader) run(ctx context.Context) {
	defer l.wg.Done()

	start := time.Now()
	file, err := os.Open(l.cfg.Path)
	if err != nil {
		l.recordFailure(errors.WrapInvalid(err, "Loader", "run", "opening CSV file"))
		return
	}
	defer file.Close()

	progress := func(current, total int) bool {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	}

	result, err := ParseCSV(file, l.cfg.toParseConfig(), progress)
	if err != nil {
		l.recordFailure(errors.WrapInvalid(err, "Loader", "run", "CSV parse"))
		return
	}

	drainResult(result, l.sink)

	l.mu.Lock()
	l.done = true
	l.result = result
	if !result.Success {
		l.lastErr = "parse did not complete successfully"
	}
	l.mu.Unlock()

	l.rowsParsed.Store(int64(result.LinesProcessed))
	l.warnCount.Store(int64(len(result.Warnings)))

	if l.metrics != nil {
		core := l.metrics.CoreMetrics()
		core.RecordCSVRowsParsed(l.name, result.LinesProcessed)
		core.RecordCSVParseDuration(l.name, time.Since(start))
		for _, w := range result.Warnings {
			core.RecordCSVWarning(l.name, w.Kind.String())
		}
		status := 0
		if result.Success {
			status = 2
		}
		core.RecordComponentStatus(l.name, status)
		core.RecordHealthStatus(l.name, result.Success)
	}
}

func (l *Loader) recordFailure(err error) {
	l.mu.Lock()
	l.done = true
	l.lastErr = err.Error()
	l.mu.Unlock()
	l.logger.Error("csv loader failed", "error", err)
	if l.metrics != nil {
		l.metrics.CoreMetrics().RecordError(l.name, "invalid")
		l.metrics.CoreMetrics().RecordHealthStatus(l.name, false)
	}
}

// drainResult appends every column's points into the sink, in the order
// they were recorded — the CSV result owns its buffers until this point
// (spec §3 Ownership).
func drainResult(result *CsvParseResult, s sink.PlotDataSink) {
	for i, col := range result.Columns {
		if _, isCombined := result.CombinedComponentIndices[i]; isCombined {
			continue
		}
		if len(col.Points) > 0 {
			series := s.AddNumeric(col.Name)
			for _, p := range col.Points {
				series.Push(p.Timestamp, p.Value)
			}
		}
		if len(col.Strs) > 0 {
			series := s.AddString(col.Name)
			for _, p := range col.Strs {
				series.Push(p.Timestamp, p.Value)
			}
		}
	}
}
