// Command plotcore-csv parses a delimited text file and reports the
// resulting series and warnings, exercising the csvparse engine end to end.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/c360/plotcore/csvparse"
	"github.com/c360/plotcore/sink"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("plotcore-csv failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	path := flag.String("path", "", "path to the delimited text file")
	delimiter := flag.String("delimiter", "", "field delimiter; empty auto-detects")
	skipRows := flag.Int("skip-rows", 0, "leading lines to discard before the header")
	timeColumn := flag.Int("time-column", -1, "column index to use as the time axis; -1 uses the row index")
	combinedColumn := flag.Int("combined-column", -1, "index into the detected date+time pairs to use as the time axis")
	customTimeFormat := flag.String("time-format", "", "Go reference-time layout for the time column")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)})))

	if *path == "" {
		flag.Usage()
		return fmt.Errorf("plotcore-csv: -path is required")
	}

	file, err := os.Open(*path)
	if err != nil {
		return fmt.Errorf("plotcore-csv: opening %s: %w", *path, err)
	}
	defer file.Close()

	cfg := csvparse.DefaultConfig()
	if *delimiter != "" {
		cfg.Delimiter = (*delimiter)[0]
	}
	cfg.SkipRows = *skipRows
	cfg.TimeColumnIndex = *timeColumn
	cfg.CombinedColumnIndex = *combinedColumn
	cfg.CustomTimeFormat = *customTimeFormat

	result, err := csvparse.ParseCSV(file, cfg, nil)
	if err != nil {
		return fmt.Errorf("plotcore-csv: parse: %w", err)
	}

	memSink := sink.NewMemorySink()
	for i, col := range result.Columns {
		if _, isCombined := result.CombinedComponentIndices[i]; isCombined {
			continue
		}
		if len(col.Points) > 0 {
			series := memSink.AddNumeric(col.Name)
			for _, p := range col.Points {
				series.Push(p.Timestamp, p.Value)
			}
		}
		if len(col.Strs) > 0 {
			series := memSink.AddString(col.Name)
			for _, p := range col.Strs {
				series.Push(p.Timestamp, p.Value)
			}
		}
	}

	slog.Info("parse complete",
		"success", result.Success,
		"lines_processed", result.LinesProcessed,
		"lines_skipped", result.LinesSkipped,
		"warnings", len(result.Warnings),
		"non_monotonic", result.NonMonotonic)

	for _, w := range result.Warnings {
		slog.Warn(w.Detail, "kind", w.Kind.String(), "line", w.Line)
	}

	for _, name := range result.ColumnNames {
		if pts := memSink.Numeric(name); len(pts) > 0 {
			fmt.Printf("%s: %d numeric points\n", name, len(pts))
		}
		if pts := memSink.Strings(name); len(pts) > 0 {
			fmt.Printf("%s: %d string points\n", name, len(pts))
		}
	}

	if !result.Success {
		return fmt.Errorf("plotcore-csv: parse did not complete successfully")
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
