// Command plotcore-wsclient connects to a WebSocket streaming data source,
// discovers topics, subscribes to the requested set, and reports decoded
// frame activity, exercising wsstream.Client end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/c360/plotcore/component"
	"github.com/c360/plotcore/componentregistry"
	"github.com/c360/plotcore/metric"
	"github.com/c360/plotcore/sink"
	"github.com/c360/plotcore/wsstream"
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
		slog.Error("plotcore-wsclient failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	url := flag.String("url", "", "WebSocket server URL to connect to")
	topics := flag.String("topics", "", "comma-separated topic names to subscribe to once discovered")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)})))

	if *url == "" {
		flag.Usage()
		return fmt.Errorf("plotcore-wsclient: -url is required")
	}

	var topicList []string
	if *topics != "" {
		topicList = strings.Split(*topics, ",")
	}

	cfg := wsstream.DefaultClientConfig()
	cfg.URL = *url
	cfg.Topics = topicList

	memSink := sink.NewMemorySink()
	client, err := wsstream.NewClient("plotcore-wsclient", cfg, memSink, wsstream.Parsers(), component.Dependencies{
		MetricsRegistry: metric.NewMetricsRegistry(),
		Logger:          slog.Default(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := componentregistry.NewManager()
	if err := manager.Add("wsclient", client); err != nil {
		return err
	}
	if err := manager.Initialize("wsclient"); err != nil {
		return err
	}
	if err := manager.Start(ctx, "wsclient"); err != nil {
		return err
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return manager.StopAll(5 * time.Second)
		case <-ticker.C:
			flow := client.DataFlow()
			health := client.Health()
			slog.Info("status",
				"healthy", health.Healthy,
				"messages_per_second", flow.MessagesPerSecond,
				"last_activity", flow.LastActivity)
		}
	}
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
