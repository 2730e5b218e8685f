package wsstream

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360/plotcore/component"
	"github.com/c360/plotcore/errors"
	"github.com/c360/plotcore/metric"
	"github.com/c360/plotcore/pkg/buffer"
	"github.com/c360/plotcore/pkg/retry"
	"github.com/c360/plotcore/pkg/security"
	"github.com/c360/plotcore/pkg/tlsutil"
	"github.com/c360/plotcore/sink"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	topicRefreshInterval = time.Second
	heartbeatInterval    = time.Second
	handshakeTimeout     = 45 * time.Second
	frameQueueCapacity   = 256
	frameQueuePollPeriod = 10 * time.Millisecond
)

// Client is a long-lived WebSocket streaming session against a data source:
// it discovers topics, subscribes to a configured set, and decodes the
// resulting binary frames into a sink.PlotDataSink (spec §2, §4.8-§4.9).
type Client struct {
	name     string
	cfg      ClientConfig
	security security.Config
	sink     sink.PlotDataSink
	parsers  *ParserRegistry
	metrics  *metric.MetricsRegistry
	logger   *slog.Logger

	state *WsState

	parsersMu    sync.RWMutex
	topicParsers map[string]MessageParser

	// frameBuffer decouples the read loop (which must keep draining the
	// socket) from frame decode + parser dispatch, the same way the teacher
	// input component buffers envelopes ahead of processMessages.
	frameBuffer buffer.Buffer[[]byte]

	connMu  sync.Mutex
	conn    *websocket.Conn
	writeMu sync.Mutex

	pendingMu      sync.Mutex
	pendingCommand string
	pendingSentAt  time.Time

	reconnectAttempts atomic.Int32
	messagesReceived  atomic.Int64
	errorCount        atomic.Int64
	lastActivity      atomic.Value // time.Time

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}
	doneOnce     sync.Once
	started      atomic.Bool
	startTime    time.Time
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	lifecycleMu  sync.Mutex
	tlsCleanup   func()

	mu      sync.Mutex
	lastErr string
}

var (
	_ component.LifecycleComponent = (*Client)(nil)
	_ component.Discoverable       = (*Client)(nil)
)

// NewClient creates a WebSocket streaming client component. Sink may be nil,
// in which case a fresh sink.MemorySink is used. Parsers may be nil, in
// which case an empty registry is used: a subscribe response carrying
// schemas then fails to build parsers and the session is torn down, and
// blocks for topics without a parser are skipped without a log entry.
func NewClient(name string, cfg ClientConfig, s sink.PlotDataSink, parsers *ParserRegistry, deps component.Dependencies) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "Client", "NewClient", "url validation")
	}
	if s == nil {
		s = sink.NewMemorySink()
	}
	if parsers == nil {
		parsers = NewParserRegistry()
	}

	var bufferOpts []buffer.Option[[]byte]
	bufferOpts = append(bufferOpts, buffer.WithOverflowPolicy[[]byte](buffer.DropOldest))
	if deps.MetricsRegistry != nil {
		bufferOpts = append(bufferOpts, buffer.WithMetrics[[]byte](deps.MetricsRegistry, name))
	}
	frameBuffer, err := buffer.NewCircularBuffer(frameQueueCapacity, bufferOpts...)
	if err != nil {
		return nil, errors.WrapFatal(err, "Client", "NewClient", "create frame buffer")
	}

	return &Client{
		name:         name,
		cfg:          cfg,
		security:     deps.Security,
		sink:         s,
		parsers:      parsers,
		metrics:      deps.MetricsRegistry,
		logger:       deps.GetLoggerWithComponent(name),
		state:        NewWsState(),
		topicParsers: make(map[string]MessageParser),
		frameBuffer:  frameBuffer,
		shutdown:     make(chan struct{}),
		done:         make(chan struct{}),
	}, nil
}

// Meta implements component.Discoverable.
func (c *Client) Meta() component.Metadata {
	return component.Metadata{
		Name:        c.name,
		Type:        "ws-stream",
		Description: "WebSocket streaming client decoding binary frames into a PlotDataSink",
		Version:     "1.0.0",
	}
}

// ConfigSchema implements component.Discoverable.
func (c *Client) ConfigSchema() component.ConfigSchema {
	return wsClientSchema
}

// Health implements component.Discoverable.
func (c *Client) Health() component.HealthStatus {
	c.mu.Lock()
	lastErr := c.lastErr
	started := c.startTime
	c.mu.Unlock()

	c.connMu.Lock()
	connected := c.conn != nil
	c.connMu.Unlock()

	uptime := time.Duration(0)
	if c.started.Load() && !started.IsZero() {
		uptime = time.Since(started)
	}
	return component.HealthStatus{
		Healthy:    c.started.Load() && connected,
		LastCheck:  time.Now(),
		ErrorCount: int(c.errorCount.Load()),
		LastError:  lastErr,
		Uptime:     uptime,
	}
}

// DataFlow implements component.Discoverable.
func (c *Client) DataFlow() component.FlowMetrics {
	last, _ := c.lastActivity.Load().(time.Time)
	c.mu.Lock()
	started := c.startTime
	c.mu.Unlock()

	var rate float64
	if !started.IsZero() {
		if elapsed := time.Since(started).Seconds(); elapsed > 0 {
			rate = float64(c.messagesReceived.Load()) / elapsed
		}
	}
	return component.FlowMetrics{
		MessagesPerSecond: rate,
		LastActivity:      last,
	}
}

// Initialize implements component.LifecycleComponent. All setup happens in
// NewClient and Start.
func (c *Client) Initialize() error {
	return nil
}

// Start launches the dial/reconnect loop in a background goroutine (spec §4.9).
func (c *Client) Start(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if c.started.Load() {
		return errors.WrapFatal(errors.ErrAlreadyStarted, "Client", "Start", "lifecycle check")
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.connectLoop(runCtx)

	c.wg.Add(1)
	go c.processFrames(runCtx)

	c.mu.Lock()
	c.startTime = time.Now()
	c.mu.Unlock()
	c.started.Store(true)
	return nil
}

// Stop signals shutdown, closes the active connection, and waits up to
// timeout for the dial loop to exit.
func (c *Client) Stop(timeout time.Duration) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if !c.started.Load() {
		return nil
	}

	c.shutdownOnce.Do(func() { close(c.shutdown) })
	c.state.Close()
	if c.cancel != nil {
		c.cancel()
	}
	c.closeConn()

	doneCh := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(doneCh)
	}()

	select {
	case <-doneCh:
	case <-time.After(timeout):
		return errors.WrapTransient(fmt.Errorf("ws client did not stop within %s", timeout), "Client", "Stop", "graceful shutdown wait")
	}

	if c.tlsCleanup != nil {
		c.tlsCleanup()
	}
	_ = c.frameBuffer.Close()
	c.doneOnce.Do(func() { close(c.done) })
	c.started.Store(false)
	if c.metrics != nil {
		c.metrics.CoreMetrics().RecordWSConnected(c.name, false)
	}
	return nil
}

// connectLoop dials, runs the session to completion, and reconnects with
// exponential backoff until shutdown (grounded on the teacher's
// clientConnectLoop/shouldReconnect/calculateReconnectDelay idiom).
func (c *Client) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	dialer := &websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	if err := c.configureTLS(ctx, dialer); err != nil {
		c.recordFailure(err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.shutdown:
			return
		default:
		}

		// A handful of quick retries absorbs transient DNS/refused-connection
		// blips within one reconnect attempt; the outer loop's
		// shouldReconnect/calculateReconnectDelay backoff governs retries
		// across a fully torn-down session (spec §4.9).
		conn, err := retry.DoWithResult(ctx, retry.Quick(), func() (*websocket.Conn, error) {
			wsConn, _, dialErr := dialer.Dial(c.cfg.URL, nil)
			return wsConn, dialErr
		})
		if err != nil {
			c.trackError("connect_error")
			if !c.shouldReconnect() {
				return
			}
			time.Sleep(c.calculateReconnectDelay())
			continue
		}

		c.reconnectAttempts.Store(0)
		c.state.Reset()
		c.parsersMu.Lock()
		c.topicParsers = make(map[string]MessageParser)
		c.parsersMu.Unlock()

		c.connMu.Lock()
		c.conn = conn
		c.connMu.Unlock()
		if c.metrics != nil {
			c.metrics.CoreMetrics().RecordWSConnected(c.name, true)
		}

		if err := c.sendCommand(CommandGetTopics, ModeGetTopics, ModeGetTopics, nil); err != nil {
			c.logger.Warn("sending initial get_topics failed", "error", err)
		}

		sessionCtx, sessionCancel := context.WithCancel(ctx)
		c.wg.Add(1)
		go c.tickerLoop(sessionCtx)

		c.readLoop(conn)

		sessionCancel()
		c.closeConn()
		if c.metrics != nil {
			c.metrics.CoreMetrics().RecordWSConnected(c.name, false)
		}

		if !c.shouldReconnect() {
			return
		}
	}
}

func (c *Client) configureTLS(ctx context.Context, dialer *websocket.Dialer) error {
	clientTLS := c.security.TLS.Client
	if len(clientTLS.CAFiles) == 0 && !clientTLS.InsecureSkipVerify && clientTLS.MinVersion == "" &&
		!clientTLS.MTLS.Enabled && !(clientTLS.Mode == "acme" && clientTLS.ACME.Enabled) {
		return nil
	}

	var tlsConfig *tls.Config
	var err error
	if clientTLS.Mode == "acme" && clientTLS.ACME.Enabled {
		var cleanup func()
		tlsConfig, cleanup, err = tlsutil.LoadClientTLSConfigWithACME(ctx, clientTLS)
		if err != nil {
			return errors.WrapFatal(err, "Client", "configureTLS", "load ACME client TLS config")
		}
		c.tlsCleanup = cleanup
	} else {
		tlsConfig, err = tlsutil.LoadClientTLSConfigWithMTLS(clientTLS, clientTLS.MTLS)
		if err != nil {
			return errors.WrapFatal(err, "Client", "configureTLS", "load client TLS config")
		}
	}
	dialer.TLSClientConfig = tlsConfig
	return nil
}

// tickerLoop drives the 1Hz topic-refresh timer (GetTopics mode) and the
// 1Hz heartbeat (Data mode) for one connection's lifetime (spec §4.8).
func (c *Client) tickerLoop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.shutdown:
			return
		case <-ticker.C:
			switch c.state.Mode() {
			case ModeGetTopics:
				if !c.state.ReqInFlight() {
					if err := c.sendCommand(CommandGetTopics, ModeGetTopics, ModeGetTopics, nil); err != nil {
						c.logger.Warn("sending topic refresh failed", "error", err)
					}
				}
			case ModeData:
				if err := c.sendHeartbeat(); err != nil {
					c.logger.Warn("sending heartbeat failed", "error", err)
				}
			}
		}
	}
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		select {
		case <-c.shutdown:
			return
		default:
		}

		msgType, data, err := conn.ReadMessage()
		if err != nil {
			c.trackError("read_error")
			return
		}
		c.lastActivity.Store(time.Now())

		switch msgType {
		case websocket.TextMessage:
			c.handleControlMessage(data)
		case websocket.BinaryMessage:
			if err := c.frameBuffer.Write(data); err != nil {
				c.logger.Warn("dropping frame, buffer write failed", "error", err)
			}
		}
	}
}

// processFrames drains frameBuffer and decodes each frame, keeping decode +
// parser dispatch off the read loop so a slow parser never blocks socket
// reads (grounded on the teacher's processMessages/drainMessageQueue idiom).
// It runs for the component's lifetime, spanning reconnects.
func (c *Client) processFrames(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(frameQueuePollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.drainFrameBuffer()
			return
		case <-c.shutdown:
			c.drainFrameBuffer()
			return
		case <-ticker.C:
			for {
				raw, ok := c.frameBuffer.Read()
				if !ok {
					break
				}
				c.handleFrame(raw)
			}
		}
	}
}

// drainFrameBuffer processes whatever is left in frameBuffer on shutdown so a
// frame already accepted off the wire isn't silently lost.
func (c *Client) drainFrameBuffer() {
	for {
		raw, ok := c.frameBuffer.Read()
		if !ok {
			return
		}
		c.handleFrame(raw)
	}
}

func (c *Client) handleControlMessage(data []byte) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		c.logger.Warn("dropping malformed control message", "error", err)
		return
	}
	if resp.ProtocolVersion != ProtocolVersion {
		c.logger.Warn("dropping control message with unsupported protocol version", "version", resp.ProtocolVersion)
		return
	}
	if !c.state.AcceptsReply(resp.ID) {
		return
	}

	c.pendingMu.Lock()
	command := c.pendingCommand
	sentAt := c.pendingSentAt
	c.pendingMu.Unlock()

	if c.metrics != nil && !sentAt.IsZero() {
		c.metrics.CoreMetrics().RecordWSRequestLatency(c.name, command, time.Since(sentAt))
	}

	success := resp.Status == StatusSuccess
	if !success {
		c.logger.Warn("command failed", "command", command, "message", resp.Message)
		c.state.CompleteRequest(false)
		return
	}

	switch command {
	case CommandGetTopics:
		c.state.SetTopics(resp.Topics)
		c.state.CompleteRequest(true)
		c.maybeSubscribe()
	case CommandSubscribe:
		c.state.ApplySchemas(resp.Schemas)
		if err := c.buildParsers(resp.Schemas); err != nil {
			c.logger.Error("parser factory failed during subscribe, tearing down session", "error", err)
			c.state.CompleteRequest(true)
			c.closeConn()
			return
		}
		c.state.CompleteRequest(true)
	default:
		c.state.CompleteRequest(true)
	}
}

// maybeSubscribe sends "subscribe" for the configured topic set once topics
// have been discovered (spec §4.8: replaces the GUI's topic-selection step
// for a headless client).
func (c *Client) maybeSubscribe() {
	if len(c.cfg.Topics) == 0 {
		return
	}
	if c.state.Mode() != ModeGetTopics || c.state.ReqInFlight() {
		return
	}
	if err := c.sendCommand(CommandSubscribe, ModeSubscribe, ModeData, c.cfg.Topics); err != nil {
		c.logger.Warn("sending subscribe failed", "error", err)
	}
}

// Pause sends the "pause" command. Valid only from ModeData with no request
// in flight (spec §4.8); mode does not change on success (spec §6.3: "empty
// success").
func (c *Client) Pause() error {
	return c.sendDataCommand(CommandPause)
}

// Resume sends the "resume" command. Same preconditions as Pause.
func (c *Client) Resume() error {
	return c.sendDataCommand(CommandResume)
}

func (c *Client) sendDataCommand(command string) error {
	if mode := c.state.Mode(); mode != ModeData {
		return errors.WrapInvalid(fmt.Errorf("wsstream: %s requires Data mode, currently %s", command, mode), "Client", command, "mode check")
	}
	if c.state.ReqInFlight() {
		return errors.WrapInvalid(fmt.Errorf("wsstream: %s requires no request in flight", command), "Client", command, "in-flight check")
	}
	return c.sendCommand(command, ModeData, ModeData, nil)
}

func (c *Client) buildParsers(schemas map[string]Schema) error {
	built := make(map[string]MessageParser, len(schemas))
	for topic, schema := range schemas {
		parser, err := c.parsers.Build(schema, c.sink)
		if err != nil {
			return fmt.Errorf("building parser for topic %q: %w", topic, err)
		}
		built[topic] = parser
	}
	c.parsersMu.Lock()
	for topic, parser := range built {
		c.topicParsers[topic] = parser
	}
	c.parsersMu.Unlock()
	return nil
}

func (c *Client) handleFrame(raw []byte) {
	blocks, err := DecodeFrame(raw)
	if err != nil {
		if c.metrics != nil {
			c.metrics.CoreMetrics().RecordWSFrameDecoded(c.name, "truncated")
		}
		c.logger.Warn("dropping malformed frame", "error", err)
		return
	}
	if c.metrics != nil {
		c.metrics.CoreMetrics().RecordWSFrameDecoded(c.name, "ok")
	}

	for _, b := range blocks {
		c.messagesReceived.Add(1)
		if c.metrics != nil {
			c.metrics.CoreMetrics().RecordWSMessageReceived(c.name, b.TopicName)
		}

		c.parsersMu.RLock()
		parser, ok := c.topicParsers[b.TopicName]
		c.parsersMu.RUnlock()
		if !ok {
			continue
		}
		if err := parser.Parse(b.Data, b.TsSec); err != nil {
			c.trackError("parse_error")
			c.logger.Warn("parser returned error", "topic", b.TopicName, "error", err)
		}
	}
}

func (c *Client) sendCommand(command string, immediate, pending Mode, topics []string) error {
	id, err := c.state.BeginRequest(immediate, pending)
	if err != nil {
		return err
	}
	c.pendingMu.Lock()
	c.pendingCommand = command
	c.pendingSentAt = time.Now()
	c.pendingMu.Unlock()

	return c.writeJSON(Command{
		Command:         command,
		ID:              id,
		ProtocolVersion: ProtocolVersion,
		Topics:          topics,
	})
}

func (c *Client) sendHeartbeat() error {
	return c.writeJSON(Command{
		Command:         CommandHeartbeat,
		ID:              uuid.NewString(),
		ProtocolVersion: ProtocolVersion,
	})
}

func (c *Client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.connMu.Lock()
	conn := c.conn
	c.connMu.Unlock()
	if conn == nil {
		return errors.WrapTransient(errors.ErrNoConnection, "Client", "writeJSON", "no active connection")
	}
	return conn.WriteJSON(v)
}

func (c *Client) closeConn() {
	c.connMu.Lock()
	conn := c.conn
	c.conn = nil
	c.connMu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

func (c *Client) shouldReconnect() bool {
	cfg := c.cfg.Reconnect
	if cfg == nil || !cfg.Enabled {
		return false
	}
	current := c.reconnectAttempts.Load()
	if cfg.MaxRetries > 0 && int(current) >= cfg.MaxRetries {
		return false
	}
	c.reconnectAttempts.Add(1)
	if c.metrics != nil {
		c.metrics.CoreMetrics().RecordWSReconnect(c.name)
	}
	return true
}

func (c *Client) calculateReconnectDelay() time.Duration {
	cfg := c.cfg.Reconnect
	attempts := c.reconnectAttempts.Load()
	delay := cfg.InitialInterval
	for i := int32(0); i < attempts; i++ {
		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxInterval {
			return cfg.MaxInterval
		}
	}
	return delay
}

func (c *Client) trackError(kind string) {
	c.errorCount.Add(1)
	if c.metrics != nil {
		c.metrics.CoreMetrics().RecordError(c.name, kind)
	}
}

func (c *Client) recordFailure(err error) {
	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()
	c.logger.Error("ws client failed", "error", err)
	c.trackError("fatal")
	if c.metrics != nil {
		c.metrics.CoreMetrics().RecordHealthStatus(c.name, false)
	}
}
