// Package wsstream implements the WebSocket streaming client: a long-lived
// session that discovers topics, subscribes to a configured set, and decodes
// ZSTD-compressed binary frames into a sink.PlotDataSink.
//
// The protocol is two-layered (spec §3, §6.3-§6.4):
//
//   - A JSON control channel (get_topics/subscribe/pause/resume/heartbeat),
//     modeled by WsState as a four-mode machine (GetTopics, Subscribe, Data,
//     Close) with at most one request in flight at a time.
//   - A binary data channel: each WebSocket binary message is one frame —
//     a 16-byte header (magic "PJRB", message count, uncompressed size,
//     flags) followed by a ZSTD payload of concatenated
//     {name, log_time_ns, data} blocks, decoded by DecodeFrame.
//
// Message-schema decoding (CDR or otherwise) is deliberately out of scope:
// Client dispatches each block's bytes to a MessageParser built by a
// host-registered ParserFactory, keyed by the topic's schema encoding. Call
// Parsers().RegisterFactory before starting any Client so subscribe
// responses can build one.
//
// Client implements component.Discoverable and component.LifecycleComponent
// the same way csvparse.Loader does, reconnecting with exponential backoff
// on disconnect (spec §4.9).
package wsstream
