package wsstream

import (
	"fmt"

	"github.com/c360/plotcore/sink"
)

// MessageParser decodes one topic's opaque message bytes (CDR in current
// use) and appends the result into the sink it was built against. The
// concrete decode logic is a host-supplied external collaborator —
// plotcore's job is to hand it the right bytes at the right timestamp, not
// to understand the encoding (spec §9 design note, spec.md §1 Non-goals:
// message-schema parsing for third-party encodings is out of scope).
type MessageParser interface {
	Parse(data []byte, tsSec float64) error
}

// ParserFactory builds a MessageParser for one topic, given its schema
// definition string and the sink it should push decoded points into.
type ParserFactory func(schemaDefinition string, dest sink.PlotDataSink) (MessageParser, error)

// ParserRegistry is a lookup table keyed by schema encoding string
// (spec §9: "State exposed only to the factory for parsers"). Hosts
// register a factory per encoding they support before subscribing.
type ParserRegistry struct {
	factories map[string]ParserFactory
}

// NewParserRegistry creates an empty registry.
func NewParserRegistry() *ParserRegistry {
	return &ParserRegistry{factories: make(map[string]ParserFactory)}
}

// RegisterFactory associates a schema encoding (e.g. "cdr", "ros2msg") with
// a parser factory.
func (r *ParserRegistry) RegisterFactory(encoding string, factory ParserFactory) {
	r.factories[encoding] = factory
}

// Build creates a parser for a topic's schema, looking up the factory by
// encoding. Fatal per spec §7: a factory error during subscribe handling
// means the sink may be inconsistent for that topic, so the caller should
// tear the client down.
func (r *ParserRegistry) Build(schema Schema, dest sink.PlotDataSink) (MessageParser, error) {
	factory, ok := r.factories[schema.Encoding]
	if !ok {
		return nil, fmt.Errorf("wsstream: no parser factory registered for encoding %q", schema.Encoding)
	}
	return factory(schema.Definition, dest)
}
