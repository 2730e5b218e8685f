package wsstream

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Mode is one of the four WsState modes (spec §3, §4.8).
type Mode int

const (
	ModeGetTopics Mode = iota
	ModeSubscribe
	ModeData
	ModeClose
)

func (m Mode) String() string {
	switch m {
	case ModeGetTopics:
		return "GetTopics"
	case ModeSubscribe:
		return "Subscribe"
	case ModeData:
		return "Data"
	case ModeClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// WsState tracks the client's protocol mode and in-flight request pairing
// (spec §3). At most one request may be in flight at any time; while
// req_in_flight, only a response whose id matches pending_request_id is
// accepted.
type WsState struct {
	mu              sync.Mutex
	mode            Mode
	reqInFlight     bool
	pendingRequestID string
	pendingMode     Mode
	topics          map[string]*TopicInfo
}

// NewWsState creates a fresh state machine in ModeGetTopics, matching the
// state a client is reset to on connect (spec §4.8).
func NewWsState() *WsState {
	return &WsState{
		mode:   ModeGetTopics,
		topics: make(map[string]*TopicInfo),
	}
}

// Mode returns the current protocol mode.
func (s *WsState) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// BeginRequest marks a new request in flight and returns the freshly
// generated request id to send. immediateMode is applied to the state
// machine right away — e.g. sending "subscribe" moves mode to
// ModeSubscribe before any response arrives (spec §4.8). pendingMode is
// applied only on a successful reply (e.g. ModeData once subscribe
// succeeds); it equals immediateMode for commands that don't change mode
// on success (get_topics, pause, resume). Returns an error if a request is
// already in flight (spec §3 invariant).
func (s *WsState) BeginRequest(immediateMode, pendingMode Mode) (id string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reqInFlight {
		return "", fmt.Errorf("wsstream: request already in flight (pending id %s)", s.pendingRequestID)
	}
	id = uuid.NewString()
	s.reqInFlight = true
	s.pendingRequestID = id
	s.pendingMode = pendingMode
	s.mode = immediateMode
	return id, nil
}

// AcceptsReply reports whether a reply with the given id should be processed
// (spec §3 invariant: replies whose id differs from pending_request_id have
// no observable effect).
func (s *WsState) AcceptsReply(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reqInFlight && id == s.pendingRequestID
}

// CompleteRequest clears in-flight state. If success is true and the pending
// mode differs from the current mode, the state transitions to it
// (spec §4.8: "status==success triggers the transition bound to
// pending_mode"). An error-status reply clears in-flight state without a
// transition.
func (s *WsState) CompleteRequest(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.reqInFlight {
		return
	}
	s.reqInFlight = false
	s.pendingRequestID = ""
	if success {
		s.mode = s.pendingMode
	}
}

// ReqInFlight reports whether a request is currently outstanding.
func (s *WsState) ReqInFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reqInFlight
}

// SetTopics replaces the discovered topic list (spec §4.8 get_topics
// response handling).
func (s *WsState) SetTopics(topics []TopicSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := make(map[string]*TopicInfo, len(topics))
	for _, t := range topics {
		existing, ok := s.topics[t.Name]
		if ok {
			existing.Type = t.Type
			fresh[t.Name] = existing
			continue
		}
		fresh[t.Name] = &TopicInfo{Name: t.Name, Type: t.Type}
	}
	s.topics = fresh
}

// Topics returns a snapshot of the current topic table.
func (s *WsState) Topics() []TopicInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TopicInfo, 0, len(s.topics))
	for _, t := range s.topics {
		out = append(out, *t)
	}
	return out
}

// ApplySchemas fills in schema fields for subscribed topics from a
// successful subscribe response (spec §4.8).
func (s *WsState) ApplySchemas(schemas map[string]Schema) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, schema := range schemas {
		t, ok := s.topics[name]
		if !ok {
			t = &TopicInfo{Name: name}
			s.topics[name] = t
		}
		t.SchemaName = schema.Name
		t.SchemaEncoding = schema.Encoding
		t.SchemaDefinition = schema.Definition
	}
}

// Reset returns the state machine to ModeGetTopics with no pending request
// and an empty topic table (spec §3: "Reset on connect/disconnect").
func (s *WsState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeGetTopics
	s.reqInFlight = false
	s.pendingRequestID = ""
	s.topics = make(map[string]*TopicInfo)
}

// Close transitions to ModeClose (spec §4.8: disconnect or shutdown).
func (s *WsState) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeClose
	s.reqInFlight = false
	s.pendingRequestID = ""
}
