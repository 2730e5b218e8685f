package wsstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWsState_NewStateIsGetTopics(t *testing.T) {
	s := NewWsState()
	assert.Equal(t, ModeGetTopics, s.Mode())
	assert.False(t, s.ReqInFlight())
}

func TestWsState_BeginRequestRejectsSecondInFlight(t *testing.T) {
	s := NewWsState()
	_, err := s.BeginRequest(ModeGetTopics, ModeGetTopics)
	require.NoError(t, err)

	_, err = s.BeginRequest(ModeGetTopics, ModeGetTopics)
	assert.Error(t, err)
}

func TestWsState_AcceptsReplyOnlyForPendingID(t *testing.T) {
	s := NewWsState()
	id, err := s.BeginRequest(ModeGetTopics, ModeGetTopics)
	require.NoError(t, err)

	assert.False(t, s.AcceptsReply("some-other-id"))
	assert.True(t, s.AcceptsReply(id))
}

func TestWsState_CompleteRequestSuccessTransitionsToPendingMode(t *testing.T) {
	s := NewWsState()
	_, err := s.BeginRequest(ModeSubscribe, ModeData)
	require.NoError(t, err)
	assert.Equal(t, ModeSubscribe, s.Mode(), "sending subscribe moves to ModeSubscribe immediately")

	s.CompleteRequest(true)
	assert.Equal(t, ModeData, s.Mode())
	assert.False(t, s.ReqInFlight())
}

func TestWsState_CompleteRequestFailureStaysInCurrentMode(t *testing.T) {
	s := NewWsState()
	_, err := s.BeginRequest(ModeSubscribe, ModeData)
	require.NoError(t, err)

	s.CompleteRequest(false)
	assert.Equal(t, ModeSubscribe, s.Mode(), "a failed reply clears in-flight state without transitioning")
	assert.False(t, s.ReqInFlight())
}

func TestWsState_SetTopicsPreservesSchemaOnRefresh(t *testing.T) {
	s := NewWsState()
	s.ApplySchemas(map[string]Schema{
		"/a": {Name: "A", Encoding: "cdr", Definition: "def"},
	})
	s.SetTopics([]TopicSummary{{Name: "/a", Type: "std_msgs/String"}, {Name: "/b", Type: "std_msgs/Int32"}})

	topics := s.Topics()
	byName := make(map[string]TopicInfo, len(topics))
	for _, t := range topics {
		byName[t.Name] = t
	}
	require.Contains(t, byName, "/a")
	assert.Equal(t, "cdr", byName["/a"].SchemaEncoding, "a rediscovered topic keeps its schema from an earlier subscribe")
	assert.Equal(t, "std_msgs/Int32", byName["/b"].Type)
}

func TestWsState_ResetClearsTopicsAndInFlight(t *testing.T) {
	s := NewWsState()
	s.SetTopics([]TopicSummary{{Name: "/a", Type: "x"}})
	_, err := s.BeginRequest(ModeSubscribe, ModeData)
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, ModeGetTopics, s.Mode())
	assert.False(t, s.ReqInFlight())
	assert.Empty(t, s.Topics())
}

func TestWsState_CloseTransitionsToModeClose(t *testing.T) {
	s := NewWsState()
	s.Close()
	assert.Equal(t, ModeClose, s.Mode())
	assert.False(t, s.ReqInFlight())
}
