package wsstream

import "time"

// ClientConfig configures one WebSocket streaming client (spec §2, §4.8).
type ClientConfig struct {
	URL       string           `json:"url"`
	Topics    []string         `json:"topics,omitempty"` // desired subscription set; empty means subscribe to none until reconfigured
	Reconnect *ReconnectConfig `json:"reconnect,omitempty"`
}

// ReconnectConfig controls the exponential-backoff reconnect loop (spec §4.9
// disconnect handling).
type ReconnectConfig struct {
	Enabled         bool          `json:"enabled"`
	MaxRetries      int           `json:"max_retries,omitempty"` // 0 means unlimited
	InitialInterval time.Duration `json:"initial_interval,omitempty"`
	MaxInterval     time.Duration `json:"max_interval,omitempty"`
	Multiplier      float64       `json:"multiplier,omitempty"`
}

// DefaultClientConfig returns a ClientConfig with reconnect enabled and the
// backoff schedule the teacher input component ships with (1s initial,
// 60s cap, doubling).
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Reconnect: &ReconnectConfig{
			Enabled:         true,
			MaxRetries:      0,
			InitialInterval: time.Second,
			MaxInterval:     60 * time.Second,
			Multiplier:      2.0,
		},
	}
}
