// Package config persists the two documents a plotcore host application
// needs across restarts:
//
//   - Defaults: durable connection and display preferences (last address,
//     port, subscribed topics, CSV delimiter choice, time axis, custom time
//     format), shared across all projects.
//   - SessionState: an opaque, per-project JSON blob the host owns and
//     plotcore merely round-trips — layout, open panes, whatever the caller
//     needs restored when a project is reopened.
//
// # Usage
//
//	store, err := config.NewStore("/var/lib/plotcore")
//	defaults, err := store.LoadDefaults()
//	safe := config.NewSafeConfig(defaults)
//
//	// later, after the operator changes the port:
//	current := safe.Get()
//	current.Port = 9443
//	if err := safe.Update(current); err != nil { ... }
//	if err := store.SaveDefaults(safe.Get()); err != nil { ... }
//
// SafeConfig guards an in-memory Defaults value for concurrent access from
// multiple goroutines (e.g. a WebSocket session goroutine reading the
// current port while an HTTP handler updates it). Store is the disk-backed
// counterpart used at startup/shutdown and on explicit save.
package config
