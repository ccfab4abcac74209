// Package app provides the orchestration layer for shelf.
//
// # Overview
//
// This package is the composition root. It loads configuration and
// preferences, builds the logger, the response cache, the metrics recorder,
// the shop client, the result store and the query synchronizer, then hands
// them to either the TUI or the headless query.
//
// # Components
//
//   - app.go: Run, which starts the TUI and the optional metrics server
//   - query.go: Query, a one-shot search that prints a table, JSON or the URL
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read ~/.config/shelf/config.toml
//	       ├─────> prefs.Load()       Theme and layout preferences
//	       ├─────> logging.New()      zap logger writing to the log file
//	       ├─────> newRuntime()       cache, client, store, synchronizer
//	       ├─────> serveMetrics()     Prometheus endpoint (optional)
//	       └─────> ui.Run()           Start TUI (blocks)
//
//	Query():
//	  filter.Store ─> search.Synchronizer.Observe ─> Wait ─> state.Snapshot
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration file
//   - Metrics listener cannot bind
//   - The TUI fails to start
//
// Recoverable errors (logged):
//   - Unreadable preferences, which fall back to defaults
//   - Unreachable Redis, which falls back to the in-process cache
//   - Failed shop requests, which surface in the status line
//
// # Usage Example
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("shelf failed: %v", err)
//	}
package app
