// Package logging builds the zap logger shared by shelf components.
//
// # Sinks
//
// The TUI owns the terminal, so interactive sessions log JSON with ISO8601
// timestamps to a file (default ~/.local/state/shelf/shelf.log). The headless
// query command passes an empty Path and gets console-encoded lines on stderr.
//
// # Levels
//
// Level accepts debug, info, warn and error. Anything else falls back to info
// rather than failing startup.
//
// # Naming
//
// The root logger is named "shelf"; components add their own names, for
// example the UI logs as "shelf.ui".
package logging
