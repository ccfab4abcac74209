// Package debounce delays propagation of rapidly changing input until it pauses.
//
// # Overview
//
// A Debouncer holds the last value pushed to it and delivers it once no newer
// value has arrived for the configured delay (trailing edge). The TUI uses one
// per text input: search and price inputs settle after 500ms, the endpoint
// input after 1s.
//
//	Push("s") Push("sh") Push("shi") ──delay──> fn("shi")
//
// # Cancellation
//
// Cancel drops the pending value, Stop drops it and ignores later pushes. A
// timer that already fired but lost the race with Push, Cancel or Stop sees a
// newer sequence number and does nothing.
//
// # Zero Delay
//
// A zero delay calls fn synchronously inside Push. Callers running inside an
// event loop must not let fn block on that same loop.
package debounce
