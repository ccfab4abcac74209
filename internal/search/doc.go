// Package search keeps the result data in step with the filter state.
//
// # Overview
//
// The Synchronizer is the only writer of the state.Store. Views hand it every
// filter state they produce through Observe; it decides whether a request is
// needed, issues it against the shop endpoint and applies the outcome.
//
// # Data Flow
//
//	filter.Store ──State()──> Observe(st)
//	                             │ equal to last observed? → no request
//	                             │ cancel previous request context
//	                             │ generation++ ; store.Begin(gen, url)
//	                             └─> goroutine: Searcher.Search(ctx, url)
//	                                    │
//	                                    ├─ superseded or cancelled → store.Cancel
//	                                    ├─ response (maybe with status) → store.Complete
//	                                    └─ transport or decode error → store.Fail
//	                                    │
//	                                    └─> notify(snapshot)   UI sends it to tea.Program
//
// # Stale Responses
//
// Each request owns a generation number. A response is applied only while its
// generation is still the newest one and its context was not cancelled, so a
// slow answer to an older query can never replace newer results. Requests are
// never retried; the next state change issues the next request.
//
// # Logging
//
// Every request logger carries request_id (a UUID) and generation fields. Failures
// and error statuses log at warn, starts, completions and cancellations at debug.
//
// # Headless Use
//
// Wait blocks until the in-flight request has been applied, which is how the
// query command turns the asynchronous flow into a single call. Close cancels
// the in-flight request and waits for its goroutine.
package search
