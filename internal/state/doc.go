// Package state provides thread-safe storage for the result data of a shelf session.
//
// # Overview
//
// The Store sits between the query synchronizer, whose request goroutines write
// results, and the views that render them. It holds exactly one Snapshot: the last
// applied shop response, the lifecycle of the most recent request and failure
// bookkeeping.
//
// # Request Lifecycle
//
// Every request carries a generation number issued by the synchronizer:
//
//	Begin(gen)                       idle/completed/... → in-flight
//	Complete(gen, resp, statusErr)   in-flight → completed (result replaced)
//	Fail(gen, err)                   in-flight → failed    (result kept)
//	Cancel(gen)                      in-flight → cancelled (result kept)
//
// Begin always wins: it makes gen the current generation. Complete, Fail and Cancel
// for any other generation are ignored, so a superseded request can never overwrite
// newer data even when its response arrives late.
//
// # Update Semantics
//
// Result data is replaced wholesale, never merged. A response applied best-effort
// despite a non-success status is stored together with its status error and counts
// as a failure for IsOffline. Cancellation is not a failure.
//
// # Concurrency Model
//
// Writes take the write lock; Snapshot takes the read lock and returns a deep copy,
// so views may hold and mutate snapshots freely.
package state
