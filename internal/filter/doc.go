// Package filter owns the search criteria of a shelf session.
//
// State is a value type holding the query text, the selected category, color and
// size term ids, the optional price bounds, the page and the endpoint base URL.
// Every operation is a pure transition from one State to the next; Store wraps the
// current State for the event loop and reports whether a transition changed it, so
// callers only refetch on real changes.
//
// Categories are hierarchical. CategoryTree maps each term to its ancestors and is
// rebuilt from scratch whenever fresh term data arrives. Selecting a category clears
// any selected ancestor or descendant of it.
//
// Nothing in this package fails: malformed price input becomes an unset bound, and a
// maximum below the minimum is dropped.
package filter
