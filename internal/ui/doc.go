// Package ui provides the Bubble Tea storefront for shelf.
//
// # Layout
//
// The header shows the request state and the shop endpoint. Below it sit the
// search and price inputs, then the facet column (categories, colors, sizes)
// beside the product list, and a status line with "Showing N of M", the
// freshness of the data and the last error.
//
// # Data Flow
//
//  1. Keys and debounced input values mutate the filter.Store.
//  2. Every mutation that changes the state is handed to the Synchronizer.
//  3. The synchronizer notifies through tea.Program.Send with a resultMsg.
//  4. The model applies the snapshot and rebuilds the category tree from the
//     returned category terms.
//
// Text inputs never touch the filter store directly. Their values pass through
// a debouncer (query and prices share one delay, the endpoint uses a longer
// one) and come back as fieldMsg values tagged with the reset signal they
// were typed under, so a value typed before a reset is discarded.
//
// # Key Bindings
//
//   - tab/shift+tab: Cycle panes
//   - /: Focus search, E: edit endpoint
//   - j/k, g/G: Move within a list
//   - space: Toggle the term under the cursor
//   - enter: Open product detail, or apply an input immediately
//   - [ and ]: Previous/next page
//   - r: Reset filters
//   - c: Compact product list, T: cycle theme
//   - ?: Help, q or ctrl+c: Quit
package ui
