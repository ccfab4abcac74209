package filter

import "github.com/five82/shelf/internal/wps"

// ResetSignal identifies a reset. Inputs remember the last signal they saw
// and clear themselves when the store reports a newer one.
type ResetSignal uint64

// Store holds the current State and the category tree derived from the last
// result data. It is owned by a single event loop and is not safe for
// concurrent use.
type Store struct {
	state  State
	tree   CategoryTree
	resets ResetSignal
}

// NewStore creates a store with default criteria for endpoint.
func NewStore(endpoint string) *Store {
	return &Store{state: DefaultState(endpoint), tree: CategoryTree{}}
}

// State returns the current criteria.
func (s *Store) State() State {
	return s.state
}

// Tree returns the category tree used for hierarchy exclusion.
func (s *Store) Tree() CategoryTree {
	return s.tree
}

// ResetSignal returns the signal of the most recent reset.
func (s *Store) ResetSignal() ResetSignal {
	return s.resets
}

// SetCategoryTerms rebuilds the category tree from a fresh term list.
func (s *Store) SetCategoryTerms(terms []wps.Term) {
	s.tree = BuildCategoryTree(terms)
}

// SetQuery replaces the query text. It reports whether the state changed.
func (s *Store) SetQuery(text string) bool {
	return s.apply(s.state.WithQuery(text))
}

// ToggleCategory toggles a category with hierarchy exclusion.
func (s *Store) ToggleCategory(id int) bool {
	return s.apply(s.state.ToggleCategory(id, s.tree))
}

// ToggleColor toggles a color term.
func (s *Store) ToggleColor(id int) bool {
	return s.apply(s.state.ToggleColor(id))
}

// ToggleSize toggles a size term.
func (s *Store) ToggleSize(id int) bool {
	return s.apply(s.state.ToggleSize(id))
}

// SetPrice applies a price update. Updates that leave both bounds as they
// were report false.
func (s *Store) SetPrice(update PriceUpdate) bool {
	return s.apply(s.state.WithPrice(update))
}

// SetPage replaces the current page.
func (s *Store) SetPage(page int) bool {
	return s.apply(s.state.WithPage(page))
}

// SetEndpointURL replaces the endpoint base URL.
func (s *Store) SetEndpointURL(url string) bool {
	return s.apply(s.state.WithEndpoint(url))
}

// Reset returns to the default criteria in one transition and issues a new
// ResetSignal, even when the criteria were already at their defaults, so
// inputs holding unsubmitted text still clear.
func (s *Store) Reset() ResetSignal {
	s.state = s.state.Reset()
	s.resets++
	return s.resets
}

func (s *Store) apply(next State) bool {
	if next.Equal(s.state) {
		return false
	}
	s.state = next
	return true
}
