package filter

import "github.com/five82/shelf/internal/wps"

// State is the complete set of search criteria. It is a value: every
// transition returns a new State and leaves the receiver untouched.
type State struct {
	QueryText  string
	Categories IDSet
	Colors     IDSet
	Sizes      IDSet
	MinPrice   Bound
	MaxPrice   Bound
	Page       int
	Endpoint   string
}

// DefaultState is the state at mount time for the given endpoint.
func DefaultState(endpoint string) State {
	return State{Page: 1, Endpoint: endpoint}
}

// Equal compares all tracked fields by value.
func (s State) Equal(other State) bool {
	return s.QueryText == other.QueryText &&
		s.Categories.Equal(other.Categories) &&
		s.Colors.Equal(other.Colors) &&
		s.Sizes.Equal(other.Sizes) &&
		s.MinPrice == other.MinPrice &&
		s.MaxPrice == other.MaxPrice &&
		s.Page == other.Page &&
		s.Endpoint == other.Endpoint
}

// WithQuery replaces the free-text query verbatim.
func (s State) WithQuery(text string) State {
	s.QueryText = text
	return s
}

// ToggleCategory deselects id when selected. Otherwise it selects id after
// clearing every selected ancestor and descendant, so the selection never
// holds two points of one hierarchy chain.
func (s State) ToggleCategory(id int, tree CategoryTree) State {
	if s.Categories.Has(id) {
		s.Categories = s.Categories.Without(id)
		return s
	}
	next := s.Categories
	for _, selected := range s.Categories.IDs() {
		if tree.Related(selected, id) {
			next = next.Without(selected)
		}
	}
	s.Categories = next.With(id)
	return s
}

// ToggleColor flips membership of a color term.
func (s State) ToggleColor(id int) State {
	s.Colors = s.Colors.Toggle(id)
	return s
}

// ToggleSize flips membership of a size term.
func (s State) ToggleSize(id int) State {
	s.Sizes = s.Sizes.Toggle(id)
	return s
}

// WithPrice applies the provided bounds, then clears the maximum when it is
// below the minimum. The minimum is never adjusted.
func (s State) WithPrice(update PriceUpdate) State {
	if update.Min != nil {
		s.MinPrice = ParseBound(*update.Min)
	}
	if update.Max != nil {
		s.MaxPrice = ParseBound(*update.Max)
	}
	if s.MinPrice.Set && s.MaxPrice.Set && s.MinPrice.Amount > s.MaxPrice.Amount {
		s.MaxPrice = Unset
	}
	return s
}

// WithPage replaces the page without clamping.
func (s State) WithPage(page int) State {
	s.Page = page
	return s
}

// WithEndpoint replaces the endpoint base URL verbatim.
func (s State) WithEndpoint(url string) State {
	s.Endpoint = url
	return s
}

// Reset clears the query, all selections and both bounds and returns to the
// first page. The endpoint is kept.
func (s State) Reset() State {
	return DefaultState(s.Endpoint)
}

// Query derives the structured shop request for this state.
func (s State) Query() wps.Query {
	q := wps.Query{
		Text:     s.QueryText,
		MinPrice: s.MinPrice.ptr(),
		MaxPrice: s.MaxPrice.ptr(),
		Page:     s.Page,
	}
	facets := []struct {
		taxonomy string
		ids      IDSet
	}{
		{wps.TaxonomyCategory, s.Categories},
		{wps.TaxonomyColor, s.Colors},
		{wps.TaxonomySize, s.Sizes},
	}
	for _, facet := range facets {
		if facet.ids.Len() == 0 {
			continue
		}
		q.Terms = append(q.Terms, wps.TermFilter{
			Taxonomy: facet.taxonomy,
			IDs:      facet.ids.IDs(),
			IDBy:     "id",
		})
	}
	if len(q.Terms) > 0 {
		q.Scope = wps.DefaultScope()
	}
	return q
}
