package ui

import (
	"fmt"
	"strings"

	"github.com/five82/shelf/internal/filter"
	"github.com/five82/shelf/internal/wps"
)

// facetRow is one selectable term in a facet pane.
type facetRow struct {
	ID       int
	Name     string
	Count    int
	Depth    int
	Selected bool
	Implied  bool // an ancestor is selected
	Swatch   bool // term carries an image (color swatch)
}

// categoryRows lists categories in response order. Empty categories are
// hidden and children are indented by their ancestor count. Categories under
// a selected ancestor are marked implied.
func categoryRows(resp wps.ShopResponse, tree filter.CategoryTree, selected filter.IDSet) []facetRow {
	var rows []facetRow
	for _, term := range resp.TermsFor(wps.TaxonomyCategory) {
		if term.Count <= 0 {
			continue
		}
		rows = append(rows, facetRow{
			ID:       term.ID,
			Name:     term.Name,
			Count:    term.Count,
			Depth:    tree.Depth(term.ID),
			Selected: selected.Has(term.ID),
			Implied:  hasSelectedAncestor(tree, term.ID, selected),
		})
	}
	return rows
}

func hasSelectedAncestor(tree filter.CategoryTree, id int, selected filter.IDSet) bool {
	for _, ancestor := range tree.Ancestors(id) {
		if selected.Has(ancestor) {
			return true
		}
	}
	return false
}

// attributeRows lists the terms of a flat attribute taxonomy.
func attributeRows(resp wps.ShopResponse, taxonomy string, selected filter.IDSet) []facetRow {
	terms := resp.TermsFor(taxonomy)
	rows := make([]facetRow, 0, len(terms))
	for _, term := range terms {
		rows = append(rows, facetRow{
			ID:       term.ID,
			Name:     term.Name,
			Count:    term.Count,
			Selected: selected.Has(term.ID),
			Swatch:   len(term.Images) > 0,
		})
	}
	return rows
}

// facetRowsFor returns the rows shown in pane p.
func (m Model) facetRowsFor(p pane) []facetRow {
	if m.filters == nil {
		return nil
	}
	st := m.filters.State()
	resp := m.snapshot.Result
	switch p {
	case paneCategories:
		return categoryRows(resp, m.filters.Tree(), st.Categories)
	case paneColors:
		return attributeRows(resp, wps.TaxonomyColor, st.Colors)
	case paneSizes:
		return attributeRows(resp, wps.TaxonomySize, st.Sizes)
	default:
		return nil
	}
}

// toggleFacet toggles the term under the cursor of pane p and reports whether
// the filter state changed.
func (m *Model) toggleFacet(p pane) bool {
	rows := m.facetRowsFor(p)
	cursor := m.cursors[p]
	if cursor < 0 || cursor >= len(rows) {
		return false
	}
	id := rows[cursor].ID
	switch p {
	case paneCategories:
		return m.filters.ToggleCategory(id)
	case paneColors:
		return m.filters.ToggleColor(id)
	case paneSizes:
		return m.filters.ToggleSize(id)
	}
	return false
}

// renderFacet renders a facet pane body limited to height rows, keeping the
// cursor visible.
func (m Model) renderFacet(p pane, width, height int) string {
	styles := m.theme.Styles()
	rows := m.facetRowsFor(p)
	if len(rows) == 0 {
		return styles.FaintText.Render("no terms")
	}

	start, end := visibleRange(len(rows), m.cursors[p], height)
	focused := m.focus == p

	var b strings.Builder
	for i := start; i < end; i++ {
		row := rows[i]
		mark := "[ ]"
		switch {
		case row.Selected:
			mark = "[x]"
		case row.Implied:
			mark = "[~]"
		}
		name := row.Name
		if row.Swatch {
			name = "■ " + name
		}
		line := fmt.Sprintf("%s %s%s", mark, strings.Repeat("  ", row.Depth), name)
		count := fmt.Sprintf("%d", row.Count)
		line = padBetween(line, count, width)

		switch {
		case focused && i == m.cursors[p]:
			line = styles.Selected.Render(line)
		case row.Selected:
			line = styles.AccentText.Render(line)
		default:
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// visibleRange returns the window [start, end) of n rows that keeps cursor in
// view within height rows.
func visibleRange(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}

// padBetween places right at the end of a line of width cells, truncating
// left when they do not fit.
func padBetween(left, right string, width int) string {
	leftRunes := []rune(left)
	room := width - len([]rune(right)) - 1
	if room < 1 {
		return truncate(left, width)
	}
	if len(leftRunes) > room {
		left = truncate(left, room)
	}
	gap := width - len([]rune(left)) - len([]rune(right))
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 {
		return ""
	}
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
