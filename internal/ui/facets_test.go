package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/shelf/internal/filter"
	"github.com/five82/shelf/internal/wps"
)

func facetResponse() wps.ShopResponse {
	return wps.ShopResponse{
		Terms: []wps.TermGroup{
			{Taxonomy: wps.TaxonomyCategory, Terms: []wps.Term{
				{ID: 1, Name: "Clothing", Count: 5},
				{ID: 2, Name: "Shirts", Parent: 1, Count: 3},
				{ID: 3, Name: "Archive", Count: 0},
				{ID: 4, Name: "Polos", Parent: 2, Count: 1},
			}},
			{Taxonomy: wps.TaxonomyColor, Terms: []wps.Term{
				{ID: 10, Name: "Red", Count: 2, Images: []wps.Image{{Src: "red.png"}}},
				{ID: 11, Name: "Blue", Count: 0},
			}},
			{Taxonomy: wps.TaxonomySize, Terms: []wps.Term{
				{ID: 20, Name: "M", Count: 4},
			}},
		},
	}
}

func TestCategoryRows_HidesEmptyIndentsAndMarksImplied(t *testing.T) {
	resp := facetResponse()
	tree := filter.BuildCategoryTree(resp.TermsFor(wps.TaxonomyCategory))

	rows := categoryRows(resp, tree, filter.NewIDSet(2))

	assert.Equal(t, []facetRow{
		{ID: 1, Name: "Clothing", Count: 5, Depth: 0},
		{ID: 2, Name: "Shirts", Count: 3, Depth: 1, Selected: true},
		{ID: 4, Name: "Polos", Count: 1, Depth: 2, Implied: true},
	}, rows)
}

func TestAttributeRows_KeepsEmptyTermsAndMarksSwatches(t *testing.T) {
	rows := attributeRows(facetResponse(), wps.TaxonomyColor, filter.NewIDSet(11))

	assert.Equal(t, []facetRow{
		{ID: 10, Name: "Red", Count: 2, Swatch: true},
		{ID: 11, Name: "Blue", Count: 0, Selected: true},
	}, rows)
	assert.Empty(t, attributeRows(facetResponse(), wps.TaxonomyTag, filter.IDSet{}))
}

func TestVisibleRange(t *testing.T) {
	cases := []struct {
		name               string
		n, cursor, height  int
		wantStart, wantEnd int
	}{
		{"fits", 3, 2, 5, 0, 3},
		{"top", 10, 0, 4, 0, 4},
		{"middle", 10, 5, 4, 3, 7},
		{"bottom", 10, 9, 4, 6, 10},
		{"no height", 10, 9, 0, 0, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := visibleRange(tc.n, tc.cursor, tc.height)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}

func TestPadBetween(t *testing.T) {
	assert.Equal(t, "Shirts     3", padBetween("Shirts", "3", 12))

	got := padBetween("A very long category name", "12", 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, " 12"))
	assert.Contains(t, got, "…")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", truncate("abc", 0))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "…", truncate("abc", 1))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}
