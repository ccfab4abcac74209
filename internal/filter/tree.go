package filter

import (
	"slices"

	"github.com/five82/shelf/internal/wps"
)

// CategoryTree maps a term id to all of its ancestor ids, nearest first.
type CategoryTree map[int][]int

// BuildCategoryTree computes the ancestor closure of terms. Each pass extends
// every chain by the ancestors of its known ancestors; passes stop when nothing
// changes or after len(terms) passes, which bounds malformed cyclic input.
func BuildCategoryTree(terms []wps.Term) CategoryTree {
	tree := make(CategoryTree, len(terms))
	for _, term := range terms {
		if term.Parent == 0 || term.Parent == term.ID {
			tree[term.ID] = nil
			continue
		}
		tree[term.ID] = []int{term.Parent}
	}

	for pass := 0; pass < len(terms); pass++ {
		changed := false
		for id, ancestors := range tree {
			for i := 0; i < len(ancestors); i++ {
				for _, next := range tree[ancestors[i]] {
					if next == id || slices.Contains(ancestors, next) {
						continue
					}
					ancestors = append(ancestors, next)
					changed = true
				}
			}
			tree[id] = ancestors
		}
		if !changed {
			break
		}
	}
	return tree
}

// Ancestors returns the known ancestors of id.
func (t CategoryTree) Ancestors(id int) []int {
	return slices.Clone(t[id])
}

// HasAncestor reports whether ancestor is above id in the hierarchy.
func (t CategoryTree) HasAncestor(id, ancestor int) bool {
	return slices.Contains(t[id], ancestor)
}

// Depth is the number of ancestors of id.
func (t CategoryTree) Depth(id int) int {
	return len(t[id])
}

// Related reports whether a and b lie on one ancestor chain.
func (t CategoryTree) Related(a, b int) bool {
	return a == b || t.HasAncestor(a, b) || t.HasAncestor(b, a)
}
