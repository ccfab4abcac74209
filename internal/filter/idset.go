package filter

import "slices"

// IDSet is an immutable set of term ids kept in ascending order. The zero
// value is the empty set.
type IDSet struct {
	ids []int
}

// NewIDSet builds a set from ids, dropping duplicates.
func NewIDSet(ids ...int) IDSet {
	if len(ids) == 0 {
		return IDSet{}
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return IDSet{ids: slices.Compact(sorted)}
}

// Has reports membership.
func (s IDSet) Has(id int) bool {
	_, found := slices.BinarySearch(s.ids, id)
	return found
}

// With returns a set that also contains id.
func (s IDSet) With(id int) IDSet {
	pos, found := slices.BinarySearch(s.ids, id)
	if found {
		return s
	}
	out := make([]int, 0, len(s.ids)+1)
	out = append(out, s.ids[:pos]...)
	out = append(out, id)
	out = append(out, s.ids[pos:]...)
	return IDSet{ids: out}
}

// Without returns a set that does not contain id.
func (s IDSet) Without(id int) IDSet {
	pos, found := slices.BinarySearch(s.ids, id)
	if !found {
		return s
	}
	if len(s.ids) == 1 {
		return IDSet{}
	}
	out := make([]int, 0, len(s.ids)-1)
	out = append(out, s.ids[:pos]...)
	out = append(out, s.ids[pos+1:]...)
	return IDSet{ids: out}
}

// Toggle adds id when absent and removes it when present.
func (s IDSet) Toggle(id int) IDSet {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// Len returns the number of ids.
func (s IDSet) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the ids in ascending order.
func (s IDSet) IDs() []int {
	return slices.Clone(s.ids)
}

// Equal compares by membership.
func (s IDSet) Equal(other IDSet) bool {
	return slices.Equal(s.ids, other.ids)
}
