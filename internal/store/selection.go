package store

import (
	"sort"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Selection is a set of indices into the store, used for bulk delete. It is
// never persisted. The zero value is not usable; call NewSelection.
type Selection struct {
	indices map[int]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{indices: make(map[int]struct{})}
}

// Add selects index.
func (s *Selection) Add(index int) { s.indices[index] = struct{}{} }

// Remove deselects index.
func (s *Selection) Remove(index int) { delete(s.indices, index) }

// Set selects or deselects index, the way a checkbox change does.
func (s *Selection) Set(index int, on bool) {
	if on {
		s.Add(index)
		return
	}
	s.Remove(index)
}

// Toggle flips index and reports whether it is now selected.
func (s *Selection) Toggle(index int) bool {
	if s.Has(index) {
		s.Remove(index)
		return false
	}
	s.Add(index)
	return true
}

// Has reports whether index is selected.
func (s *Selection) Has(index int) bool {
	_, ok := s.indices[index]
	return ok
}

// Len returns the number of selected indices.
func (s *Selection) Len() int { return len(s.indices) }

// Clear deselects everything.
func (s *Selection) Clear() { clear(s.indices) }

// SelectAll sets every row of a view to on.
func (s *Selection) SelectAll(entries []types.Entry, on bool) {
	for _, e := range entries {
		s.Set(e.Index, on)
	}
}

// Indices returns the selected indices in ascending order.
func (s *Selection) Indices() []int {
	out := make([]int, 0, len(s.indices))
	for i := range s.indices {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
