package store

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/unicode/norm"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Search returns the records whose name, email or company contains term,
// ignoring case. A blank term returns every record. Order is insertion order.
func (s *Store) Search(term string) []types.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchLocked(term)
}

// Sort returns every record ordered by field using locale-aware collation of
// the lowercased values. Equal values keep insertion order in both
// directions. The backing sequence is not reordered.
func (s *Store) Sort(field types.SortField, dir types.Direction) ([]types.Entry, error) {
	if err := checkSort(field, dir); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entriesLocked()
	s.sortEntries(entries, field, dir)
	return entries, nil
}

// Query searches by f.Term and, when f.SortField is set, orders the matches.
// An empty direction sorts ascending.
func (s *Store) Query(f types.Filter) ([]types.Entry, error) {
	dir := f.Direction
	if dir == "" {
		dir = types.Ascending
	}
	if f.SortField != "" {
		if err := checkSort(f.SortField, dir); err != nil {
			return nil, err
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.searchLocked(f.Term)
	if f.SortField != "" {
		s.sortEntries(entries, f.SortField, dir)
	}
	return entries, nil
}

func checkSort(field types.SortField, dir types.Direction) error {
	if !field.Valid() {
		return &types.ValidationError{Field: "sort", Err: types.ErrInvalidSortField}
	}
	if !dir.Valid() {
		return &types.ValidationError{Field: "sort", Err: types.ErrInvalidDirection}
	}
	return nil
}

// entriesLocked returns every record tagged with its index.
// The caller must hold s.mu.
func (s *Store) entriesLocked() []types.Entry {
	entries := make([]types.Entry, len(s.records))
	for i, c := range s.records {
		entries[i] = types.Entry{Index: i, Customer: c}
	}
	return entries
}

func (s *Store) searchLocked(term string) []types.Entry {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.entriesLocked()
	}

	// A Caser keeps state between calls and must not be shared.
	fold := cases.Fold()
	key := func(v string) string { return fold.String(norm.NFC.String(v)) }
	needle := key(term)

	entries := make([]types.Entry, 0)
	for i, c := range s.records {
		if strings.Contains(key(c.Name), needle) ||
			strings.Contains(key(c.Email), needle) ||
			strings.Contains(key(c.Company), needle) {
			entries = append(entries, types.Entry{Index: i, Customer: c})
		}
	}
	return entries
}

// sortEntries orders entries in place by the lowercased field value.
func (s *Store) sortEntries(entries []types.Entry, field types.SortField, dir types.Direction) {
	col := collate.New(s.locale)
	lower := cases.Lower(s.locale)

	keys := make(map[int]string, len(entries))
	for _, e := range entries {
		v, _ := e.Customer.Value(field)
		keys[e.Index] = lower.String(v)
	}

	slices.SortStableFunc(entries, func(a, b types.Entry) int {
		c := col.CompareString(keys[a.Index], keys[b.Index])
		if dir == types.Descending {
			return -c
		}
		return c
	})
}
