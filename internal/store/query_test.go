package store

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/rolodex/internal/kv"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func TestSearch(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)
	require.NoError(t, s.Add(ctx, customer("Ada Lovelace", "ada@engines.org", "Analytical Engines")))
	require.NoError(t, s.Add(ctx, customer("Grace Hopper", "grace@navy.mil", "US Navy")))
	require.NoError(t, s.Add(ctx, customer("Alan Turing", "alan@bletchley.uk", "Bletchley Park")))

	tests := []struct {
		name      string
		term      string
		wantNames []string
		wantIdx   []int
	}{
		{"blank returns all", "", []string{"Ada Lovelace", "Grace Hopper", "Alan Turing"}, []int{0, 1, 2}},
		{"whitespace returns all", "   ", []string{"Ada Lovelace", "Grace Hopper", "Alan Turing"}, []int{0, 1, 2}},
		{"name match ignores case", "GRACE", []string{"Grace Hopper"}, []int{1}},
		{"email match", "bletchley.uk", []string{"Alan Turing"}, []int{2}},
		{"company match", "navy", []string{"Grace Hopper"}, []int{1}},
		{"substring across records keeps insertion order", "a", []string{"Ada Lovelace", "Grace Hopper", "Alan Turing"}, []int{0, 1, 2}},
		{"phone is not searched", "555", []string{}, []int{}},
		{"no match", "zzz", []string{}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Search(tt.term)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantNames, entryNames(got))
			idx := make([]int, len(got))
			for i, e := range got {
				idx[i] = e.Index
			}
			assert.Equal(t, tt.wantIdx, idx)
		})
	}
}

func TestSearchUnicode(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)
	require.NoError(t, s.Add(ctx, customer("Jürgen Straße", "j@example.de", "Müller GmbH")))

	assert.Len(t, s.Search("JÜRGEN"), 1)
	assert.Len(t, s.Search("GMBH"), 1)
	// Decomposed u + combining diaeresis matches the precomposed form.
	assert.Len(t, s.Search("mu\u0308ller"), 1)
}

func TestSearchDoesNotMutate(t *testing.T) {
	s, _ := setupStore(t)
	seed(t, s, "charlie", "alice", "bob")
	before := s.All()

	first := s.Search("li")
	second := s.Search("li")

	assert.Equal(t, first, second)
	assert.Equal(t, before, s.All())
}

func TestSort(t *testing.T) {
	ctx := context.Background()

	t.Run("ascending ignores case", func(t *testing.T) {
		s, _ := setupStore(t)
		seed(t, s, "bob", "Alice")

		got, err := s.Sort(types.SortByName, types.Ascending)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alice", "bob"}, entryNames(got))
		assert.Equal(t, 1, got[0].Index)
		assert.Equal(t, []string{"bob", "Alice"}, names(s.All()), "backing order unchanged")
	})

	t.Run("descending is the reverse for distinct keys", func(t *testing.T) {
		s, _ := setupStore(t)
		seed(t, s, "delta", "Alpha", "charlie", "Bravo")

		asc, err := s.Sort(types.SortByName, types.Ascending)
		require.NoError(t, err)
		desc, err := s.Sort(types.SortByName, types.Descending)
		require.NoError(t, err)

		reversed := slices.Clone(asc)
		slices.Reverse(reversed)
		assert.Equal(t, reversed, desc)
		assert.Equal(t, []string{"Alpha", "Bravo", "charlie", "delta"}, entryNames(asc))
	})

	t.Run("ties keep insertion order in both directions", func(t *testing.T) {
		s, _ := setupStore(t)
		require.NoError(t, s.Add(ctx, customer("first", "1@example.com", "Acme")))
		require.NoError(t, s.Add(ctx, customer("other", "2@example.com", "Zeta")))
		require.NoError(t, s.Add(ctx, customer("second", "3@example.com", "ACME")))

		asc, err := s.Sort(types.SortByCompany, types.Ascending)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second", "other"}, entryNames(asc))

		desc, err := s.Sort(types.SortByCompany, types.Descending)
		require.NoError(t, err)
		assert.Equal(t, []string{"other", "first", "second"}, entryNames(desc))
	})

	t.Run("by email and phone", func(t *testing.T) {
		s, _ := setupStore(t)
		require.NoError(t, s.Add(ctx, types.Customer{Name: "x", Email: "z@example.com", Phone: "2", Company: "Co"}))
		require.NoError(t, s.Add(ctx, types.Customer{Name: "y", Email: "a@example.com", Phone: "1", Company: "Co"}))

		byEmail, err := s.Sort(types.SortByEmail, types.Ascending)
		require.NoError(t, err)
		assert.Equal(t, []string{"y", "x"}, entryNames(byEmail))

		byPhone, err := s.Sort(types.SortByPhone, types.Descending)
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y"}, entryNames(byPhone))
	})

	t.Run("invalid field or direction", func(t *testing.T) {
		s, _ := setupStore(t)
		seed(t, s, "a")

		_, err := s.Sort("createdAt", types.Ascending)
		assert.ErrorIs(t, err, types.ErrInvalidSortField)
		_, err = s.Sort(types.SortByName, "up")
		assert.ErrorIs(t, err, types.ErrInvalidDirection)
	})

	t.Run("empty store", func(t *testing.T) {
		s, _ := setupStore(t)
		got, err := s.Sort(types.SortByName, types.Ascending)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("locale collation", func(t *testing.T) {
		s, err := Open(ctx, kv.NewMemory(), WithClock(fixedClock), WithLocale(language.Swedish))
		require.NoError(t, err)
		seed(t, s, "zeta", "åsa")

		got, err := s.Sort(types.SortByName, types.Ascending)
		require.NoError(t, err)
		// Swedish collates å after z.
		assert.Equal(t, []string{"zeta", "åsa"}, entryNames(got))
	})
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)
	require.NoError(t, s.Add(ctx, customer("Carol", "carol@acme.com", "Acme")))
	require.NoError(t, s.Add(ctx, customer("alice", "alice@acme.com", "Acme")))
	require.NoError(t, s.Add(ctx, customer("Bob", "bob@globex.com", "Globex")))

	got, err := s.Query(types.Filter{Term: "acme", SortField: types.SortByName})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "Carol"}, entryNames(got))
	assert.Equal(t, []int{1, 0}, []int{got[0].Index, got[1].Index})

	got, err = s.Query(types.Filter{Term: "acme"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carol", "alice"}, entryNames(got))

	got, err = s.Query(types.Filter{SortField: types.SortByName, Direction: types.Descending})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carol", "Bob", "alice"}, entryNames(got))

	_, err = s.Query(types.Filter{SortField: "status"})
	assert.ErrorIs(t, err, types.ErrInvalidSortField)
}
