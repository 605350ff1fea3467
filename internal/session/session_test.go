package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/internal/kv"
	"github.com/mesh-intelligence/rolodex/internal/store"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func setupSession(t *testing.T, names ...string) *Session {
	t.Helper()
	ctx := context.Background()
	clock := func() time.Time { return fixedNow }
	st, err := store.Open(ctx, kv.NewMemory(), store.WithClock(clock))
	require.NoError(t, err)
	for _, n := range names {
		require.NoError(t, st.Add(ctx, types.Customer{
			Name: n, Email: n + "@example.com", Phone: "555-0100", Company: "Co " + n,
		}))
	}
	return New(st, WithClock(clock))
}

func rowNames(rows []types.Entry) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Customer.Name
	}
	return out
}

func TestDispatchAssignsTimeOrderedIDs(t *testing.T) {
	s := setupSession(t)
	ctx := context.Background()

	first := s.Dispatch(ctx, Refresh{})
	second := s.Dispatch(ctx, Refresh{})

	assert.Equal(t, uuid.Version(7), first.ID.Version())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAddNotices(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		customer types.Customer
		want     Notice
		rows     int
	}{
		{
			name:     "saved",
			customer: types.Customer{Name: "Ada", Email: "ada@example.com", Phone: "1", Company: "AE"},
			want:     Notice{Level: LevelSuccess, Message: MsgSaved},
			rows:     1,
		},
		{
			name:     "missing field",
			customer: types.Customer{Name: "Ada", Email: "ada@example.com", Phone: "", Company: "AE"},
			want:     Notice{Level: LevelError, Message: MsgMissingFields},
		},
		{
			name:     "invalid email",
			customer: types.Customer{Name: "Ada", Email: "foo@", Phone: "1", Company: "AE"},
			want:     Notice{Level: LevelError, Message: MsgInvalidEmail},
		},
		{
			name:     "unknown status",
			customer: types.Customer{Name: "Ada", Email: "ada@example.com", Phone: "1", Company: "AE", Status: "bogus"},
			want:     Notice{Level: LevelError, Message: MsgInvalidStatus},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupSession(t)
			res := s.Dispatch(ctx, Add{Customer: tt.customer})
			assert.Equal(t, tt.want, res.Notice)
			assert.Len(t, res.Rows, tt.rows)
		})
	}
}

func TestEditAndSave(t *testing.T) {
	ctx := context.Background()
	s := setupSession(t, "a", "b")

	res := s.Dispatch(ctx, Edit{Index: 1})
	require.NoError(t, res.Err)
	assert.Equal(t, Notice{Level: LevelWarning, Message: "Now editing customer: b"}, res.Notice)
	require.NotNil(t, res.Record)
	idx, ok := s.Editing()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	res = s.Dispatch(ctx, Save{Customer: types.Customer{Name: "B2", Email: "b2@example.com", Phone: "2", Company: "New"}})
	require.NoError(t, res.Err)
	assert.Equal(t, MsgSaved, res.Notice.Message)
	assert.Equal(t, []string{"a", "B2"}, rowNames(res.Rows))
	_, ok = s.Editing()
	assert.False(t, ok)

	res = s.Dispatch(ctx, Save{Customer: types.Customer{Name: "c", Email: "c@example.com", Phone: "3", Company: "C"}})
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"a", "B2", "c"}, rowNames(res.Rows))
}

func TestCancelEdit(t *testing.T) {
	ctx := context.Background()
	s := setupSession(t, "a")

	s.Dispatch(ctx, Edit{Index: 0})
	res := s.Dispatch(ctx, CancelEdit{})
	assert.Equal(t, LevelInfo, res.Notice.Level)
	_, ok := s.Editing()
	assert.False(t, ok)
}

func TestDeleteClearsIndexState(t *testing.T) {
	ctx := context.Background()
	s := setupSession(t, "a", "b", "c")

	s.Dispatch(ctx, Select{Index: 2, On: true})
	s.Dispatch(ctx, Edit{Index: 2})

	res := s.Dispatch(ctx, Delete{Index: 0})
	require.NoError(t, res.Err)
	assert.Equal(t, Notice{Level: LevelSuccess, Message: "Customer a deleted successfully"}, res.Notice)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, "a", res.Record.Name)
	assert.Empty(t, s.Selected())
	_, ok := s.Editing()
	assert.False(t, ok)
}

func TestDeleteOutOfRange(t *testing.T) {
	s := setupSession(t, "a")
	res := s.Dispatch(context.Background(), Delete{Index: 4})
	require.ErrorIs(t, res.Err, types.ErrIndexOutOfRange)
	assert.Equal(t, Notice{Level: LevelError, Message: MsgNotFound}, res.Notice)
	assert.Len(t, res.Rows, 1)
}

func TestBulkDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing selected", func(t *testing.T) {
		s := setupSession(t, "a")
		res := s.Dispatch(ctx, BulkDelete{})
		require.ErrorIs(t, res.Err, ErrNoSelection)
		assert.Equal(t, Notice{Level: LevelWarning, Message: MsgSelectToDelete}, res.Notice)
		assert.Len(t, res.Rows, 1)
	})

	t.Run("selected rows", func(t *testing.T) {
		s := setupSession(t, "a", "b", "c", "d", "e")
		s.Dispatch(ctx, Select{Index: 3, On: true})
		s.Dispatch(ctx, Select{Index: 1, On: true})
		s.Dispatch(ctx, Select{Index: 4, On: true})
		s.Dispatch(ctx, Select{Index: 4, On: false})
		assert.Equal(t, []int{1, 3}, s.Selected())

		res := s.Dispatch(ctx, BulkDelete{})
		require.NoError(t, res.Err)
		assert.Equal(t, 2, res.Removed)
		assert.Equal(t, Notice{Level: LevelSuccess, Message: "Deleted 2 customers successfully"}, res.Notice)
		assert.Equal(t, []string{"a", "c", "e"}, rowNames(res.Rows))
		assert.Empty(t, s.Selected())
	})

	t.Run("select all follows the filtered view", func(t *testing.T) {
		s := setupSession(t, "anna", "bob", "hannah")
		s.Dispatch(ctx, Search{Term: "nn"})
		s.Dispatch(ctx, SelectAll{On: true})
		assert.Equal(t, []int{0, 2}, s.Selected())

		res := s.Dispatch(ctx, BulkDelete{})
		require.NoError(t, res.Err)
		assert.Empty(t, res.Rows)
		assert.Equal(t, 2, res.Removed)

		res = s.Dispatch(ctx, Search{Term: ""})
		assert.Equal(t, []string{"bob"}, rowNames(res.Rows))
	})

	t.Run("select out of range", func(t *testing.T) {
		s := setupSession(t, "a")
		res := s.Dispatch(ctx, Select{Index: 1, On: true})
		require.ErrorIs(t, res.Err, types.ErrIndexOutOfRange)
		assert.Empty(t, s.Selected())
	})

	t.Run("clear selection", func(t *testing.T) {
		s := setupSession(t, "a", "b")
		s.Dispatch(ctx, SelectAll{On: true})
		s.Dispatch(ctx, ClearSelection{})
		assert.Empty(t, s.Selected())
	})
}

func TestSearchAndSortView(t *testing.T) {
	ctx := context.Background()
	s := setupSession(t, "carol", "Alice", "bob")

	res := s.Dispatch(ctx, Sort{Field: types.SortByName})
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"Alice", "bob", "carol"}, rowNames(res.Rows))
	assert.Equal(t, types.Ascending, s.Filter().Direction)

	res = s.Dispatch(ctx, Sort{Field: types.SortByName, Direction: types.Descending})
	assert.Equal(t, []string{"carol", "bob", "Alice"}, rowNames(res.Rows))

	res = s.Dispatch(ctx, Search{Term: "CAROL"})
	assert.Equal(t, []string{"carol"}, rowNames(res.Rows))

	res = s.Dispatch(ctx, Search{Term: "zzz"})
	assert.Empty(t, res.Rows)
	assert.Equal(t, Notice{Level: LevelWarning, Message: MsgNoMatches}, res.Notice)

	res = s.Dispatch(ctx, Sort{Field: "createdAt"})
	require.ErrorIs(t, res.Err, types.ErrInvalidSortField)
	assert.Equal(t, MsgInvalidSort, res.Notice.Message)
	assert.Equal(t, types.SortByName, s.Filter().SortField, "rejected sort keeps the previous order")

	s.Dispatch(ctx, Search{Term: ""})
	res = s.Dispatch(ctx, Sort{})
	assert.Equal(t, []string{"carol", "Alice", "bob"}, rowNames(res.Rows))
}

func TestEmptyStoreNotice(t *testing.T) {
	s := setupSession(t)
	res := s.Dispatch(context.Background(), View{Index: 0})
	require.ErrorIs(t, res.Err, types.ErrIndexOutOfRange)

	res = s.Dispatch(context.Background(), Search{Term: "x"})
	assert.Equal(t, Notice{Level: LevelInfo, Message: MsgEmpty}, res.Notice)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := setupSession(t, "a", "b")

	res := src.Dispatch(ctx, Export{})
	require.NoError(t, res.Err)
	assert.Equal(t, "crm-customers-2024-03-01.json", res.FileName)
	assert.Equal(t, MsgExported, res.Notice.Message)
	assert.Equal(t, byte('\n'), res.Export[len(res.Export)-1])

	dst := setupSession(t, "stale")
	dst.Dispatch(ctx, Select{Index: 0, On: true})
	res = dst.Dispatch(ctx, Import{Data: res.Export})
	require.NoError(t, res.Err)
	assert.Equal(t, Notice{Level: LevelSuccess, Message: MsgImported}, res.Notice)
	assert.Equal(t, []string{"a", "b"}, rowNames(res.Rows))
	assert.Empty(t, dst.Selected())

	res = dst.Dispatch(ctx, Import{Data: []byte(`{"a":1}`)})
	require.ErrorIs(t, res.Err, types.ErrNotAnArray)
	assert.Equal(t, Notice{Level: LevelError, Message: MsgImportFailed}, res.Notice)
	assert.Equal(t, []string{"a", "b"}, rowNames(res.Rows))

	csv := src.Dispatch(ctx, Export{Format: store.FormatCSV})
	require.NoError(t, csv.Err)
	assert.Equal(t, "crm-customers-2024-03-01.csv", csv.FileName)
}

func TestImportFromPath(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "customers.json")
	doc := `[{"name":"Ada","email":"ada@example.com","phone":"1","company":"AE","createdAt":"2024-01-01T00:00:00.000Z","status":"active"}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s := setupSession(t)
	res := s.Dispatch(ctx, Import{Path: path})
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"Ada"}, rowNames(res.Rows))

	res = s.Dispatch(ctx, Import{Path: filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorIs(t, res.Err, types.ErrUnreadableFile)
	assert.Equal(t, Notice{Level: LevelError, Message: MsgImportFailed}, res.Notice)
	assert.Equal(t, []string{"Ada"}, rowNames(res.Rows))
}

func TestRefreshReloads(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	st, err := store.Open(ctx, backend)
	require.NoError(t, err)
	s := New(st)

	other, err := store.Open(ctx, backend)
	require.NoError(t, err)
	require.NoError(t, other.Add(ctx, types.Customer{Name: "x", Email: "x@example.com", Phone: "1", Company: "X"}))

	res := s.Dispatch(ctx, Refresh{})
	require.NoError(t, res.Err)
	assert.Equal(t, Notice{Level: LevelSuccess, Message: MsgRefreshed}, res.Notice)
	assert.Equal(t, []string{"x"}, rowNames(res.Rows))
}

func TestToggleTheme(t *testing.T) {
	ctx := context.Background()
	s := setupSession(t)

	res := s.Dispatch(ctx, ToggleTheme{})
	require.NoError(t, res.Err)
	assert.Equal(t, types.ThemeDark, res.Theme)

	res = s.Dispatch(ctx, ToggleTheme{})
	assert.Equal(t, types.ThemeLight, res.Theme)
}

func TestSetTheme(t *testing.T) {
	ctx := context.Background()
	s := setupSession(t)

	res := s.Dispatch(ctx, SetTheme{Theme: types.ThemeDark})
	require.NoError(t, res.Err)
	assert.Equal(t, Notice{Level: LevelInfo, Message: "Switched to dark theme"}, res.Notice)

	res = s.Dispatch(ctx, SetTheme{Theme: "sepia"})
	require.ErrorIs(t, res.Err, types.ErrInvalidTheme)
	assert.Equal(t, LevelError, res.Notice.Level)
}
