// Package session drives a Store the way the customer screen does: it holds
// the view's search and sort, the row selection and the record being
// edited, and turns each Command into a Result carrying the refreshed rows
// and a user-facing Notice.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/rolodex/internal/store"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Session is safe for concurrent use; commands run one at a time.
type Session struct {
	mu        sync.Mutex
	store     *store.Store
	selection *store.Selection
	filter    types.Filter
	editing   int

	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source used to name exports.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Session over st with an unfiltered view and nothing selected.
func New(st *store.Store, opts ...Option) *Session {
	s := &Session{
		store:     st,
		selection: store.NewSelection(),
		editing:   -1,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Filter returns the current view filter.
func (s *Session) Filter() types.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Selected returns the selected indices in ascending order.
func (s *Session) Selected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Indices()
}

// Editing returns the index being edited, if any.
func (s *Session) Editing() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing, s.editing >= 0
}

// Dispatch runs cmd and returns its Result. Errors are reported in
// Result.Err and Result.Notice; Rows is always the current view.
func (s *Session) Dispatch(ctx context.Context, cmd Command) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := Result{ID: newID()}
	log := s.logger.With(zap.String("id", res.ID.String()), zap.String("command", cmd.Name()))

	s.run(ctx, cmd, &res)
	if res.Err != nil {
		res.Notice = noticeFor(res.Err)
		log.Debug("command failed", zap.Error(res.Err))
	} else {
		log.Debug("command done", zap.String("notice", res.Notice.Message))
	}

	rows, err := s.store.Query(s.filter)
	if err != nil {
		// The filter is only ever set after validation.
		log.Error("view query failed", zap.Error(err))
		rows = s.store.Search(s.filter.Term)
	}
	res.Rows = rows
	if res.Err == nil && res.Notice.Message == "" {
		res.Notice = s.viewNotice(rows)
	}
	return res
}

func (s *Session) run(ctx context.Context, cmd Command, res *Result) {
	switch c := cmd.(type) {
	case Add:
		if res.Err = s.store.Add(ctx, c.Customer); res.Err == nil {
			res.Notice = success(MsgSaved)
		}

	case Update:
		if res.Err = s.store.Update(ctx, c.Index, c.Customer); res.Err == nil {
			res.Notice = success(MsgSaved)
		}

	case Edit:
		rec, err := s.store.Get(c.Index)
		if res.Err = err; err == nil {
			s.editing = c.Index
			res.Record = &rec
			res.Notice = Notice{Level: LevelWarning, Message: editing(rec.Name)}
		}

	case CancelEdit:
		s.editing = -1
		res.Notice = Notice{Level: LevelInfo, Message: MsgEditCancelled}

	case Save:
		if s.editing >= 0 {
			res.Err = s.store.Update(ctx, s.editing, c.Customer)
		} else {
			res.Err = s.store.Add(ctx, c.Customer)
		}
		if res.Err == nil {
			s.editing = -1
			res.Notice = success(MsgSaved)
		}

	case Delete:
		removed, err := s.store.Delete(ctx, c.Index)
		if res.Err = err; err == nil {
			s.indicesShifted()
			res.Record = &removed
			res.Removed = 1
			res.Notice = success(deletedOne(removed.Name))
		}

	case View:
		rec, err := s.store.Get(c.Index)
		if res.Err = err; err == nil {
			res.Record = &rec
		}

	case Select:
		if res.Err = s.checkIndex(c.Index); res.Err == nil {
			s.selection.Set(c.Index, c.On)
		}

	case SelectAll:
		view, err := s.store.Query(s.filter)
		if res.Err = err; err == nil {
			s.selection.SelectAll(view, c.On)
		}

	case ClearSelection:
		s.selection.Clear()

	case BulkDelete:
		indices := s.selection.Indices()
		if len(indices) == 0 {
			res.Err = ErrNoSelection
			return
		}
		n, err := s.store.BulkDelete(ctx, indices)
		if res.Err = err; err == nil {
			s.indicesShifted()
			res.Removed = n
			res.Notice = success(deletedMany(n))
		}

	case Search:
		s.filter.Term = c.Term

	case Sort:
		res.Err = s.setSort(c)

	case Refresh:
		if res.Err = s.store.Load(ctx); res.Err == nil {
			s.indicesShifted()
			res.Notice = success(MsgRefreshed)
		}

	case Export:
		format := c.Format
		if format == "" {
			format = store.FormatJSON
		}
		data, err := s.store.Export(format)
		if res.Err = err; err == nil {
			res.Export = data
			res.FileName = store.ExportFileName(s.now(), format)
			res.Notice = success(MsgExported)
		}

	case Import:
		if c.Path != "" {
			res.Err = s.store.ImportFile(ctx, c.Path)
		} else {
			res.Err = s.store.ImportSnapshot(ctx, c.Data)
		}
		if res.Err == nil {
			s.indicesShifted()
			res.Notice = success(MsgImported)
		}

	case ToggleTheme:
		theme, err := s.store.ToggleTheme(ctx)
		if res.Err = err; err == nil {
			res.Theme = theme
			res.Notice = themeNotice(theme)
		}

	case SetTheme:
		if res.Err = s.store.SetTheme(ctx, c.Theme); res.Err == nil {
			res.Theme = c.Theme
			res.Notice = themeNotice(c.Theme)
		}

	default:
		res.Err = errors.New("unknown command " + cmd.Name())
	}
}

// indicesShifted drops state keyed by index after a mutation that moves rows.
func (s *Session) indicesShifted() {
	s.selection.Clear()
	s.editing = -1
}

func (s *Session) checkIndex(index int) error {
	if n := s.store.Len(); index < 0 || index >= n {
		return &types.IndexError{Index: index, Len: n}
	}
	return nil
}

func (s *Session) setSort(c Sort) error {
	if c.Field == "" {
		s.filter.SortField, s.filter.Direction = "", ""
		return nil
	}
	dir := c.Direction
	if dir == "" {
		dir = types.Ascending
	}
	if !c.Field.Valid() {
		return &types.ValidationError{Field: "sort", Err: types.ErrInvalidSortField}
	}
	if !dir.Valid() {
		return &types.ValidationError{Field: "sort", Err: types.ErrInvalidDirection}
	}
	s.filter.SortField, s.filter.Direction = c.Field, dir
	return nil
}

// viewNotice explains an empty view when the command itself had nothing to
// say.
func (s *Session) viewNotice(rows []types.Entry) Notice {
	switch {
	case len(rows) > 0:
		return Notice{}
	case s.store.Len() == 0:
		return Notice{Level: LevelInfo, Message: MsgEmpty}
	default:
		return Notice{Level: LevelWarning, Message: MsgNoMatches}
	}
}

// newID returns a time-ordered correlation ID.
func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
