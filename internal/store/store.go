package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Operation names reported to the Observer.
const (
	OpAdd        = "add"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpBulkDelete = "bulk_delete"
	OpImport     = "import"
	OpLoad       = "load"
	OpPersist    = "persist"
)

// Store owns the ordered customer sequence and writes it through to a KV
// backend under types.KeyCustomers. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	kv      types.KV
	records []types.Customer

	logger   *zap.Logger
	now      func() time.Time
	observer Observer
	locale   language.Tag
}

// New returns an empty Store backed by kv. Call Load to read persisted data.
func New(kv types.KV, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		logger:   zap.NewNop(),
		now:      time.Now,
		observer: nopObserver{},
		locale:   language.Und,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open returns a Store backed by kv with persisted records loaded.
func Open(ctx context.Context, kv types.KV, opts ...Option) (*Store, error) {
	s := New(kv, opts...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory sequence with the persisted one. Missing or
// malformed data loads as an empty sequence; only backend failures are
// returned.
func (s *Store) Load(ctx context.Context) (err error) {
	defer func() { s.observer.ObserveOperation(OpLoad, err) }()

	data, err := s.kv.Get(ctx, types.KeyCustomers)
	var records []types.Customer
	switch {
	case errors.Is(err, types.ErrKeyNotFound):
		s.logger.Debug("no persisted customers, starting empty")
	case err != nil:
		return fmt.Errorf("load customers: %w", err)
	default:
		records, err = decodeCustomers(data)
		if err != nil {
			s.logger.Warn("persisted customers unreadable, starting empty", zap.Error(err))
			records = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.observer.ObserveRecords(len(records))
	s.logger.Debug("customers loaded", zap.Int("count", len(records)))
	return nil
}

// Persist writes the current sequence to the KV backend.
func (s *Store) Persist(ctx context.Context) (err error) {
	defer func() { s.observer.ObserveOperation(OpPersist, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, s.records)
}

// Add validates c and appends it stamped with the current time and the
// active status. Contact fields are stored trimmed. A validation failure
// leaves the store untouched.
func (s *Store) Add(ctx context.Context, c types.Customer) (err error) {
	defer func() { s.observer.ObserveOperation(OpAdd, err) }()

	c = c.Trimmed()
	if err := c.Validate(); err != nil {
		return err
	}
	c.CreatedAt = s.timestamp()
	c.Status = types.StatusActive

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.records), c)
	if err := s.commitLocked(ctx, next); err != nil {
		return err
	}
	s.logger.Info("customer added", zap.Int("index", len(next)-1), zap.String("name", c.Name))
	return nil
}

// Update validates c and replaces the record at index, keeping its position.
// A zero CreatedAt in c keeps the stored value. The saved record is always
// active.
func (s *Store) Update(ctx context.Context, index int, c types.Customer) (err error) {
	defer func() { s.observer.ObserveOperation(OpUpdate, err) }()

	c = c.Trimmed()
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndexLocked(index); err != nil {
		return err
	}
	prev := s.records[index]
	if c.CreatedAt.IsZero() {
		c.CreatedAt = prev.CreatedAt
	}
	c.Status = types.StatusActive

	next := slices.Clone(s.records)
	next[index] = c
	if err := s.commitLocked(ctx, next); err != nil {
		return err
	}
	s.logger.Info("customer updated", zap.Int("index", index), zap.String("name", c.Name))
	return nil
}

// Delete removes and returns the record at index.
func (s *Store) Delete(ctx context.Context, index int) (removed types.Customer, err error) {
	defer func() { s.observer.ObserveOperation(OpDelete, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndexLocked(index); err != nil {
		return types.Customer{}, err
	}
	removed = s.records[index]
	next := slices.Delete(slices.Clone(s.records), index, index+1)
	if err := s.commitLocked(ctx, next); err != nil {
		return types.Customer{}, err
	}
	s.logger.Info("customer deleted", zap.Int("index", index), zap.String("name", removed.Name))
	return removed, nil
}

// BulkDelete removes every record whose index is listed and returns how many
// were removed. Duplicate indices count once. If any index is out of range
// nothing is removed. Indices are removed highest first so earlier removals
// never shift the positions of later ones. An empty list is a no-op.
func (s *Store) BulkDelete(ctx context.Context, indices []int) (n int, err error) {
	defer func() { s.observer.ObserveOperation(OpBulkDelete, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int]bool, len(indices))
	unique := make([]int, 0, len(indices))
	for _, i := range indices {
		if err := s.checkIndexLocked(i); err != nil {
			return 0, err
		}
		if !seen[i] {
			seen[i] = true
			unique = append(unique, i)
		}
	}
	if len(unique) == 0 {
		return 0, nil
	}

	sort.Sort(sort.Reverse(sort.IntSlice(unique)))
	next := slices.Clone(s.records)
	for _, i := range unique {
		next = slices.Delete(next, i, i+1)
	}
	if err := s.commitLocked(ctx, next); err != nil {
		return 0, err
	}
	s.logger.Info("customers deleted", zap.Int("count", len(unique)), zap.Ints("indices", unique))
	return len(unique), nil
}

// Get returns the record at index.
func (s *Store) Get(index int) (types.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkIndexLocked(index); err != nil {
		return types.Customer{}, err
	}
	return s.records[index], nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// All returns a copy of the backing sequence in insertion order.
func (s *Store) All() []types.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Stats summarizes the store.
type Stats struct {
	Total           int `json:"total"`
	UniqueCompanies int `json:"unique_companies"`
}

// Stats returns the record count and the number of distinct company names.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	companies := make(map[string]struct{}, len(s.records))
	for _, c := range s.records {
		companies[c.Company] = struct{}{}
	}
	return Stats{Total: len(s.records), UniqueCompanies: len(companies)}
}

// checkIndexLocked returns an IndexError when index is outside the sequence.
// The caller must hold s.mu.
func (s *Store) checkIndexLocked(index int) error {
	if index < 0 || index >= len(s.records) {
		return &types.IndexError{Index: index, Len: len(s.records)}
	}
	return nil
}

// commitLocked persists next and, on success, makes it the backing sequence.
// The caller must hold the s.mu write lock.
func (s *Store) commitLocked(ctx context.Context, next []types.Customer) error {
	data, err := encodeCustomers(next, false)
	if err != nil {
		return fmt.Errorf("encode customers: %w", err)
	}
	start := s.now()
	if err := s.kv.Put(ctx, types.KeyCustomers, data); err != nil {
		return fmt.Errorf("persist customers: %w", err)
	}
	s.observer.ObservePersist(s.now().Sub(start))
	s.records = next
	s.observer.ObserveRecords(len(next))
	return nil
}

// timestamp returns the current time in UTC at millisecond precision, the
// resolution createdAt is serialized with.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
