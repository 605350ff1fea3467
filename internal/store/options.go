package store

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Observer receives operation outcomes. The metrics package implements it.
type Observer interface {
	ObserveOperation(op string, err error)
	ObserveRecords(n int)
	ObservePersist(d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, error) {}
func (nopObserver) ObserveRecords(int)             {}
func (nopObserver) ObservePersist(time.Duration)   {}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source used to stamp createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithObserver sets the operation observer.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithLocale sets the collation and case-mapping locale for Sort and Search.
// The default is the root locale.
func WithLocale(tag language.Tag) Option {
	return func(s *Store) {
		s.locale = tag
	}
}
