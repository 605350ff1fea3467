package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// SQL stores keys as rows of a single kv table. It serves both the sqlite
// backend (modernc.org/sqlite, one file in DataDir) and the postgres backend.
type SQL struct {
	mu     sync.RWMutex
	db     *sqlx.DB
	closed bool
	logger *zap.Logger
	now    func() time.Time
}

// OpenSQLite opens (creating if needed) DataDir/rolodex.db.
func OpenSQLite(ctx context.Context, dataDir string, logger *zap.Logger) (*SQL, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	db, err := sqlx.Open("sqlite", filepath.Join(dataDir, sqliteFileName))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// SQLite supports a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return openSQL(ctx, db, createKVSQLite, logger)
}

// OpenPostgres connects to the database named by dsn.
func OpenPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*SQL, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	return openSQL(ctx, db, createKVPostgres, logger)
}

func openSQL(ctx context.Context, db *sqlx.DB, schema string, logger *zap.Logger) (*SQL, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQL{db: db, logger: logger, now: time.Now}, nil
}

// Get returns the value stored under key.
func (s *SQL) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrClosed
	}
	var value []byte
	err := s.db.GetContext(ctx, &value, s.db.Rebind(selectValue), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Put upserts the row for key.
func (s *SQL) Put(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrClosed
	}
	if value == nil {
		value = []byte{}
	}
	updatedAt := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(upsertValue), key, value, updatedAt); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	s.logger.Debug("wrote key", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// Delete removes the row for key.
func (s *SQL) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(deleteValue), key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection. Idempotent.
func (s *SQL) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
