// Package kv implements the persisted key-value backends behind types.KV.
// The store keeps one JSON document per key; backends treat values as opaque
// bytes and differ only in where those bytes live.
package kv

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// keyPattern restricts keys to names that are safe as file names and SQL
// values on every backend.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// checkKey returns ErrInvalidKey for keys outside keyPattern.
func checkKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", types.ErrInvalidKey, key)
	}
	return nil
}

// Open validates cfg and returns the backend it names, ready for use.
// The caller must Close the returned KV.
func Open(ctx context.Context, cfg types.Config, logger *zap.Logger) (types.KV, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("backend", cfg.Backend))

	switch cfg.Backend {
	case types.BackendMemory:
		return NewMemory(), nil
	case types.BackendFile:
		return OpenFile(cfg.DataDir, logger)
	case types.BackendSQLite:
		return OpenSQLite(ctx, cfg.DataDir, logger)
	case types.BackendPostgres:
		return OpenPostgres(ctx, cfg.DSN, logger)
	case types.BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix, logger)
	default:
		return nil, types.ErrBackendUnknown
	}
}

func copyBytes(b []byte) []byte {
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp
}
