package kv

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Redis stores each key as a plain string value, optionally namespaced by
// prefix so several stores can share one server.
type Redis struct {
	client *redis.Client
	prefix string
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// OpenRedis connects to addr and verifies the connection.
func OpenRedis(ctx context.Context, addr, prefix string, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: client, prefix: prefix, logger: logger}, nil
}

func (r *Redis) keyName(key string) string {
	return r.prefix + key
}

// Get returns the value stored under key.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, types.ErrClosed
	}
	value, err := r.client.Get(ctx, r.keyName(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, types.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Put stores value under key with no expiry.
func (r *Redis) Put(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return types.ErrClosed
	}
	if err := r.client.Set(ctx, r.keyName(key), value, 0).Err(); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	r.logger.Debug("wrote key", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// Delete removes key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return types.ErrClosed
	}
	if err := r.client.Del(ctx, r.keyName(key)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close closes the client. Idempotent.
func (r *Redis) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.client.Close()
}
