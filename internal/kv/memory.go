package kv

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Memory is an in-process KV. Values are copied on the way in and out so
// callers cannot alias stored bytes.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemory returns an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, types.ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, types.ErrKeyNotFound
	}
	return copyBytes(v), nil
}

// Put stores value under key.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return types.ErrClosed
	}
	m.data[key] = copyBytes(value)
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return types.ErrClosed
	}
	delete(m.data, key)
	return nil
}

// Close marks the store closed. Idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
