package kv

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// fileExt is appended to the key to form the file name.
const fileExt = ".json"

// File stores each key as <DataDir>/<key>.json. Writes use the temp-file,
// fsync, rename pattern so a crash never leaves a half-written document.
type File struct {
	mu      sync.RWMutex
	dataDir string
	closed  bool
	logger  *zap.Logger
}

// OpenFile creates dataDir if needed and returns a File backend rooted there.
// An empty dataDir means the current directory.
func OpenFile(dataDir string, logger *zap.Logger) (*File, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &File{dataDir: dataDir, logger: logger}, nil
}

// Path returns the file that holds key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dataDir, key+fileExt)
}

// Get reads the file for key.
func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return nil, types.ErrClosed
	}
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, types.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

// Put atomically replaces the file for key.
func (f *File) Put(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return types.ErrClosed
	}
	if err := writeFileAtomic(f.Path(key), value); err != nil {
		return err
	}
	f.logger.Debug("wrote key", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// Delete removes the file for key. A missing file is not an error.
func (f *File) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return types.ErrClosed
	}
	if err := os.Remove(f.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Close marks the backend closed. Idempotent.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// writeFileAtomic writes data to path using the temp-file, fsync, rename
// pattern.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".kv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing value: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
