package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Theme returns the stored theme preference, or DefaultTheme when none is
// stored or the stored value is not a known theme.
func (s *Store) Theme(ctx context.Context) (types.Theme, error) {
	data, err := s.kv.Get(ctx, types.KeyTheme)
	if errors.Is(err, types.ErrKeyNotFound) {
		return types.DefaultTheme, nil
	}
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Bare strings are accepted too.
		raw = strings.TrimSpace(string(data))
	}
	theme := types.Theme(raw)
	if !theme.Valid() {
		s.logger.Warn("stored theme unknown, using default", zap.String("theme", raw))
		return types.DefaultTheme, nil
	}
	return theme, nil
}

// SetTheme stores theme.
func (s *Store) SetTheme(ctx context.Context, theme types.Theme) error {
	if !theme.Valid() {
		return &types.ValidationError{Field: types.KeyTheme, Err: types.ErrInvalidTheme}
	}
	data, err := json.Marshal(string(theme))
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, types.KeyTheme, data); err != nil {
		return fmt.Errorf("persist theme: %w", err)
	}
	return nil
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) (types.Theme, error) {
	current, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := current.Toggled()
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}
