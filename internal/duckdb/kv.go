package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetValue reads a named value. A missing key reports found=false.
func (s *Store) GetValue(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("duckdb: get %q: %w", key, err)
	}
	return value, true, nil
}

// SetValue writes a named value, replacing any previous one.
func (s *Store) SetValue(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("duckdb: set %q: %w", key, err)
	}
	return nil
}

// DeleteValue removes a named value. Deleting a missing key is not an error.
func (s *Store) DeleteValue(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("duckdb: delete %q: %w", key, err)
	}
	return nil
}
