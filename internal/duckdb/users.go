package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tinytelemetry/smileguide/internal/model"
)

// CreateUser inserts a user. Emails are unique case-insensitively.
func (s *Store) CreateUser(ctx context.Context, u model.User, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(u.Email))

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&count); err != nil {
		return fmt.Errorf("duckdb: check email: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: email %s", ErrDuplicate, email)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)",
		u.ID, u.Name, email, passwordHash, u.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("duckdb: insert user: %w", err)
	}
	return nil
}

// UserByEmail returns the user and its password hash.
func (s *Store) UserByEmail(ctx context.Context, email string) (model.User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var u model.User
	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, "", ErrNotFound
	}
	if err != nil {
		return model.User{}, "", fmt.Errorf("duckdb: user by email: %w", err)
	}
	return u, hash, nil
}

// UserByID returns a user by its ID.
func (s *Store) UserByID(ctx context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var u model.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM users WHERE id = ?", id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("duckdb: user by id: %w", err)
	}
	return u, nil
}
