package model

import (
	"context"
	"errors"
)

// ValueStore is the persistence gateway: named string values.
// GetValue reports found=false for a missing key without an error, and
// DeleteValue of a missing key is a no-op.
type ValueStore interface {
	GetValue(ctx context.Context, key string) (value string, found bool, err error)
	SetValue(ctx context.Context, key, value string) error
	DeleteValue(ctx context.Context, key string) error
}

// ImageGenerator turns a prompt into an image reference (a data URL).
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// UserStore persists registered users for the local identity provider.
type UserStore interface {
	CreateUser(ctx context.Context, u User, passwordHash string) error
	UserByEmail(ctx context.Context, email string) (User, string, error)
	UserByID(ctx context.Context, id string) (User, error)
}

// SymptomStore persists tracker entries.
type SymptomStore interface {
	InsertSymptomLog(ctx context.Context, l SymptomLog) error
	SymptomLogs(ctx context.Context, userID string, limit int) ([]SymptomLog, error)
}

// Sentinel errors shared by store implementations.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
