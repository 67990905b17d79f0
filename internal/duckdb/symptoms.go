package duckdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tinytelemetry/smileguide/internal/model"
)

// InsertSymptomLog records one tracker entry.
func (s *Store) InsertSymptomLog(ctx context.Context, l model.SymptomLog) error {
	symptoms, err := json.Marshal(l.Symptoms)
	if err != nil {
		return fmt.Errorf("duckdb: marshal symptoms: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO symptom_logs (id, user_id, logged_at, symptoms, severity, notes) VALUES (?, ?, ?, ?, ?, ?)",
		l.ID, l.UserID, l.LoggedAt.UTC(), string(symptoms), l.Severity, l.Notes)
	if err != nil {
		return fmt.Errorf("duckdb: insert symptom log: %w", err)
	}
	return nil
}

// SymptomLogs returns the user's most recent entries, oldest first.
func (s *Store) SymptomLogs(ctx context.Context, userID string, limit int) ([]model.SymptomLog, error) {
	if limit <= 0 {
		limit = model.DefaultSymptomLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, logged_at, symptoms, severity, notes FROM (
			SELECT * FROM symptom_logs WHERE user_id = ? ORDER BY logged_at DESC LIMIT ?
		) ORDER BY logged_at ASC`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("duckdb: symptom logs: %w", err)
	}
	defer rows.Close()

	var out []model.SymptomLog
	for rows.Next() {
		var l model.SymptomLog
		var symptoms string
		if err := rows.Scan(&l.ID, &l.UserID, &l.LoggedAt, &symptoms, &l.Severity, &l.Notes); err != nil {
			return nil, fmt.Errorf("duckdb: scan symptom log: %w", err)
		}
		if err := json.Unmarshal([]byte(symptoms), &l.Symptoms); err != nil {
			return nil, fmt.Errorf("duckdb: decode symptoms for %s: %w", l.ID, err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
