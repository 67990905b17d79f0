package duckdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrInMemoryStore indicates the store uses an in-memory DB and cannot be snapshotted.
var ErrInMemoryStore = errors.New("duckdb: in-memory store cannot be snapshotted")

// SnapshotTo checkpoints the database and copies its file to dstPath. The
// checkpoint runs under the write lock; the copy does not.
func (s *Store) SnapshotTo(ctx context.Context, dstPath string) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	s.mu.Lock()
	dbPath := s.dbPath
	if dbPath == "" {
		s.mu.Unlock()
		return ErrInMemoryStore
	}
	qctx, cancel := s.queryCtx(ctx)
	_, err := s.db.ExecContext(qctx, "CHECKPOINT")
	cancel()
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}

	if err := copyFile(dbPath, dstPath); err != nil {
		return fmt.Errorf("copy duckdb file: %w", err)
	}
	return nil
}

// copyFile writes through a temp file so a partial copy is never visible.
func copyFile(srcPath, dstPath string) (err error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	tmp := dstPath + ".tmp"
	dst, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			dst.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = io.Copy(dst, src); err != nil {
		return err
	}
	if err = dst.Sync(); err != nil {
		return err
	}
	if err = dst.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, dstPath)
}
