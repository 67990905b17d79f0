// Package backup keeps rolling local copies of the SmileGuide database.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultInterval = 24 * time.Hour
	defaultKeepLast = 7
	filePrefix      = "smileguide-"
	fileSuffix      = ".duckdb"
)

// Config controls periodic database backups.
type Config struct {
	Enabled  bool
	Interval time.Duration
	Dir      string
	KeepLast int
}

// Snapshotter is the minimal DB snapshot contract used by Manager.
type Snapshotter interface {
	DBPath() string
	SnapshotTo(ctx context.Context, dstPath string) error
}

// Manager runs periodic local snapshots and prunes old copies.
type Manager struct {
	store Snapshotter
	cfg   Config
	log   *zap.Logger
	now   func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager validates cfg and prepares the backup directory. It returns nil
// when backups are disabled. Nothing is written until Start, which takes the
// first snapshot immediately and then one per interval.
func NewManager(store Snapshotter, cfg Config, log *zap.Logger) (*Manager, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if store == nil {
		return nil, errors.New("backup: nil snapshotter")
	}
	if strings.TrimSpace(store.DBPath()) == "" {
		return nil, errors.New("backup: db-path is empty (in-memory store)")
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, errors.New("backup: backup-dir is required when backups are enabled")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.KeepLast <= 0 {
		cfg.KeepLast = defaultKeepLast
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("backup: create backup-dir: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		store:  store,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Start takes a startup snapshot and then one per interval until Stop.
func (m *Manager) Start() {
	m.wg.Add(1)
	go m.loop()
}

func (m *Manager) loop() {
	defer m.wg.Done()

	if err := m.RunOnce(m.ctx); err != nil {
		m.log.Warn("backup: startup snapshot failed", zap.Error(err))
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := m.RunOnce(m.ctx); err != nil {
				m.log.Warn("backup: periodic snapshot failed", zap.Error(err))
			}
		case <-m.ctx.Done():
			return
		}
	}
}

// RunOnce creates one snapshot and prunes old copies.
func (m *Manager) RunOnce(ctx context.Context) error {
	name := filePrefix + m.now().UTC().Format("20060102-150405") + fileSuffix
	path := filepath.Join(m.cfg.Dir, name)

	if err := m.store.SnapshotTo(ctx, path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	m.log.Info("backup: created snapshot", zap.String("path", path))

	removed, err := pruneLocalBackups(m.cfg.Dir, m.cfg.KeepLast)
	if err != nil {
		return fmt.Errorf("prune backups: %w", err)
	}
	if removed > 0 {
		m.log.Debug("backup: pruned old snapshots", zap.Int("removed", removed))
	}
	return nil
}

// Stop cancels any in-flight snapshot and waits for the loop to exit.
func (m *Manager) Stop() {
	m.cancel()
	m.wg.Wait()
}

// pruneLocalBackups keeps the newest keepLast snapshots in dir.
func pruneLocalBackups(dir string, keepLast int) (int, error) {
	if keepLast <= 0 {
		return 0, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return 0, err
	}
	if len(matches) <= keepLast {
		return 0, nil
	}

	// timestamp is embedded in the filename, so lexical order is chronological
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))

	removed := 0
	for _, old := range matches[keepLast:] {
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
