package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeSnapshotter struct {
	dbPath string
	data   []byte
	block  bool
}

func (f *fakeSnapshotter) DBPath() string { return f.dbPath }

func (f *fakeSnapshotter) SnapshotTo(ctx context.Context, dstPath string) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(dstPath, f.data, 0644)
}

func snapshots(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "smileguide-*.duckdb"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return files
}

func TestNewManager_Disabled(t *testing.T) {
	t.Parallel()

	m, err := NewManager(&fakeSnapshotter{dbPath: "/tmp/smileguide.duckdb"}, Config{}, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m != nil {
		t.Fatal("expected nil manager when disabled")
	}
}

func TestNewManager_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewManager(&fakeSnapshotter{}, Config{Enabled: true, Dir: t.TempDir()}, nil); err == nil {
		t.Error("in-memory store must be rejected")
	}
	if _, err := NewManager(&fakeSnapshotter{dbPath: "/tmp/smileguide.duckdb"}, Config{Enabled: true}, nil); err == nil {
		t.Error("missing dir must be rejected")
	}
}

func TestStart_TakesStartupSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m, err := NewManager(&fakeSnapshotter{dbPath: "/tmp/smileguide.duckdb", data: []byte("snapshot")},
		Config{Enabled: true, Dir: dir, Interval: time.Hour}, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if n := len(snapshots(t, dir)); n != 0 {
		t.Fatalf("NewManager wrote %d snapshots, want 0 before Start", n)
	}

	m.Start()
	defer m.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for len(snapshots(t, dir)) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no snapshot written after Start")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRunOnce_CreatesAndPrunesBackups(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m, err := NewManager(&fakeSnapshotter{dbPath: "/tmp/smileguide.duckdb", data: []byte("snapshot")},
		Config{Enabled: true, Dir: dir, KeepLast: 2}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		m.now = func() time.Time { return at }
		if err := m.RunOnce(context.Background()); err != nil {
			t.Fatalf("RunOnce #%d: %v", i, err)
		}
	}

	files := snapshots(t, dir)
	if len(files) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(files))
	}
	for _, f := range files {
		if strings.Contains(filepath.Base(f), "120000") {
			t.Errorf("oldest snapshot %s should be pruned", f)
		}
	}
}

func TestStop_CancelsInFlightSnapshot(t *testing.T) {
	t.Parallel()

	m, err := NewManager(&fakeSnapshotter{dbPath: "/tmp/smileguide.duckdb", block: true},
		Config{Enabled: true, Dir: t.TempDir(), Interval: time.Hour}, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m.Start()

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return; snapshot likely not canceled")
	}
}
