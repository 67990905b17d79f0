package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var files embed.FS

// Runner brings a SmileGuide database up to the embedded schema.
// Schema files are named NNN_description.sql; NNN is the version.
type Runner struct{ db *sql.DB }

// NewRunner returns a runner bound to db.
func NewRunner(db *sql.DB) *Runner {
	return &Runner{db: db}
}

// Status describes where a database sits relative to the embedded schema.
type Status struct {
	Current int // highest applied version, 0 for a fresh database
	Latest  int // highest embedded version
	Pending int // embedded versions above Current
}

// UpToDate reports whether every embedded version has been applied.
func (s Status) UpToDate() bool { return s.Pending == 0 }

type step struct {
	version int
	file    string
	body    string
}

func steps() ([]step, error) {
	entries, err := fs.ReadDir(files, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrate: list schema files: %w", err)
	}

	out := make([]step, 0, len(entries))
	seen := make(map[int]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".sql" {
			continue
		}
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migrate: %s: missing version prefix", name)
		}
		v, err := strconv.Atoi(prefix)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("migrate: %s: bad version %q", name, prefix)
		}
		if prev, dup := seen[v]; dup {
			return nil, fmt.Errorf("migrate: %s and %s share version %d", prev, name, v)
		}
		seen[v] = name

		body, err := files.ReadFile(path.Join("migrations", name))
		if err != nil {
			return nil, fmt.Errorf("migrate: read %s: %w", name, err)
		}
		out = append(out, step{version: v, file: name, body: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

const ledgerDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       VARCHAR NOT NULL,
	applied_at TIMESTAMP DEFAULT current_timestamp
)`

func (r *Runner) current(ctx context.Context) (int, error) {
	if _, err := r.db.ExecContext(ctx, ledgerDDL); err != nil {
		return 0, fmt.Errorf("migrate: create ledger: %w", err)
	}
	var v sql.NullInt64
	if err := r.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&v); err != nil {
		return 0, fmt.Errorf("migrate: read ledger: %w", err)
	}
	return int(v.Int64), nil
}

// Run applies every pending schema file in version order and reports how
// many were applied. Each file commits together with its ledger row.
func (r *Runner) Run(ctx context.Context) (int, error) {
	all, err := steps()
	if err != nil {
		return 0, err
	}
	cur, err := r.current(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, s := range all {
		if s.version <= cur {
			continue
		}
		if err := r.apply(ctx, s); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func (r *Runner) apply(ctx context.Context, s step) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: %s: begin: %w", s.file, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, s.body); err != nil {
		return fmt.Errorf("migrate: %s: %w", s.file, err)
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, name) VALUES (?, ?)", s.version, s.file); err != nil {
		return fmt.Errorf("migrate: %s: record: %w", s.file, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("migrate: %s: commit: %w", s.file, err)
	}
	return nil
}

// Status reports the applied and embedded versions without changing the schema
// beyond creating the ledger table.
func (r *Runner) Status(ctx context.Context) (Status, error) {
	all, err := steps()
	if err != nil {
		return Status{}, err
	}
	cur, err := r.current(ctx)
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: cur}
	for _, s := range all {
		if s.version > st.Latest {
			st.Latest = s.version
		}
		if s.version > cur {
			st.Pending++
		}
	}
	return st, nil
}
