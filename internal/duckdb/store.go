package duckdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/tinytelemetry/smileguide/internal/duckdb/migrate"
	"github.com/tinytelemetry/smileguide/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = model.ErrNotFound

// ErrDuplicate is returned when an insert would violate a uniqueness rule.
var ErrDuplicate = model.ErrDuplicate

// Store manages the DuckDB database connection and provides query methods.
// Writes are serialized with mu; DuckDB handles concurrent readers.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	dbPath       string
	QueryTimeout time.Duration
}

// NewStore opens or creates a DuckDB database.
// If dbPath is empty, an in-memory database is used.
// An optional queryTimeout can be passed; it defaults to 30s.
func NewStore(dbPath string, queryTimeout ...time.Duration) (*Store, error) {
	dsn := ""
	if dbPath != "" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		dsn = dbPath
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := migrate.NewRunner(db).Run(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	qt := 30 * time.Second
	if len(queryTimeout) > 0 && queryTimeout[0] > 0 {
		qt = queryTimeout[0]
	}

	return &Store{
		db:           db,
		dbPath:       dbPath,
		QueryTimeout: qt,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DBPath returns the configured DuckDB path. Empty means in-memory DB.
func (s *Store) DBPath() string {
	return s.dbPath
}

// SchemaStatus reports the applied schema version against the embedded one.
func (s *Store) SchemaStatus(ctx context.Context) (migrate.Status, error) {
	ctx, cancel := s.queryCtx(ctx)
	defer cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	return migrate.NewRunner(s.db).Status(ctx)
}

// queryCtx bounds ctx with the store's configured query timeout.
func (s *Store) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, s.QueryTimeout)
}
