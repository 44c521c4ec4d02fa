// Package storage is the durable store of scored items and generated
// digests.
//
// One query path serves two interchangeable backends: Postgres (networked)
// and SQLite (embedded single-file). SQL is built with squirrel so only the
// placeholder format differs per driver; both dialects accept
// ON CONFLICT ... DO NOTHING, which carries the idempotency contract.
// Nothing outside this package touches the underlying database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	_ "modernc.org/sqlite"             // pure-Go sqlite driver

	"github.com/ozytarget/newsdesk/internal/config"
	"github.com/ozytarget/newsdesk/migrations"
)

const (
	maxConnectRetries = 3
	connectRetrySleep = 2 * time.Second
)

// Store provides read/write access to persisted items and digests.
type Store struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	backend string
	logger  *zerolog.Logger
}

// Open connects to the configured backend and verifies connectivity.
// The caller selects the backend; the Store never branches on it outside
// of driver and dialect wiring.
func Open(ctx context.Context, backend, dsn string, logger *zerolog.Logger) (*Store, error) {
	driver, placeholder, err := driverFor(backend)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}

	if backend == config.BackendSQLite {
		// Single writer; the embedded store serializes access anyway and
		// this avoids SQLITE_BUSY under overlapping cycles.
		db.SetMaxOpenConns(1)
	}

	if err := pingWithRetries(ctx, db); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping %s store: %w", backend, err)
	}

	return &Store{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
		backend: backend,
		logger:  logger,
	}, nil
}

func driverFor(backend string) (driver string, placeholder sq.PlaceholderFormat, err error) {
	switch backend {
	case config.BackendPostgres:
		return "pgx", sq.Dollar, nil
	case config.BackendSQLite:
		return "sqlite", sq.Question, nil
	default:
		return "", nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func pingWithRetries(ctx context.Context, db *sql.DB) error {
	var err error

	for i := 0; i < maxConnectRetries; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(connectRetrySleep):
		}
	}

	return err
}

// Migrate applies the embedded goose migrations for the active backend.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	dialect := "postgres"
	dir := "postgres"

	if s.backend == config.BackendSQLite {
		dialect = "sqlite3"
		dir = "sqlite"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, dir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	s.logger.Info().Str("backend", s.backend).Msg("migrations applied")

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
