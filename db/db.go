// Package db owns the Postgres connection pool and schema migrations.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // migrate postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // file:// migration source
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq" // database/sql driver used by migrate's postgres driver

	"github.com/user/signalforge-go/apperror"
	"github.com/user/signalforge-go/config"
)

// Pool is the subset of pgxpool.Pool the services depend on. It is satisfied
// by *pgxpool.Pool and by pgxmock.PgxPoolIface in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ Pool = (*pgxpool.Pool)(nil)

// NewPool creates and pings the application connection pool.
func NewPool(cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	dsn := cfg.DSN()

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pgxpool for database %s", cfg.DBName), err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to database %s", cfg.DBName), err)
	}

	return pool, nil
}

// RunMigrations applies all pending migrations from the given directory.
// A schema already at the latest version is not an error.
func RunMigrations(cfg *config.PoolConfig, dir string) error {
	m, err := migrate.New("file://"+dir, cfg.DSN())
	if err != nil {
		return apperror.NewDatabaseError("failed to initialize migrations", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewDatabaseError("failed to apply migrations", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
