// Package store is the data access layer for teams and games. It runs
// parameterized SQL over a pgx connection pool and maps rows to models.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// DBTX is what queries run against: the pool or a transaction.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Pool is the subset of *pgxpool.Pool the store owns.
type Pool interface {
	DBTX
	Ping(ctx context.Context) error
	Close()
}

// Store implements team and game data access operations
type Store struct {
	db        DBTX
	pool      Pool
	closeOnce *sync.Once
}

// Connect opens a pgx pool for dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// New creates a store on top of an already constructed pool.
func New(pool Pool) *Store {
	return &Store{
		db:        pool,
		pool:      pool,
		closeOnce: &sync.Once{},
	}
}

// withTx returns a store bound to tx. Closing it does not close the pool.
func (s *Store) withTx(tx pgx.Tx) *Store {
	return &Store{db: tx, pool: s.pool, closeOnce: s.closeOnce}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return classify("ping", err)
	}
	return nil
}

// Close tears the pool down. Calling it more than once is a no-op.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		if s.pool != nil {
			s.pool.Close()
		}
	})
}

// Query runs a parameterized query and collects every row as an untyped map.
// Failures are logged and returned classified; callers must not read an error
// as an empty result.
func (s *Store) Query(ctx context.Context, sql string, args ...any) ([]map[string]any, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		logFailure(ctx, err, sql, args)
		return nil, classify("query", err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		logFailure(ctx, err, sql, args)
		return nil, classify("collect rows", err)
	}
	return result, nil
}

// Exec runs a statement that returns no rows and reports rows affected.
func (s *Store) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := s.db.Exec(ctx, sql, args...)
	if err != nil {
		logFailure(ctx, err, sql, args)
		return 0, classify("exec", err)
	}
	return tag.RowsAffected(), nil
}

func logFailure(ctx context.Context, err error, sql string, args []any) {
	zerolog.Ctx(ctx).Error().Err(err).Msg("unable to query")
	zerolog.Ctx(ctx).Debug().Str("sql", sql).Interface("args", args).Msg("failed query")
}
