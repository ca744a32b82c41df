package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	*pgxpool.Pool
}

func NewPostgreSQLDB(dsn string) (*DB, error) {
	return newPostgreSQLDB(context.Background(), dsn)
}

func newPostgreSQLDB(ctx context.Context, dsn string) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)

	if err != nil {
		return nil, err
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

// ConnectWithRetry opens the pool, retrying with exponential backoff until the
// database answers or maxElapsed passes. A malformed DSN fails immediately.
func ConnectWithRetry(ctx context.Context, dsn string, maxElapsed time.Duration) (*DB, error) {
	if _, err := pgxpool.ParseConfig(dsn); err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxElapsed

	var db *DB
	attempt := 0
	op := func() error {
		attempt++
		conn, err := newPostgreSQLDB(ctx, dsn)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			slog.Warn("Database not ready, retrying", "attempt", attempt, "error", err)
			return err
		}
		db = conn
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("connect to database after %d attempts: %w", attempt, err)
	}
	return db, nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
