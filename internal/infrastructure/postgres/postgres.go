package postgres

import (
	"context"
	"time"

	"shopfolders/backend/internal/domain/collection"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx is the query surface shared by *pgxpool.Pool and pgx.Tx, so the same
// repository code runs pool-bound and transaction-bound.
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Database wraps the pgx connection pool.
type Database struct {
	Pool *pgxpool.Pool
}

// New establishes a new connection pool against the provided DSN.
func New(ctx context.Context, dsn string) (*Database, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Database{Pool: pool}, nil
}

// Close drains the connection pool.
func (db *Database) Close() {
	if db != nil && db.Pool != nil {
		db.Pool.Close()
	}
}

// InTx runs fn inside a single transaction, handing it transaction-bound
// product and collection stores. The transaction commits when fn returns nil
// and rolls back otherwise, so delete-then-insert membership replacement is
// never observable half-done.
func (db *Database) InTx(ctx context.Context, fn func(tx collection.Tx) error) error {
	return pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		return fn(collection.Tx{
			Products:    &ProductRepository{db: tx},
			Collections: &CollectionRepository{db: tx},
		})
	})
}

var _ collection.TxRunner = (*Database)(nil)
