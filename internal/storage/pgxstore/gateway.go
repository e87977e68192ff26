// Package pgxstore implements storage.Gateway on a jackc/pgx connection pool.
package pgxstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

type Options struct {
	DSN       string
	MaxConns  int
	MinConns  int
	ConnectTO time.Duration
	PingTO    time.Duration
}

type Gateway struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Gateway {
	return &Gateway{pool: pool}
}

// Open builds a pool from opt and fails fast when the server is unreachable.
func Open(ctx context.Context, opt Options) (*Gateway, error) {
	if opt.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}

	cfg, err := pgxpool.ParseConfig(opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if opt.MaxConns > 0 {
		cfg.MaxConns = int32(opt.MaxConns)
	}
	if opt.MinConns > 0 {
		cfg.MinConns = int32(opt.MinConns)
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(cctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return New(pool), nil
}

func (g *Gateway) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	ct, err := g.pool.Exec(ctx, storage.DialectPostgres.Rebind(query), args...)
	if err != nil {
		return 0, wrap("execute", err)
	}
	return ct.RowsAffected(), nil
}

func (g *Gateway) FetchOne(ctx context.Context, query string, args ...any) storage.Row {
	return row{r: g.pool.QueryRow(ctx, storage.DialectPostgres.Rebind(query), args...)}
}

func (g *Gateway) FetchAll(ctx context.Context, query string, scan func(storage.Row) error, args ...any) error {
	rows, err := g.pool.Query(ctx, storage.DialectPostgres.Rebind(query), args...)
	if err != nil {
		return wrap("fetch all", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return wrap("scan", err)
		}
	}
	return wrap("fetch all", rows.Err())
}

func (g *Gateway) Ping(ctx context.Context) error {
	return wrap("ping", g.pool.Ping(ctx))
}

func (g *Gateway) Dialect() storage.Dialect { return storage.DialectPostgres }

func (g *Gateway) Close() {
	if g != nil && g.pool != nil {
		g.pool.Close()
	}
}

type row struct {
	r pgx.Row
}

func (r row) Scan(dest ...any) error {
	err := r.r.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return wrap("fetch one", err)
}

// wrap keeps the SQLSTATE of server-side failures in the surfaced message.
func wrap(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		op = fmt.Sprintf("%s (sqlstate %s)", op, pgErr.Code)
	}
	return storage.Wrap(op, err)
}
