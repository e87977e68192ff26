// Package sqldb implements storage.Gateway on database/sql. It serves the
// "postgres" driver (lib/pq) and the "sqlite3" driver (mattn/go-sqlite3).
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	PingTimeout  time.Duration
}

type Gateway struct {
	db      *sql.DB
	dialect storage.Dialect
}

// New wraps an already opened *sql.DB.
func New(db *sql.DB, dialect storage.Dialect) *Gateway {
	return &Gateway{db: db, dialect: dialect}
}

// Open opens and pings a database/sql pool for the given driver.
func Open(ctx context.Context, opt Options) (*Gateway, error) {
	var dialect storage.Dialect
	switch opt.Driver {
	case DriverPostgres:
		dialect = storage.DialectPostgres
	case DriverSQLite:
		dialect = storage.DialectSQLite
	default:
		return nil, fmt.Errorf("unsupported driver %q", opt.Driver)
	}
	if opt.DSN == "" {
		return nil, fmt.Errorf("dsn is required for driver %s", opt.Driver)
	}
	if opt.PingTimeout == 0 {
		opt.PingTimeout = 3 * time.Second
	}

	db, err := sql.Open(opt.Driver, opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == storage.DialectSQLite {
		// single writer avoids SQLITE_BUSY under concurrent requests
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		if opt.MaxOpenConns > 0 {
			db.SetMaxOpenConns(opt.MaxOpenConns)
		}
		if opt.MaxIdleConns > 0 {
			db.SetMaxIdleConns(opt.MaxIdleConns)
		}
	}

	pctx, cancel := context.WithTimeout(ctx, opt.PingTimeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == storage.DialectSQLite {
		if err := applyPragmas(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return New(db, dialect), nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("failed to execute %q: %w", p, err)
		}
	}
	return nil
}

func (g *Gateway) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := g.db.ExecContext(ctx, g.dialect.Rebind(query), args...)
	if err != nil {
		return 0, wrap("execute", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap("rows affected", err)
	}
	return n, nil
}

func (g *Gateway) FetchOne(ctx context.Context, query string, args ...any) storage.Row {
	return row{r: g.db.QueryRowContext(ctx, g.dialect.Rebind(query), args...)}
}

func (g *Gateway) FetchAll(ctx context.Context, query string, scan func(storage.Row) error, args ...any) error {
	rows, err := g.db.QueryContext(ctx, g.dialect.Rebind(query), args...)
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
	return wrap("ping", g.db.PingContext(ctx))
}

func (g *Gateway) Dialect() storage.Dialect { return g.dialect }

func (g *Gateway) Close() {
	if g != nil && g.db != nil {
		g.db.Close()
	}
}

type row struct {
	r *sql.Row
}

func (r row) Scan(dest ...any) error {
	err := r.r.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return wrap("fetch one", err)
}

// wrap keeps the SQLSTATE of lib/pq server errors in the surfaced message.
func wrap(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		op = fmt.Sprintf("%s (sqlstate %s)", op, pqErr.Code)
	}
	return storage.Wrap(op, err)
}
