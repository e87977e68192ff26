// Package storage defines the durable store contract shared by the bug,
// project and user repositories, and the helpers every gateway backend uses.
package storage

import "context"

// Row is a single result row. Scan on a row returned by FetchOne yields
// ErrNotFound when the query matched nothing.
type Row interface {
	Scan(dest ...any) error
}

// Gateway executes parameterised statements against the durable store.
// Queries are written with '?' placeholders; each backend rebinds them to its
// own dialect. Arguments are always bound, never spliced into the query text.
type Gateway interface {
	// Execute runs a write and reports the number of affected rows.
	Execute(ctx context.Context, query string, args ...any) (int64, error)
	// FetchOne runs a query expected to return at most one row.
	FetchOne(ctx context.Context, query string, args ...any) Row
	// FetchAll runs a query and calls scan once per returned row.
	FetchAll(ctx context.Context, query string, scan func(Row) error, args ...any) error
	Ping(ctx context.Context) error
	Dialect() Dialect
	Close()
}

// errRow is returned by FetchOne when the query could not even be issued.
type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// ErrRow returns a Row whose Scan always fails with err.
func ErrRow(err error) Row { return errRow{err: err} }
