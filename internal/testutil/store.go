// Package testutil provides stores for package tests.
package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kwekamelia/web-grp-lab/internal/storage"
	"github.com/kwekamelia/web-grp-lab/internal/storage/sqldb"
)

// OpenSQLite opens a schema-initialised SQLite gateway in a temp dir. It is
// closed when the test ends.
func OpenSQLite(t testing.TB) *sqldb.Gateway {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bugtracker.db")
	gw, err := sqldb.Open(context.Background(), sqldb.Options{Driver: sqldb.DriverSQLite, DSN: path})
	require.NoError(t, err)
	t.Cleanup(gw.Close)

	require.NoError(t, storage.ApplySchema(context.Background(), gw))
	return gw
}

// ErrInjected is the fault returned by FlakyGateway while failing.
var ErrInjected = errors.New("injected store fault")

// FlakyGateway wraps a Gateway and fails every call while Fail is set.
type FlakyGateway struct {
	storage.Gateway
	fail atomic.Bool
}

func NewFlakyGateway(gw storage.Gateway) *FlakyGateway {
	return &FlakyGateway{Gateway: gw}
}

func (g *FlakyGateway) SetFail(v bool) { g.fail.Store(v) }

func (g *FlakyGateway) Execute(ctx context.Context, query string, args ...any) (int64, error) {
	if g.fail.Load() {
		return 0, storage.Wrap("execute", ErrInjected)
	}
	return g.Gateway.Execute(ctx, query, args...)
}

func (g *FlakyGateway) FetchOne(ctx context.Context, query string, args ...any) storage.Row {
	if g.fail.Load() {
		return storage.ErrRow(storage.Wrap("fetch one", ErrInjected))
	}
	return g.Gateway.FetchOne(ctx, query, args...)
}

func (g *FlakyGateway) FetchAll(ctx context.Context, query string, scan func(storage.Row) error, args ...any) error {
	if g.fail.Load() {
		return storage.Wrap("fetch all", ErrInjected)
	}
	return g.Gateway.FetchAll(ctx, query, scan, args...)
}
