package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/kwekamelia/web-grp-lab/config"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
	"github.com/kwekamelia/web-grp-lab/internal/storage/pgxstore"
	"github.com/kwekamelia/web-grp-lab/internal/storage/sqldb"
)

// OpenGateway opens the store selected by cfg.Driver.
func OpenGateway(ctx context.Context, cfg config.DatabaseConfig) (storage.Gateway, error) {
	dsn := cfg.ConnString()

	switch cfg.Driver {
	case config.DriverPgx:
		gw, err := pgxstore.Open(ctx, pgxstore.Options{
			DSN:       dsn,
			MaxConns:  cfg.MaxConns,
			MinConns:  cfg.MinConns,
			ConnectTO: 5 * time.Second,
			PingTO:    2 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return gw, nil
	case config.DriverPostgres, config.DriverSQLite:
		gw, err := sqldb.Open(ctx, sqldb.Options{
			Driver:       cfg.Driver,
			DSN:          dsn,
			MaxOpenConns: cfg.MaxConns,
			MaxIdleConns: cfg.MinConns,
		})
		if err != nil {
			return nil, err
		}
		return gw, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}
