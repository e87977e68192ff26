package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/kwekamelia/web-grp-lab/config"
	authrepo "github.com/kwekamelia/web-grp-lab/internal/auth/repository"
	"github.com/kwekamelia/web-grp-lab/internal/bootstrap"
	"github.com/kwekamelia/web-grp-lab/internal/cli"
	"github.com/kwekamelia/web-grp-lab/internal/logging"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

func main() {
	loadConfig := sync.OnceValues(func() (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		logging.SetupWriter(os.Stderr, cfg.App.LogLevel)
		return cfg, nil
	})

	open := func(ctx context.Context) (storage.Gateway, error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		return bootstrap.OpenGateway(ctx, cfg.Database)
	}

	sessions := func(ctx context.Context) (authrepo.SessionStore, func(), error) {
		cfg, err := loadConfig()
		if err != nil {
			return nil, nil, err
		}
		rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if rdb == nil {
			slog.Warn("REDIS_ADDR not set, sessions held by a running server are not revoked")
			return authrepo.NewMemorySessionStore(), func() {}, nil
		}
		return authrepo.NewRedisSessionStore(rdb), func() { _ = rdb.Close() }, nil
	}

	if err := cli.NewRootCommand(open, sessions).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
