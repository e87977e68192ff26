package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/kwekamelia/web-grp-lab/config"
	authmw "github.com/kwekamelia/web-grp-lab/internal/auth/middleware"
	authrepo "github.com/kwekamelia/web-grp-lab/internal/auth/repository"
	authsvc "github.com/kwekamelia/web-grp-lab/internal/auth/service"
	bugrepo "github.com/kwekamelia/web-grp-lab/internal/bugs/repository"
	bugsvc "github.com/kwekamelia/web-grp-lab/internal/bugs/service"
	"github.com/kwekamelia/web-grp-lab/internal/jobs"
	projectrepo "github.com/kwekamelia/web-grp-lab/internal/projects/repository"
	projectsvc "github.com/kwekamelia/web-grp-lab/internal/projects/service"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

const ServiceName = "bugtracker"

// App holds the wired services of one process.
type App struct {
	Config    *config.Config
	DB        storage.Gateway
	Redis     *redis.Client
	Bugs      *bugsvc.BugService
	Projects  *projectsvc.ProjectRegistry
	Auth      *authsvc.AuthService
	Scheduler *jobs.Scheduler
}

// New opens the configured store and Redis, then wires the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := OpenGateway(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	rdb, err := OpenRedis(ctx, cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}

	app, err := NewWithStores(ctx, cfg, db, rdb)
	if err != nil {
		db.Close()
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}
	return app, nil
}

// NewWithStores wires the services on already opened stores. rdb may be nil,
// in which case sessions are kept in memory. The schema is applied, the
// admin user is seeded and the project cache is loaded; any failure here is
// a startup failure.
func NewWithStores(ctx context.Context, cfg *config.Config, db storage.Gateway, rdb *redis.Client) (*App, error) {
	if err := storage.ApplySchema(ctx, db); err != nil {
		return nil, err
	}

	var sessions authrepo.SessionStore
	if rdb != nil {
		sessions = authrepo.NewRedisSessionStore(rdb)
	} else {
		slog.Warn("REDIS_ADDR not set, sessions are kept in memory")
		sessions = authrepo.NewMemorySessionStore()
	}

	auth, err := authsvc.NewAuthService(authrepo.NewUserRepository(db), sessions, cfg.Redis.SessionTTL)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.AdminUsername != "" && cfg.Auth.AdminPassword != "" {
		if err := auth.EnsureUser(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			return nil, fmt.Errorf("seed admin user: %w", err)
		}
	}

	registry := projectsvc.NewProjectRegistry(projectrepo.NewProjectRepository(db))
	if err := registry.Bootstrap(ctx); err != nil {
		return nil, fmt.Errorf("load project cache: %w", err)
	}

	return &App{
		Config:    cfg,
		DB:        db,
		Redis:     rdb,
		Bugs:      bugsvc.NewBugService(bugrepo.NewBugRepository(db)),
		Projects:  registry,
		Auth:      auth,
		Scheduler: jobs.NewScheduler(),
	}, nil
}

func (a *App) Router() *gin.Engine {
	return BuildRouter(RouterDeps{
		ServiceName:    ServiceName,
		Version:        a.Config.App.Version,
		CORSOrigins:    a.Config.Server.CORSOrigins,
		DB:             a.DB,
		Bugs:           a.Bugs,
		Projects:       a.Projects,
		Auth:           a.Auth,
		LoginLimiter:   authmw.NewIPRateLimiter(a.Config.Auth.LoginRatePerMinute, a.Config.Auth.LoginBurst),
		RequireSession: a.Config.Auth.RequireSession,
	})
}

// StartJobs schedules the background jobs and starts the scheduler.
func (a *App) StartJobs() error {
	if err := a.Scheduler.Add(jobs.CacheAuditJob, a.Config.Jobs.CacheAuditSchedule, jobs.CacheAudit(a.Projects)); err != nil {
		return err
	}
	a.Scheduler.Start()
	return nil
}

// Close stops the jobs and releases the stores.
func (a *App) Close(ctx context.Context) {
	a.Scheduler.Stop(ctx)
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	a.DB.Close()
}
