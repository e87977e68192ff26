package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/kwekamelia/web-grp-lab/internal/api/http"
	"github.com/kwekamelia/web-grp-lab/internal/api/http/middleware"
	authhttp "github.com/kwekamelia/web-grp-lab/internal/auth/http"
	authmw "github.com/kwekamelia/web-grp-lab/internal/auth/middleware"
	authsvc "github.com/kwekamelia/web-grp-lab/internal/auth/service"
	bugshttp "github.com/kwekamelia/web-grp-lab/internal/bugs/http"
	bugsvc "github.com/kwekamelia/web-grp-lab/internal/bugs/service"
	projectshttp "github.com/kwekamelia/web-grp-lab/internal/projects/http"
	projectsvc "github.com/kwekamelia/web-grp-lab/internal/projects/service"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	CORSOrigins    []string
	DB             storage.Gateway
	Bugs           *bugsvc.BugService
	Projects       *projectsvc.ProjectRegistry
	Auth           *authsvc.AuthService
	LoginLimiter   *authmw.IPRateLimiter
	RequireSession bool
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(gin.Recovery())

	if len(dep.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
			ExposeHeaders:    []string{"X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Projects)
	healthHandler.RegisterRoutes(r)

	var guards []gin.HandlerFunc
	if dep.LoginLimiter != nil {
		guards = append(guards, dep.LoginLimiter.Middleware())
	}
	authhttp.New(dep.Auth).Register(r.Group("/api/auth"), guards...)

	api := r.Group("/api")
	var writeGuards []gin.HandlerFunc
	if dep.RequireSession {
		guard := authmw.RequireSession(dep.Auth)
		api.Use(guard)
		writeGuards = append(writeGuards, guard)
	}

	bugsHandler := bugshttp.New(dep.Bugs)
	bugsHandler.Register(api.Group("/bugs"))
	bugsHandler.RegisterPages(r.Group("/bugs"), writeGuards...)

	projectshttp.New(dep.Projects).Register(api.Group("/projects"))

	return r
}
