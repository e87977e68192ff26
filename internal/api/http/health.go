package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Service        string    `json:"service"`
	Version        string    `json:"version"`
	DB             string    `json:"db,omitempty"`
	ProjectsCached int       `json:"projects_cached"`
}

// CacheSizer reports how many projects are held in memory.
type CacheSizer interface {
	Len() int
}

type HealthHandler struct {
	serviceName string
	version     string
	db          storage.Gateway
	cache       CacheSizer
}

func NewHealthHandler(serviceName, version string, db storage.Gateway, cache CacheSizer) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		cache:       cache,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	cached := 0
	if h.cache != nil {
		cached = h.cache.Len()
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:         "healthy",
		Timestamp:      time.Now().UTC(),
		Service:        h.serviceName,
		Version:        h.version,
		DB:             dbStatus,
		ProjectsCached: cached,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
