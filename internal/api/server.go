// Package api assembles the HTTP server.
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	infragin "github.com/mai-repo/Newscraper/infrastructure/gin"
	infralogger "github.com/mai-repo/Newscraper/infrastructure/logger"
	"github.com/mai-repo/Newscraper/internal/config"
	"github.com/mai-repo/Newscraper/internal/database"
	"github.com/mai-repo/Newscraper/internal/metrics"
)

// healthPingTimeout bounds each dependency ping made by GET /health.
const healthPingTimeout = 2 * time.Second

// Dependencies are the shared clients the server checks and exposes.
// Redis and Metrics may be nil.
type Dependencies struct {
	DB      *sqlx.DB
	Redis   *redis.Client
	Metrics *metrics.Metrics
}

// NewServer creates a new HTTP server.
func NewServer(h Handlers, deps Dependencies, cfg *config.Config, log infralogger.Logger) *infragin.Server {
	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithCORSOrigins(cfg.Service.CORSOrigins).
		WithTimeouts(cfg.Service.ReadTimeout, cfg.Service.WriteTimeout, cfg.Service.IdleTimeout)

	if deps.DB != nil {
		builder = builder.WithDatabaseHealthCheck(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), healthPingTimeout)
			defer cancel()
			return database.Ping(ctx, deps.DB)
		})
	}

	if deps.Redis != nil {
		builder = builder.WithRedisHealthCheck(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), healthPingTimeout)
			defer cancel()
			return deps.Redis.Ping(ctx).Err()
		})
	}

	return builder.
		WithRoutes(func(router *gin.Engine) {
			SetupRoutes(router, h, deps.Metrics)
		}).
		Build()
}
