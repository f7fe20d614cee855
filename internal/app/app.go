package app

import (
	"context"
	"net/http"

	"go-attendance/internal/config"
	"go-attendance/internal/middleware"
	"go-attendance/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the stores, migrates, seeds and mounts every route on
// router. The returned cleanup closes the connections.
func BuildApp(ctx context.Context, router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if err := migrate(gormDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}

	// 2. Middleware
	router.Use(
		cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{middleware.HeaderRequestID, middleware.HeaderReplayed},
			AllowCredentials: false,
		}),
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
	)

	// 3. Modules & Routes
	if err := registerModules(ctx, router, cfg, sqlDB, gormDB, rdb, zap.L()); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

func healthHandler(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": service})
	}
}
