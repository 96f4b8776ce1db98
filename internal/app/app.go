package app

import (
	"context"
	"errors"

	"go-hrcore/internal/auditlog"
	"go-hrcore/internal/middleware"
	"go-hrcore/internal/payroll"
	"go-hrcore/internal/shared/config"
	"go-hrcore/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App holds the wired HTTP router and the resources it owns.
type App struct {
	Router *gin.Engine
	Audit  auditlog.Logger

	closers []func() error
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			zap.L().Warn("close resource failed", zap.Error(err))
		}
	}
}

func BuildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	deps, closers, err := connectInfrastructure(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app := &App{Audit: deps.audit, closers: closers}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RateLimitByIP(50, 100))
	router.GET("/healthz", liveness)
	router.GET("/readyz", readiness(deps.db, deps.rdb))

	if err := registerModules(router, deps); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = router
	return app, nil
}

// connectInfrastructure opens the database, Redis and, when configured,
// object storage.
func connectInfrastructure(ctx context.Context, cfg config.Config, logger *zap.Logger) (infrastructure, []func() error, error) {
	var closers []func() error

	gormDB, err := connection.ConnectGORMWithRetry(cfg)
	if err != nil {
		return infrastructure{}, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return infrastructure{}, nil, err
	}
	closers = append(closers, sqlDB.Close)
	logger.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBRetries)
	if err != nil {
		_ = sqlDB.Close()
		return infrastructure{}, nil, err
	}
	closers = append(closers, rdb.Close)
	logger.Info("redis connection established")

	deps := infrastructure{
		cfg:    cfg,
		db:     sqlDB,
		gormDB: gormDB,
		rdb:    rdb,
		audit:  auditlog.NewLogger(gormDB, logger),
		logger: logger,
	}

	if cfg.MinioEndpoint != "" {
		client, err := connection.ConnectMinio(ctx, cfg)
		if err != nil {
			return infrastructure{}, nil, errors.Join(err, rdb.Close(), sqlDB.Close())
		}
		deps.documents = payroll.NewMinioStore(client, cfg.MinioBucket, cfg.PayslipURLTTL)
	} else {
		logger.Warn("MINIO_ENDPOINT not set, pay stub documents are disabled")
	}

	return deps, closers, nil
}
