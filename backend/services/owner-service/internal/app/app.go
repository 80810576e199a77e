package app

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libdb "isuride/backend/libs/db"
	libredis "isuride/backend/libs/redis"
	"isuride/backend/services/owner-service/internal/config"
	httpserver "isuride/backend/services/owner-service/internal/http"
	"isuride/backend/services/owner-service/internal/http/handlers"
	"isuride/backend/services/owner-service/internal/http/middleware"
	redisstore "isuride/backend/services/owner-service/internal/redis"
	"isuride/backend/services/owner-service/internal/repository"
	"isuride/backend/services/owner-service/internal/service"
)

// App wires owner-service dependencies.
type App struct {
	server      *httpserver.Server
	db          *sqlx.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := libdb.Open(cfg.Database.Driver, cfg.Database.DSN, libdb.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	var (
		redisClient *redis.Client
		ownerCache  service.OwnerCache
	)
	if cfg.Redis.Enabled {
		redisClient, err = libredis.NewRedisClient(libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		ownerCache = redisstore.NewOwnerSessionStore(redisClient, cfg.OwnerSessionTTL())
	}

	var tokens *service.TokenService
	if cfg.JWT.Secret != "" {
		tokens = service.NewTokenService(cfg.JWT.Secret, cfg.JWTExpiration())
	}

	chairRepo := repository.NewChairRepository(sqlDB)
	locationRepo := repository.NewLocationRepository(sqlDB)
	ownerRepo := repository.NewOwnerRepository(sqlDB)

	chairsService := service.NewChairsService(chairRepo, locationRepo, service.ChairsOptions{
		Strategy:    cfg.DistanceStrategy(),
		BatchSize:   cfg.Distance.BatchSize,
		Parallelism: cfg.Distance.Parallelism,
	}, logger)
	authService := service.NewOwnerAuthService(ownerRepo, ownerCache, tokens, logger)

	routes := httpserver.Routes{
		OwnerChairs: handlers.NewOwnerChairsHandler(chairsService, logger),
		Health:      handlers.NewHealthHandler(),
		Ready:       handlers.NewReadyHandler(ownerRepo, logger),
	}

	router := httpserver.NewRouter(routes, middleware.OwnerAuth(authService, logger))
	server := httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	logger.Info("owner service configured",
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("distance_strategy", string(cfg.DistanceStrategy())),
		zap.Bool("redis_cache", cfg.Redis.Enabled),
		zap.Bool("bearer_auth", tokens != nil),
	)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
