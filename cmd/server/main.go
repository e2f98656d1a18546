package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/macrotrack/backend/config"
	httpDelivery "github.com/macrotrack/backend/internal/delivery/http"
	"github.com/macrotrack/backend/internal/domain"
	"github.com/macrotrack/backend/internal/infrastructure/cache"
	"github.com/macrotrack/backend/internal/infrastructure/persistence"
	"github.com/macrotrack/backend/internal/infrastructure/usda"
	"github.com/macrotrack/backend/internal/logger"
	"github.com/macrotrack/backend/internal/usecase"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Server.Environment, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync(zapLogger)
	zap.ReplaceGlobals(zapLogger)

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("starting MacroTrack backend",
		zap.String("version", httpDelivery.Version),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("database", cfg.Database.Driver),
		zap.String("cache", cfg.Cache.Type),
	)

	// Database
	db, err := persistence.Open(persistence.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, log)
	if err != nil {
		return err
	}
	defer persistence.Close(db)

	if cfg.Database.AutoMigrate {
		if err := persistence.AutoMigrate(db); err != nil {
			return err
		}
		log.Info("database migrated")
	}

	// USDA response cache, and Redis for the shared rate limiter when configured
	responseCache, redisClient, closeCache, err := buildCache(cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	usdaClient := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL,
		usda.WithTimeout(cfg.USDA.Timeout),
		usda.WithPageSize(cfg.USDA.PageSize),
		usda.WithHourlyLimit(cfg.RateLimit.USDA),
		usda.WithLogger(log.Named("usda")),
	)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		usdaClient.SetDebug(true)
	}
	if cfg.USDA.APIKey == usda.DemoAPIKey {
		log.Warn("using the USDA demo key; requests are heavily rate limited upstream")
	}

	handler := httpDelivery.NewHandler(buildServices(cfg, db, responseCache, usdaClient, log), log)

	var limiter httpDelivery.RateLimiter
	if cfg.RateLimit.PerIP > 0 {
		if redisClient != nil {
			limiter = httpDelivery.NewRedisRateLimiter(redisClient, cfg.RateLimit.PerIP, time.Minute, cfg.Cache.KeyPrefix)
		} else {
			limiter = httpDelivery.NewIPRateLimiter(cfg.RateLimit.PerIP, time.Minute)
		}
	}

	router := httpDelivery.SetupRouter(cfg, handler, limiter, log.Named("http"))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// buildCache returns the configured response cache. With cache type "none"
// the cache is nil and every lookup goes upstream
func buildCache(cfg *config.Config, log *zap.Logger) (domain.CacheRepository, *redis.Client, func(), error) {
	switch cfg.Cache.Type {
	case "redis":
		client, err := cache.NewRedisClient(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("redis cache connected", zap.Duration("ttl", cfg.Cache.TTL))
		redisCache := cache.NewRedisCache(client, cfg.Cache.KeyPrefix)
		return redisCache, client, func() { _ = redisCache.Close() }, nil
	case "memory":
		memoryCache := cache.NewMemoryCache(10 * time.Minute)
		log.Info("memory cache enabled", zap.Duration("ttl", cfg.Cache.TTL))
		return memoryCache, nil, memoryCache.Close, nil
	default:
		log.Info("response cache disabled")
		return nil, nil, func() {}, nil
	}
}

func buildServices(cfg *config.Config, db *gorm.DB, responseCache domain.CacheRepository, usdaClient domain.USDAClient, log *zap.Logger) httpDelivery.Services {
	curated := persistence.NewCuratedFoodRepository(db)
	custom := persistence.NewCustomFoodRepository(db)

	nutrition := usecase.NewNutritionService(
		responseCache,
		usdaClient,
		usecase.NutritionServiceConfig{CacheTTL: cfg.Cache.TTL},
		log.Named("nutrition"),
	)

	var sources []usecase.FoodSource
	if cfg.Search.EnableUSDA {
		sources = append(sources, usecase.NewUSDASource(nutrition))
	}
	if cfg.Search.EnableCurated {
		sources = append(sources, usecase.NewCuratedSource(curated, cfg.Search.ResultLimit))
	}
	if cfg.Search.EnableCustom {
		sources = append(sources, usecase.NewCustomSource(custom, cfg.Search.ResultLimit))
	}

	// Serving lookups of USDA ids follow the same switch as search
	var lookup usecase.USDAFoodLookup
	if cfg.Search.EnableUSDA {
		lookup = nutrition
	}

	goals := usecase.NewGoalService(persistence.NewUserGoalRepository(db), log.Named("goals"))
	water := usecase.NewWaterService(persistence.NewWaterIntakeRepository(db))
	resolver := usecase.NewFoodResolver(curated, custom, lookup)

	return httpDelivery.Services{
		Nutrition: nutrition,
		Search: usecase.NewSearchService(usecase.SearchConfig{
			MinQueryLength: cfg.Search.MinQueryLength,
			SourceTimeout:  cfg.Search.SourceTimeout,
		}, log.Named("search"), sources...),
		Resolver: resolver,
		FoodLog:  usecase.NewFoodLogService(persistence.NewFoodEntryRepository(db), resolver, goals, water, log.Named("foodlog")),
		Goals:    goals,
		Water:    water,
		Catalog:  usecase.NewCatalogService(curated, custom, cfg.Search.ResultLimit, log.Named("catalog")),
		Ping: func(ctx context.Context) error {
			return persistence.Ping(ctx, db)
		},
	}
}
