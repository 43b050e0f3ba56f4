// Package app assembles the gateway from its configuration.
package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/recipe-nexus/backend/config"
	"github.com/pageza/recipe-nexus/backend/internal/api"
	"github.com/pageza/recipe-nexus/backend/internal/cache"
	"github.com/pageza/recipe-nexus/backend/internal/database"
	"github.com/pageza/recipe-nexus/backend/internal/middleware"
	"github.com/pageza/recipe-nexus/backend/internal/provider"
	"github.com/pageza/recipe-nexus/backend/internal/router"
	"github.com/pageza/recipe-nexus/backend/internal/service"
	"github.com/pageza/recipe-nexus/backend/internal/store"
)

// Version is reported by /health. It is set at build time.
var Version = "dev"

// cacheCleanupInterval is how often the in-memory cache drops expired entries.
const cacheCleanupInterval = time.Minute

// App is the wired gateway.
type App struct {
	Handler http.Handler
	Store   store.Store
	Cache   cache.Cache

	logger  *zap.Logger
	closers []func() error
}

// New opens the store and cache selected by cfg and builds the HTTP handler.
func New(cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{logger: logger}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.Store, err = openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, a.Store.Close)

	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient, err = database.NewRedisClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, redisClient.Close)
	}

	switch cfg.CacheDriver {
	case config.CacheRedis:
		a.Cache = cache.NewRedisCache(redisClient, cfg.CacheDefaultTTL)
	default:
		mem := cache.NewMemoryCache(cfg.CacheDefaultTTL, cacheCleanupInterval)
		a.closers = append(a.closers, mem.Close)
		a.Cache = mem
	}

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	meals := provider.NewMealDB(cfg.MealDBURL, httpClient)
	dummy := provider.NewDummyJSON(cfg.DummyJSONURL, httpClient)
	drinks := provider.NewCocktailDB(cfg.CocktailDBURL, httpClient)

	authService := service.NewAuthService(a.Store, cfg.JWTSecret, cfg.JWTExpiration, logger)
	aggregator := service.NewAggregator(a.Store, a.Cache, meals, dummy, drinks, cfg.CacheMergedTTL, logger)
	recipeService := service.NewRecipeService(a.Store, a.Cache, logger)
	externalService := service.NewExternalService(a.Cache, meals, dummy, drinks, cfg.CacheDefaultTTL, logger)

	limitCfg := middleware.RecipeCreationConfig(cfg.RateLimitCreatePerHour)
	var limiter middleware.Limiter
	if redisClient != nil {
		limiter = middleware.NewRedisLimiter(redisClient, limitCfg)
	} else {
		limiter = middleware.NewLocalLimiter(limitCfg)
	}

	a.Handler = router.SetupRouter(router.Handlers{
		Auth:     api.NewAuthHandler(authService),
		Recipes:  api.NewRecipeHandler(aggregator, recipeService, authService, middleware.RateLimit(limiter, logger)),
		External: api.NewExternalHandler(externalService, authService),
		Health: api.NewHealthHandler(Version, map[string]api.Pinger{
			"store": a.Store,
			"cache": a.Cache,
		}),
	}, logger, cfg.AllowedOrigins)

	logger.Info("application wired",
		zap.String("store", cfg.StoreDriver),
		zap.String("cache", cfg.CacheDriver),
		zap.String("env", string(cfg.Env)),
	)
	return a, nil
}

// Close releases everything New opened, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func openStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite, config.StorePostgres:
		db, err := database.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		s, err := store.NewGormStore(db)
		if err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, err
		}
		return s, nil
	case config.StoreFile:
		s, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
