// Package app wires application components together.
package app

import (
	"fmt"

	"github.com/quantlab/stockdash/internal/cache"
	"github.com/quantlab/stockdash/internal/common"
	"github.com/quantlab/stockdash/internal/config"
	"github.com/quantlab/stockdash/internal/handlers"
	"github.com/quantlab/stockdash/internal/interfaces"
	"github.com/quantlab/stockdash/internal/market"
	"github.com/quantlab/stockdash/internal/storage"
)

// cacheMaxEntries bounds the shared result cache.
const cacheMaxEntries = 10000

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager
	Cache   *cache.ResultCache
	Market  *market.Service

	// HTTP handlers
	AuthHandler    *handlers.AuthHandler
	StockHandler   *handlers.StockHandler
	UserHandler    *handlers.UserHandler
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.Auth.JWTSecret == "" {
		logger.Warn().Msg("auth.jwt_secret is empty, session tokens are unsigned; do not use in production")
	}

	storageManager, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.Storage = storageManager

	resolver, err := market.NewResolver(cfg.Market.ReferenceDate)
	if err != nil {
		a.Storage.Close()
		return nil, fmt.Errorf("failed to initialize timeframe resolver: %w", err)
	}
	logger.Info().Str("reference_date", resolver.ReferenceDate()).Msg("using fixed reference date")

	a.Cache = cache.New(cfg.SeriesTTL(), cacheMaxEntries)
	a.Market = market.NewService(logger, a.Cache, resolver, market.ServiceOptions{
		SeriesTTL: cfg.SeriesTTL(),
		SearchTTL: cfg.SearchTTL(),
		QuoteTTL:  cfg.QuoteTTL(),
	})

	a.initHandlers()

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	jwtSecret := []byte(a.Config.Auth.JWTSecret)
	users := a.Storage.Users()

	a.AuthHandler = handlers.NewAuthHandler(a.Logger, users, jwtSecret, a.Config.SessionTTL())
	a.StockHandler = handlers.NewStockHandler(a.Logger, a.Market)
	a.UserHandler = handlers.NewUserHandler(a.Logger, users)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
