package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tugohq/tugo/internal/api"
	v1 "github.com/tugohq/tugo/internal/api/v1"
	"github.com/tugohq/tugo/internal/auth"
	"github.com/tugohq/tugo/internal/cache"
	"github.com/tugohq/tugo/internal/config"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/postgres"
	"github.com/tugohq/tugo/internal/repository"
	"github.com/tugohq/tugo/internal/service"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		// Postgres
		postgres.Module(),
		fx.Provide(
			// Config
			config.NewConfig,
			provideLoggerConfig,

			// Logger
			logger.NewLogger,

			// Cache
			provideCache,

			// Auth
			auth.NewProvider,

			// Repositories
			repository.NewCustomerRepository,
			repository.NewCouponRepository,
			repository.NewLedgerRepository,

			// Services
			service.NewServiceParams,
			service.NewAuthService,
			service.NewCustomerService,
			service.NewCouponService,
			service.NewRedemptionService,
			service.NewAnalyticsService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideLoggerConfig(cfg *config.Configuration) logger.Config {
	return cfg
}

func provideCache(cfg *config.Configuration) cache.Cache {
	return cache.NewInMemoryCache(cfg.Cache.Enabled)
}

func provideHandlers(
	cfg *config.Configuration,
	logger *logger.Logger,
	authService service.AuthService,
	customerService service.CustomerService,
	couponService service.CouponService,
	redemptionService service.RedemptionService,
	analyticsService service.AnalyticsService,
) api.Handlers {
	return api.Handlers{
		Health:     v1.NewHealthHandler(logger),
		Auth:       v1.NewAuthHandler(cfg, authService, logger),
		Customer:   v1.NewCustomerHandler(customerService, logger),
		Coupon:     v1.NewCouponHandler(couponService, logger),
		Redemption: v1.NewRedemptionHandler(redemptionService, logger),
		Analytics:  v1.NewAnalyticsHandler(analyticsService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
