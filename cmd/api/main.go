package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/swiftbasket/swiftbasket-backend/api/routes"
	"github.com/swiftbasket/swiftbasket-backend/internal/address"
	"github.com/swiftbasket/swiftbasket-backend/internal/auth"
	"github.com/swiftbasket/swiftbasket-backend/internal/cart"
	"github.com/swiftbasket/swiftbasket-backend/internal/catalog"
	"github.com/swiftbasket/swiftbasket-backend/internal/checkout"
	"github.com/swiftbasket/swiftbasket-backend/internal/media"
	"github.com/swiftbasket/swiftbasket-backend/internal/orders"
	"github.com/swiftbasket/swiftbasket-backend/pkg/auth/session"
	"github.com/swiftbasket/swiftbasket-backend/pkg/config"
	"github.com/swiftbasket/swiftbasket-backend/pkg/db"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
	"github.com/swiftbasket/swiftbasket-backend/pkg/metrics"
	"github.com/swiftbasket/swiftbasket-backend/pkg/migrate"
	"github.com/swiftbasket/swiftbasket-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	if cfg.FeatureFlags.SeedCatalog {
		if err := catalog.SeedIfEmpty(context.Background(), catalogRepo, logg); err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService := auth.NewService(
		redisClient,
		redisClient,
		auth.NewUserRepository(dbClient.DB()),
		sessionManager,
		cfg.OTP,
		cfg.JWT,
		logg,
	)

	cartStore, err := cart.NewRedisStore(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService := cart.NewService(cartStore, logg)

	catalogService := catalog.NewService(catalogRepo)
	addressService := address.NewService(dbClient.DB())

	ordersService := orders.NewService(
		dbClient.DB(),
		cartService,
		addressService,
		checkout.FeesFromConfig(cfg.Checkout),
		cfg.Orders.DeliveryWindow,
		logg,
	)

	mediaService, err := media.NewService(cfg.Media, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			sessionManager,
			authService,
			catalogService,
			cartService,
			addressService,
			ordersService,
			mediaService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
