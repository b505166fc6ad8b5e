package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tiendasport/storefront-api/api/routes"
	authsvc "github.com/tiendasport/storefront-api/internal/auth"
	cartsvc "github.com/tiendasport/storefront-api/internal/cart"
	checkoutsvc "github.com/tiendasport/storefront-api/internal/checkout"
	shippingsvc "github.com/tiendasport/storefront-api/internal/shipping"
	"github.com/tiendasport/storefront-api/internal/users"
	wishlistsvc "github.com/tiendasport/storefront-api/internal/wishlist"
	"github.com/tiendasport/storefront-api/pkg/auth/session"
	"github.com/tiendasport/storefront-api/pkg/config"
	"github.com/tiendasport/storefront-api/pkg/db"
	"github.com/tiendasport/storefront-api/pkg/db/models"
	"github.com/tiendasport/storefront-api/pkg/logger"
	"github.com/tiendasport/storefront-api/pkg/metrics"
	"github.com/tiendasport/storefront-api/pkg/payments"
	"github.com/tiendasport/storefront-api/pkg/redis"
	"github.com/tiendasport/storefront-api/pkg/tarifa"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate {
		if err := dbClient.DB().AutoMigrate(
			&models.User{},
			&models.CartItem{},
			&models.WishlistItem{},
		); err != nil {
			logg.Error(context.Background(), "failed to run auto-migration", err)
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

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	quoteStore, err := shippingsvc.NewStore(redisClient, 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote store", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.NewRepository(dbClient.DB()), quoteStore, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	tariffClient, err := tarifa.NewClient(cfg.Shipping.TariffBaseURL, tarifa.WithTimeout(cfg.Shipping.TariffTimeout))
	if err != nil {
		logg.Error(context.Background(), "failed to create tariff client", err)
		os.Exit(1)
	}

	shippingService, err := shippingsvc.NewService(cartService, tariffClient, quoteStore, cfg.Shipping)
	if err != nil {
		logg.Error(context.Background(), "failed to create shipping service", err)
		os.Exit(1)
	}

	paymentsClient, err := payments.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments client", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartService, quoteStore, paymentsClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlistsvc.NewService(wishlistsvc.NewRepository(dbClient.DB()), cartService)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting storefront api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			metricsHandler,
			authService,
			cartService,
			shippingService,
			checkoutService,
			wishlistService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
