package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tontonphone/storefront-backend/api/routes"
	"github.com/tontonphone/storefront-backend/internal/auth"
	"github.com/tontonphone/storefront-backend/internal/cart"
	"github.com/tontonphone/storefront-backend/internal/catalog"
	checkoutsvc "github.com/tontonphone/storefront-backend/internal/checkout"
	"github.com/tontonphone/storefront-backend/internal/orders"
	"github.com/tontonphone/storefront-backend/internal/prefs"
	"github.com/tontonphone/storefront-backend/internal/users"
	"github.com/tontonphone/storefront-backend/internal/wishlist"
	"github.com/tontonphone/storefront-backend/pkg/auth/session"
	"github.com/tontonphone/storefront-backend/pkg/config"
	"github.com/tontonphone/storefront-backend/pkg/db"
	"github.com/tontonphone/storefront-backend/pkg/logger"
	"github.com/tontonphone/storefront-backend/pkg/metrics"
	"github.com/tontonphone/storefront-backend/pkg/migrate"
	"github.com/tontonphone/storefront-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
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

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	productRepo := catalog.NewRepository(gormDB)
	cartRepo := cart.NewRepository(gormDB)
	wishlistRepo := wishlist.NewRepository(gormDB)
	orderRepo := orders.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	exitOn(logg, "auth service", err)

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		SessionManager: sessionManager,
		PasswordConfig: cfg.Password,
		JWTConfig:      cfg.JWT,
	})
	exitOn(logg, "register service", err)

	catalogService, err := catalog.NewService(catalog.ServiceParams{ProductRepo: productRepo})
	exitOn(logg, "catalog service", err)

	cartService, err := cart.NewService(cart.ServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		CartConfig:  cfg.Cart,
	})
	exitOn(logg, "cart service", err)

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		WishlistRepo: wishlistRepo,
		ProductRepo:  productRepo,
	})
	exitOn(logg, "wishlist service", err)

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		DB:         dbClient,
		CartRepo:   cartRepo,
		OrderRepo:  orderRepo,
		CartConfig: cfg.Cart,
	})
	exitOn(logg, "checkout service", err)

	ordersService, err := orders.NewService(orders.ServiceParams{OrderRepo: orderRepo})
	exitOn(logg, "orders service", err)

	prefsService, err := prefs.NewService(prefs.ServiceParams{KV: redisClient})
	exitOn(logg, "preferences service", err)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.RouterParams{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Redis:           redisClient,
		SessionManager:  sessionManager,
		Metrics:         httpMetrics,
		MetricsRegistry: registry,
		AuthService:     authService,
		RegisterService: registerService,
		CatalogService:  catalogService,
		CartService:     cartService,
		WishlistService: wishlistService,
		CheckoutService: checkoutService,
		OrdersService:   ordersService,
		PrefsService:    prefsService,
	})

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
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func exitOn(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
