package main

import (
	"context"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/grocerly/grocerly-backend/api/routes"
	cartsvc "github.com/grocerly/grocerly-backend/internal/cart"
	"github.com/grocerly/grocerly-backend/internal/catalog"
	"github.com/grocerly/grocerly-backend/internal/drafts"
	productsvc "github.com/grocerly/grocerly-backend/internal/products"
	"github.com/grocerly/grocerly-backend/pkg/config"
	"github.com/grocerly/grocerly-backend/pkg/db"
	"github.com/grocerly/grocerly-backend/pkg/logger"
	"github.com/grocerly/grocerly-backend/pkg/metrics"
	"github.com/grocerly/grocerly-backend/pkg/migrate"
	"github.com/grocerly/grocerly-backend/pkg/redis"
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

	// Idempotency caching is optional; without redis the API still serves
	// every route.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency caching disabled")
	}

	symbol := cfg.Currency.Symbol

	productRepo := productsvc.NewRepository(dbClient.DB())
	cartRepo := cartsvc.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalogRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productRepo, dbClient, cartsvc.NewReconciler(cartRepo, symbol), catalogService, symbol)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartRepo, dbClient, productService, catalogService, symbol)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	draftService, err := drafts.NewService(productService, symbol)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft service", err)
		os.Exit(1)
	}

	if err := reseedPendingCounters(context.Background(), productService, catalogService); err != nil {
		logg.Error(context.Background(), "failed to reseed pending counters", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,
			Registry:    registry,
			Products:    productService,
			Cart:        cartService,
			Catalog:     catalogService,
			Drafts:      draftService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// reseedPendingCounters makes sure every product has a pending-quantity row,
// covering rows created before the counter table existed.
func reseedPendingCounters(ctx context.Context, products productsvc.Service, pending catalog.Service) error {
	rows, err := products.ListProducts(ctx)
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return pending.Reseed(ctx, ids)
}
