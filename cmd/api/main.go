package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/brewopshq/brewhaus-backend/api/controllers"
	"github.com/brewopshq/brewhaus-backend/api/routes"
	"github.com/brewopshq/brewhaus-backend/internal/batches"
	"github.com/brewopshq/brewhaus-backend/internal/dashboard"
	"github.com/brewopshq/brewhaus-backend/internal/grn"
	"github.com/brewopshq/brewhaus-backend/internal/ingredients"
	"github.com/brewopshq/brewhaus-backend/internal/locations"
	"github.com/brewopshq/brewhaus-backend/internal/orders"
	"github.com/brewopshq/brewhaus-backend/internal/products"
	"github.com/brewopshq/brewhaus-backend/internal/recipes"
	"github.com/brewopshq/brewhaus-backend/internal/users"
	"github.com/brewopshq/brewhaus-backend/pkg/config"
	"github.com/brewopshq/brewhaus-backend/pkg/db"
	"github.com/brewopshq/brewhaus-backend/pkg/logger"
	"github.com/brewopshq/brewhaus-backend/pkg/metrics"
	"github.com/brewopshq/brewhaus-backend/pkg/migrate"
	"github.com/brewopshq/brewhaus-backend/pkg/redis"
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
		logg.Warn(context.Background(), "redis not configured; dashboard cache disabled")
	}

	conn := dbClient.DB()

	ingredientRepo := ingredients.NewRepository(conn)
	recipeRepo := recipes.NewRepository(conn)
	productRepo := products.NewRepository(conn)
	userRepo := users.NewRepository(conn)

	ingredientSvc, err := ingredients.NewService(ingredientRepo)
	exitOnError(logg, "ingredient service", err)
	recipeSvc, err := recipes.NewService(recipeRepo, ingredientRepo, dbClient)
	exitOnError(logg, "recipe service", err)
	grnSvc, err := grn.NewService(grn.NewRepository(conn), ingredientRepo, dbClient)
	exitOnError(logg, "grn service", err)
	productSvc, err := products.NewService(productRepo, recipeRepo)
	exitOnError(logg, "product service", err)
	batchSvc, err := batches.NewService(batches.NewRepository(conn), productRepo, recipeRepo, dbClient)
	exitOnError(logg, "batch service", err)
	orderSvc, err := orders.NewService(orders.NewRepository(conn), productRepo, dbClient)
	exitOnError(logg, "order service", err)
	userSvc, err := users.NewService(userRepo)
	exitOnError(logg, "user service", err)
	locationSvc, err := locations.NewService(locations.NewRepository(conn), userRepo)
	exitOnError(logg, "location service", err)

	var dashboardCache dashboard.Cache
	if redisClient != nil {
		dashboardCache = redisClient
	}
	dashboardSvc, err := dashboard.NewService(dashboard.NewRepository(conn), dashboardCache, cfg.Dashboard.CacheTTL)
	exitOnError(logg, "dashboard service", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	var cachePinger controllers.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	handler := routes.NewRouter(cfg, logg, dbClient, cachePinger, httpMetrics, registry, routes.Services{
		Ingredients: ingredientSvc,
		Recipes:     recipeSvc,
		GRNs:        grnSvc,
		Products:    productSvc,
		Batches:     batchSvc,
		Orders:      orderSvc,
		Users:       userSvc,
		Locations:   locationSvc,
		Dashboard:   dashboardSvc,
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
		Handler: handler,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func exitOnError(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
