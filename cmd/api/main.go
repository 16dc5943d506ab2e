package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/cducote/pawstock-backend/api/controllers"
	"github.com/cducote/pawstock-backend/api/routes"
	"github.com/cducote/pawstock-backend/internal/catalog"
	"github.com/cducote/pawstock-backend/internal/events"
	"github.com/cducote/pawstock-backend/internal/ledger"
	"github.com/cducote/pawstock-backend/internal/stockview"
	"github.com/cducote/pawstock-backend/pkg/config"
	"github.com/cducote/pawstock-backend/pkg/db"
	"github.com/cducote/pawstock-backend/pkg/logger"
	"github.com/cducote/pawstock-backend/pkg/metrics"
	"github.com/cducote/pawstock-backend/pkg/migrate"
	"github.com/cducote/pawstock-backend/pkg/redis"
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

	// Redis is optional; without it stock events stay in-process.
	var (
		redisClient *redis.Client
		publisher   events.Publisher
		redisPinger controllers.Pinger
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		publisher = redisClient
		redisPinger = redisClient
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	stockMetrics := metrics.NewStockMetrics(registry)

	bus := events.NewBus(logg, cfg.Events.StockChannel, publisher)

	stockService := stockview.NewService(stockview.NewRepository(dbClient.DB()), bus)
	catalogService := catalog.NewService(catalog.NewRepository(dbClient.DB()), logg, cfg.Stock.DefaultReorderLevel, stockService)
	ledgerService := ledger.NewService(ledger.NewRepository(dbClient.DB()), dbClient, bus, stockMetrics, logg)

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
			Config:         cfg,
			Logger:         logg,
			DBPinger:       dbClient,
			RedisPinger:    redisPinger,
			CatalogService: catalogService,
			LedgerService:  ledgerService,
			StockService:   stockService,
			MetricsGateway: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
