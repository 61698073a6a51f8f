package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/listplus/listplus-backend/api/routes"
	"github.com/listplus/listplus-backend/internal/favourites"
	"github.com/listplus/listplus-backend/internal/groups"
	"github.com/listplus/listplus-backend/internal/invite"
	"github.com/listplus/listplus-backend/internal/lists"
	"github.com/listplus/listplus-backend/internal/shops"
	"github.com/listplus/listplus-backend/internal/users"
	"github.com/listplus/listplus-backend/pkg/config"
	"github.com/listplus/listplus-backend/pkg/db"
	"github.com/listplus/listplus-backend/pkg/logger"
	"github.com/listplus/listplus-backend/pkg/metrics"
	"github.com/listplus/listplus-backend/pkg/migrate"
	"github.com/listplus/listplus-backend/pkg/redis"
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
		if err := multierr.Combine(redisClient.Close(), dbClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing clients", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	codes := invite.NewGenerator(cfg.Invite.FrontendBaseURL)

	userService, err := users.NewService(users.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}
	listService, err := lists.NewService(lists.ServiceParams{
		Repo:            lists.NewRepository(dbClient.DB()),
		Codes:           codes,
		CodeMaxAttempts: cfg.Invite.MaxAttempts,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create list service", err)
		os.Exit(1)
	}
	groupService, err := groups.NewService(groups.ServiceParams{
		Repo:            groups.NewRepository(dbClient.DB()),
		Codes:           codes,
		CodeMaxAttempts: cfg.Invite.MaxAttempts,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create group service", err)
		os.Exit(1)
	}
	shopRepo := shops.NewRepository(dbClient.DB())
	shopService, err := shops.NewService(shopRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create shop service", err)
		os.Exit(1)
	}
	favouriteService, err := favourites.NewService(favourites.ServiceParams{
		Repo:     favourites.NewRepository(dbClient.DB()),
		ShopRepo: shopRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create favourites service", err)
		os.Exit(1)
	}

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
			registry,
			httpMetrics,
			userService,
			listService,
			groupService,
			shopService,
			favouriteService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
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
