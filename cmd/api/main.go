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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/veggieshop-backend/api/routes"
	"github.com/angelmondragon/veggieshop-backend/internal/seed"
	"github.com/angelmondragon/veggieshop-backend/pkg/auth/session"
	"github.com/angelmondragon/veggieshop-backend/pkg/config"
	"github.com/angelmondragon/veggieshop-backend/pkg/db"
	"github.com/angelmondragon/veggieshop-backend/pkg/instance"
	"github.com/angelmondragon/veggieshop-backend/pkg/logger"
	"github.com/angelmondragon/veggieshop-backend/pkg/metrics"
	"github.com/angelmondragon/veggieshop-backend/pkg/migrate"
	"github.com/angelmondragon/veggieshop-backend/pkg/redis"
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
		File:        logFileOptions(cfg.App),
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		_ = logg.Close()
		os.Exit(1)
	}
	_ = logg.Close()
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		return err
	}
	if cfg.FeatureFlags.SeedOnStartup {
		if _, err := seed.NewSeeder(dbClient, logg).Run(ctx); err != nil {
			return err
		}
	}

	var (
		redisClient *redis.Client
		sessions    *session.Manager
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
		if sessions, err = session.NewManager(redisClient); err != nil {
			return err
		}
	} else {
		logg.Warn(ctx, "redis not configured; rate limiting and token revocation disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svcs, err := routes.NewServices(routes.ServicesParams{
		Config:      cfg,
		DB:          dbClient,
		Sessions:    sessions,
		ShopMetrics: metrics.NewShopMetrics(registry),
		Logger:      logg,
	})
	if err != nil {
		return err
	}

	infra := routes.Infra{
		DB:          dbClient,
		Gatherer:    registry,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
	}
	if redisClient != nil {
		infra.Redis = redisClient
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, infra, svcs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"driver":   dbClient.Dialect(),
		"instance": instance.GetID(),
	})
	logg.Info(serveCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(serveCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func logFileOptions(app config.AppConfig) *logger.FileOptions {
	if app.LogFile == "" {
		return nil
	}
	return &logger.FileOptions{
		Path:       app.LogFile,
		MaxSizeMB:  app.LogFileMaxMB,
		MaxBackups: app.LogFileBackups,
	}
}
