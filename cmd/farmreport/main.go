package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sr-consultoria/farmreport/internal/app"
	"github.com/sr-consultoria/farmreport/internal/assets"
	"github.com/sr-consultoria/farmreport/internal/observability"
	"github.com/sr-consultoria/farmreport/internal/platform/cache"
	"github.com/sr-consultoria/farmreport/internal/platform/db"
	"github.com/sr-consultoria/farmreport/internal/reportgen"
	reporthttp "github.com/sr-consultoria/farmreport/internal/reportgen/http"
	"github.com/sr-consultoria/farmreport/jobs"
	"github.com/sr-consultoria/farmreport/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, db.Config{DSN: cfg.PGDSN, MaxConns: cfg.PGMaxConns})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisOpts := cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	redisClient, err := cache.New(ctx, redisOpts)
	if err != nil {
		logger.Warn("redis unavailable, report cache disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	stack, err := app.NewReportStack(cfg, app.ReportDeps{Redis: redisClient, Metrics: metrics, Logger: logger})
	if err != nil {
		logger.Error("init report pipeline", slog.Any("error", err))
		os.Exit(1)
	}

	asynqOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	jobClient, err := jobs.NewClient(asynqOpts)
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(asynqOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("job inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	reportHandler := reporthttp.NewHandler(reporthttp.Config{
		Service:        stack.Service,
		Queue:          jobClient,
		Inspector:      jobHandler,
		Storage:        reportgen.NewStorage(cfg.ReportStorageDir),
		Logger:         logger,
		RequestTimeout: cfg.AppRequestTimeout,
		RateLimit:      cfg.RateLimitPerMin,
	})
	rasterizerHandler := report.NewHandler(cfg.Rasterizer, stack.Rasterizer, logger)

	assetService := assets.NewService(assets.NewRepository(dbpool), logger)
	assetHandler := assets.NewHandler(assetService, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Metrics:           metrics,
		ReportHandler:     reportHandler,
		RasterizerHandler: rasterizerHandler,
		AssetHandler:      assetHandler,
		JobHandler:        jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("rasterizer", cfg.Rasterizer))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
