package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/sr-consultoria/farmreport/internal/app"
	jobmetrics "github.com/sr-consultoria/farmreport/internal/jobs"
	"github.com/sr-consultoria/farmreport/internal/observability"
	"github.com/sr-consultoria/farmreport/internal/platform/cache"
	"github.com/sr-consultoria/farmreport/internal/reportgen"
	"github.com/sr-consultoria/farmreport/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	stack, err := app.NewReportStack(cfg, app.ReportDeps{Redis: redisClient, Metrics: metrics, Logger: logger})
	if err != nil {
		logger.Error("init report pipeline", slog.Any("error", err))
		os.Exit(1)
	}

	reportJob := reportgen.NewJob(reportgen.JobConfig{
		Service: stack.Service,
		Storage: reportgen.NewStorage(cfg.ReportStorageDir),
		Metrics: jobmetrics.NewMetrics(metrics.Registerer()),
		Logger:  logger,
	})

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReportGenerate, Handler: reportJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started", slog.Int("concurrency", cfg.WorkerConcurrency), slog.String("rasterizer", cfg.Rasterizer))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
