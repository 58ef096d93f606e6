package app

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/sr-consultoria/farmreport/internal/htmlreport"
	"github.com/sr-consultoria/farmreport/internal/observability"
	"github.com/sr-consultoria/farmreport/internal/reportgen"
	"github.com/sr-consultoria/farmreport/report"
)

// Rasterizer is a browser backend that can also be health checked.
type Rasterizer interface {
	report.Rasterizer
	report.Pinger
}

// ReportStack bundles the report pipeline shared by the server, the worker
// and the CLI.
type ReportStack struct {
	Generator  *reportgen.Generator
	HTML       *htmlreport.Builder
	Rasterizer Rasterizer
	Service    *reportgen.Service
}

// ReportDeps are the optional collaborators of the pipeline. A nil Redis
// client disables caching.
type ReportDeps struct {
	Redis   *redis.Client
	Metrics *observability.Metrics
	Logger  *slog.Logger
}

// NewRasterizer builds the configured browser backend. The chromium backend
// fails here when CHROME_PATH is not an executable file.
func NewRasterizer(cfg *Config, logger *slog.Logger) (Rasterizer, error) {
	switch cfg.Rasterizer {
	case RasterizerChromium:
		c, err := report.NewChromium(report.ChromiumConfig{
			Path:         cfg.ChromePath,
			ReadyTimeout: cfg.ChartsReadyTimeout,
			Logger:       logger,
		})
		if err != nil {
			return nil, fmt.Errorf("app: chromium rasterizer: %w", err)
		}
		return c, nil
	case RasterizerGotenberg, "":
		return report.NewClient(report.ClientConfig{
			BaseURL: cfg.GotenbergURL,
			Timeout: cfg.ChartsReadyTimeout + cfg.AppRequestTimeout,
		}), nil
	}
	return nil, fmt.Errorf("app: unknown rasterizer %q", cfg.Rasterizer)
}

// NewReportStack wires generator, HTML builder, rasterizer, cache and
// service from configuration.
func NewReportStack(cfg *Config, deps ReportDeps) (*ReportStack, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	generator := reportgen.NewGenerator(reportgen.GeneratorConfig{
		LogoPath: cfg.LogoPath,
		Logger:   logger,
	})
	builder, err := htmlreport.NewBuilder(htmlreport.Config{
		Engine:     htmlreport.ChartEngine(cfg.ChartEngine),
		ChartJSURL: cfg.ChartJSURL,
		Logo:       generator,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	rasterizer, err := NewRasterizer(cfg, logger)
	if err != nil {
		return nil, err
	}
	var cache *reportgen.Cache
	if deps.Redis != nil {
		cache = reportgen.NewCache(deps.Redis, cfg.ReportCacheTTL)
	}
	service := reportgen.NewService(reportgen.ServiceConfig{
		Generator:    generator,
		HTML:         builder,
		Rasterizer:   rasterizer,
		Cache:        cache,
		Metrics:      deps.Metrics,
		Logger:       logger,
		BuildTimeout: cfg.AppRequestTimeout,
	})
	return &ReportStack{
		Generator:  generator,
		HTML:       builder,
		Rasterizer: rasterizer,
		Service:    service,
	}, nil
}
