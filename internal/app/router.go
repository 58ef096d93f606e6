package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sr-consultoria/farmreport/internal/assets"
	"github.com/sr-consultoria/farmreport/internal/observability"
	"github.com/sr-consultoria/farmreport/internal/platform/httpx"
	reporthttp "github.com/sr-consultoria/farmreport/internal/reportgen/http"
	"github.com/sr-consultoria/farmreport/jobs"
	"github.com/sr-consultoria/farmreport/report"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics

	ReportHandler     *reporthttp.Handler
	RasterizerHandler *report.Handler
	AssetHandler      *assets.Handler
	JobHandler        *jobs.Handler
}

// NewRouter constructs the chi.Router with farmreport defaults.
func NewRouter(params RouterParams) http.Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	if params.ReportHandler != nil {
		params.ReportHandler.MountRoutes(r)
	}
	if params.RasterizerHandler != nil {
		r.Route("/reports/rasterizer", params.RasterizerHandler.MountRoutes)
	}
	if params.AssetHandler != nil {
		r.Route("/assets", params.AssetHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", r.URL.Path)
	})
	return r
}
