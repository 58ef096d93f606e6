// Package reporthttp exposes report generation over HTTP.
package reporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/sr-consultoria/farmreport/internal/platform/httpx"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
	"github.com/sr-consultoria/farmreport/internal/reportgen"
	"github.com/sr-consultoria/farmreport/jobs"
)

// ReportService generates reports synchronously.
type ReportService interface {
	Generate(ctx context.Context, kind reportgen.Kind, data *reportdata.ReportData) (*reportgen.Result, error)
}

// JobQueue enqueues report jobs.
type JobQueue interface {
	EnqueueReport(ctx context.Context, payload jobs.ReportPayload) (*asynq.TaskInfo, error)
}

// JobInspector reports the state of queued jobs.
type JobInspector interface {
	JobState(ctx context.Context, id string) (jobs.State, error)
}

// Config wires the handler.
type Config struct {
	Service        ReportService
	Queue          JobQueue
	Inspector      JobInspector
	Storage        *reportgen.Storage
	Logger         *slog.Logger
	RequestTimeout time.Duration
	RateLimit      int
}

// Handler serves the /reports endpoints.
type Handler struct {
	service   ReportService
	queue     JobQueue
	inspector JobInspector
	storage   *reportgen.Storage
	logger    *slog.Logger
	timeout   time.Duration
	rateLimit int
	newID     func() string
}

// NewHandler constructs the report handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Handler{
		service:   cfg.Service,
		queue:     cfg.Queue,
		inspector: cfg.Inspector,
		storage:   cfg.Storage,
		logger:    logger,
		timeout:   timeout,
		rateLimit: cfg.RateLimit,
		newID:     uuid.NewString,
	}
}

type enqueueRequest struct {
	Kind string                 `json:"kind"`
	Data *reportdata.ReportData `json:"data"`
}

type enqueueResponse struct {
	JobID string `json:"jobId"`
	Kind  string `json:"kind"`
	State string `json:"state"`
}

func (h *Handler) handleGenerate(kind reportgen.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data reportdata.ReportData
		if err := httpx.DecodeJSON(w, r, &data); err != nil {
			httpx.RespondError(w, err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		res, err := h.service.Generate(ctx, kind, &data)
		if err != nil {
			h.respondGenerateError(w, r, err)
			return
		}
		cache := "MISS"
		if res.Cached {
			cache = "HIT"
		}
		w.Header().Set("Content-Type", res.ContentType)
		w.Header().Set("X-Report-Cache", cache)
		if kind != reportgen.KindHTML {
			w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", fileName(&data, kind)))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Body)
	}
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var data reportdata.ReportData
	if err := httpx.DecodeJSON(w, r, &data); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := reportdata.Validate(&data); err != nil {
		respondInvalid(w, err)
		return
	}
	sections := data.PresentSections()
	names := make([]string, 0, len(sections))
	for _, s := range sections {
		names = append(names, string(s))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"valid": true, "sections": names})
}

func (h *Handler) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	if h.queue == nil {
		httpx.RespondError(w, fmt.Errorf("report queue: %w", httpx.ErrUnavailable))
		return
	}
	var req enqueueRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if req.Kind == "" {
		req.Kind = string(reportgen.KindPDF)
	}
	kind, err := reportgen.ParseKind(req.Kind)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	if err := reportdata.Validate(req.Data); err != nil {
		respondInvalid(w, err)
		return
	}
	raw, err := json.Marshal(req.Data)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	id := h.newID()
	info, err := h.queue.EnqueueReport(r.Context(), jobs.ReportPayload{JobID: id, Kind: string(kind), Data: raw})
	if err != nil {
		h.logger.Error("enqueue report", slog.String("job_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	state := "pending"
	if info != nil {
		state = info.State.String()
	}
	w.Header().Set("Location", "/reports/jobs/"+id)
	httpx.JSON(w, http.StatusAccepted, enqueueResponse{JobID: id, Kind: string(kind), State: state})
}

func (h *Handler) handleJobState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid job id")
		return
	}
	if h.inspector == nil {
		httpx.RespondError(w, fmt.Errorf("job inspector: %w", httpx.ErrUnavailable))
		return
	}
	state, err := h.inspector.JobState(r.Context(), id)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			httpx.RespondError(w, fmt.Errorf("job %s: %w", id, httpx.ErrNotFound))
			return
		}
		h.logger.Error("job state", slog.String("job_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, state)
}

func (h *Handler) handleJobFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid job id")
		return
	}
	if h.storage == nil {
		httpx.RespondError(w, fmt.Errorf("report storage: %w", httpx.ErrUnavailable))
		return
	}
	f, kind, err := h.storage.Open(id)
	if err != nil {
		if errors.Is(err, reportgen.ErrReportNotFound) {
			httpx.RespondError(w, fmt.Errorf("job %s: %w", id, httpx.ErrNotFound))
			return
		}
		httpx.RespondError(w, err)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Type", kind.ContentType())
	if kind != reportgen.KindHTML {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+kind.Extension()))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Warn("stream report file", slog.String("job_id", id), slog.Any("error", err))
	}
}

func (h *Handler) respondGenerateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reportdata.ErrInvalid):
		respondInvalid(w, err)
	case errors.Is(err, reportgen.ErrRasterizerUnavailable):
		httpx.RespondError(w, fmt.Errorf("%v: %w", err, httpx.ErrUnavailable))
	case errors.Is(err, context.DeadlineExceeded):
		httpx.Problem(w, http.StatusGatewayTimeout, "Timeout", "report generation timed out")
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		h.logger.Info("report request cancelled")
	case errors.Is(err, context.Canceled):
		h.logger.Warn("report generation cancelled", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Service Unavailable", "report generation was cancelled")
	default:
		h.logger.Error("generate report", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

func respondInvalid(w http.ResponseWriter, err error) {
	httpx.ProblemWith(w, http.StatusUnprocessableEntity, "Validation Failed", "report data is invalid", errorMessages(err))
}

func errorMessages(err error) []string {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, errorMessages(e)...)
		}
		return out
	}
	return []string{err.Error()}
}

func fileName(data *reportdata.ReportData, kind reportgen.Kind) string {
	org := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, strings.TrimSpace(data.OrganizationName))
	if org == "" {
		org = "relatorio"
	}
	return strings.ToLower(org) + kind.Extension()
}
