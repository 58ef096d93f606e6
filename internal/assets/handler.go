package assets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sr-consultoria/farmreport/internal/platform/httpx"
	"github.com/sr-consultoria/farmreport/internal/reportdata"
)

// OrganizationHeader scopes every asset request to one organization.
const OrganizationHeader = "X-Organization-ID"

// AssetService is the behaviour the handler needs.
type AssetService interface {
	List(ctx context.Context, org uuid.UUID, kind Kind) ([]Asset, error)
	Create(ctx context.Context, org uuid.UUID, kind Kind, body []byte) (Asset, error)
	Delete(ctx context.Context, org uuid.UUID, kind Kind, id uuid.UUID) error
	Import(ctx context.Context, org uuid.UUID, kind Kind, r io.Reader) (ImportResult, error)
	InvestmentsSummary(ctx context.Context, org uuid.UUID) (*reportdata.InvestmentsData, error)
}

// Handler exposes the asset registers over HTTP.
type Handler struct {
	service AssetService
	logger  *slog.Logger
}

// NewHandler builds the handler.
func NewHandler(service AssetService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// MountRoutes registers asset routes under the current router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/investments/summary", h.summary)
	r.Route("/{kind}", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Post("/import", h.importCSV)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (uuid.UUID, Kind, bool) {
	org, err := uuid.Parse(r.Header.Get(OrganizationHeader))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "missing or invalid "+OrganizationHeader)
		return uuid.Nil, "", false
	}
	kind := Kind("")
	if raw := chi.URLParam(r, "kind"); raw != "" {
		kind, err = ParseKind(raw)
		if err != nil {
			httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
			return uuid.Nil, "", false
		}
	}
	return org, kind, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	org, kind, ok := h.scope(w, r)
	if !ok {
		return
	}
	items, err := h.service.List(r.Context(), org, kind)
	if err != nil {
		h.fail(w, "list assets", err)
		return
	}
	if items == nil {
		items = []Asset{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"kind": kind, "items": items})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	org, kind, ok := h.scope(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	asset, err := h.service.Create(r.Context(), org, kind, body)
	if err != nil {
		var entry *EntryError
		if errors.As(err, &entry) {
			httpx.ProblemWith(w, http.StatusUnprocessableEntity, "Validation Failed", entry.Error(), entry.Fields)
			return
		}
		h.fail(w, "create asset", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, asset)
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	org, kind, ok := h.scope(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, httpx.MaxBodyBytes)
	body := io.Reader(r.Body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "multipart upload needs a \"file\" part")
			return
		}
		defer func() { _ = file.Close() }()
		body = file
	}
	res, err := h.service.Import(r.Context(), org, kind, body)
	if err != nil {
		var imp *ImportError
		if errors.As(err, &imp) {
			httpx.ProblemWith(w, http.StatusUnprocessableEntity, "Validation Failed", imp.Error(), imp.Errors)
			return
		}
		h.fail(w, "import assets", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, res)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	org, kind, ok := h.scope(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid id")
		return
	}
	if err := h.service.Delete(r.Context(), org, kind, id); err != nil {
		h.fail(w, "delete asset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	org, _, ok := h.scope(w, r)
	if !ok {
		return
	}
	data, err := h.service.InvestmentsSummary(r.Context(), org)
	if err != nil {
		h.fail(w, "investments summary", err)
		return
	}
	httpx.JSON(w, http.StatusOK, data)
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrUnknownKind) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
		return
	}
	if !errors.Is(err, httpx.ErrNotFound) && !errors.Is(err, httpx.ErrDuplicate) &&
		!errors.Is(err, httpx.ErrValidation) && !errors.Is(err, httpx.ErrBadRequest) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}
