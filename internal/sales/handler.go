package sales

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/soma-erp/soma-erp/internal/platform/httpx"
)

// CacheBumper invalidates derived financial caches after a write.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Handler exposes sales and cyber service endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	cache    CacheBumper
}

// NewHandler constructs the sales HTTP handler.
func NewHandler(logger *slog.Logger, service *Service, cache CacheBumper) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		cache:    cache,
	}
}

// Routes mounts the sale endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/{id}/returns", h.recordReturn)
	r.Delete("/{id}", h.delete)
}

// ServiceRoutes mounts the cyber service endpoints.
func (h *Handler) ServiceRoutes(r chi.Router) {
	r.Get("/", h.listServices)
	r.Post("/", h.createService)
	r.Delete("/{id}", h.deleteService)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Range", err.Error())
		return
	}
	rows, err := h.service.ListSales(r.Context(), rng)
	if err != nil {
		h.logger.Error("list sales", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"sales": rows})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	sale, err := h.service.RecordSale(r.Context(), req)
	if err != nil {
		h.logger.Error("record sale", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	httpx.JSON(w, http.StatusCreated, sale)
}

func (h *Handler) recordReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	reversal, err := h.service.RecordReturn(r.Context(), id)
	if err != nil {
		h.logger.Error("record return", slog.Int64("sale_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	httpx.JSON(w, http.StatusCreated, reversal)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteSale(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Range", err.Error())
		return
	}
	rows, err := h.service.ListServices(r.Context(), rng)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"services": rows})
}

func (h *Handler) createService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	svc, err := h.service.RecordService(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	httpx.JSON(w, http.StatusCreated, svc)
}

func (h *Handler) deleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteService(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) bump(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Bump(ctx); err != nil {
		h.logger.Warn("finance cache bump", slog.Any("error", err))
	}
}

func parseRange(r *http.Request) (DateRange, error) {
	var rng DateRange
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return DateRange{}, err
		}
		rng.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return DateRange{}, err
		}
		rng.To = t.AddDate(0, 0, 1)
	}
	return rng, nil
}
