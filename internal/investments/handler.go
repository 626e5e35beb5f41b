package investments

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/soma-erp/soma-erp/internal/platform/httpx"
)

// CacheBumper invalidates derived financial caches after a write.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Handler exposes investment endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	cache    CacheBumper
}

// NewHandler constructs the investments HTTP handler.
func NewHandler(logger *slog.Logger, service *Service, cache CacheBumper) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		cache:    cache,
	}
}

// Routes mounts the investment endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListInvestments(r.Context())
	if err != nil {
		h.logger.Error("list investments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"investments": rows})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateInvestmentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	inv, err := h.service.RegisterInvestment(r.Context(), req)
	if err != nil {
		h.logger.Error("register investment", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive integer")
		return
	}
	if err := h.service.DeleteInvestment(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) bump(ctx context.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Bump(ctx); err != nil {
		h.logger.Warn("finance cache bump", slog.Any("error", err))
	}
}
