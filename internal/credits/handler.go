package credits

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

// Handler exposes customer credit endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	cache    CacheBumper
}

// NewHandler constructs the credits HTTP handler.
func NewHandler(logger *slog.Logger, service *Service, cache CacheBumper) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		cache:    cache,
	}
}

// Routes mounts the credit endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/payments", h.recordPayment)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListCredits(r.Context())
	if err != nil {
		h.logger.Error("list credits", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"credits": views})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateCreditRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	credit, err := h.service.OpenCredit(r.Context(), req)
	if err != nil {
		h.logger.Error("open credit", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	httpx.JSON(w, http.StatusCreated, credit)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	view, err := h.service.GetCredit(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteCredit(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	var req RecordPaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	payment, err := h.service.RecordPayment(r.Context(), id, req)
	if err != nil {
		h.logger.Error("record credit payment", slog.Int64("credit_id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	httpx.JSON(w, http.StatusCreated, payment)
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
