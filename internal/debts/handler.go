package debts

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/soma-erp/soma-erp/internal/platform/httpx"
	"github.com/soma-erp/soma-erp/internal/shared"
)

// CacheBumper invalidates derived financial caches after a write.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Handler exposes debt endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	cache    CacheBumper
}

// NewHandler constructs the debts HTTP handler.
func NewHandler(logger *slog.Logger, service *Service, cache CacheBumper) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		cache:    cache,
	}
}

// Routes mounts the debt endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/payments", h.listPayments)
	r.Post("/{id}/payments", h.recordPayment)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListDebts(r.Context())
	if err != nil {
		h.logger.Error("list debts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	meta := shared.NewPagination(page, perPage, len(views))
	views = paginate(views, meta)

	httpx.JSON(w, http.StatusOK, map[string]any{"debts": views, "pagination": meta})
}

func paginate(views []View, meta shared.Pagination) []View {
	start := (meta.Page - 1) * meta.PerPage
	if start >= len(views) {
		return []View{}
	}
	end := start + meta.PerPage
	if end > len(views) {
		end = len(views)
	}
	return views[start:end]
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateDebtRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	debt, err := h.service.CreateDebt(r.Context(), req)
	if err != nil {
		h.logger.Error("create debt", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	httpx.JSON(w, http.StatusCreated, debt)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	view, err := h.service.GetDebt(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	var req UpdateDebtRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.UpdateDebt(r.Context(), id, req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteDebt(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.bump(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	payments, err := h.service.ListPayments(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"payments": payments})
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
		h.logger.Error("record debt payment", slog.Int64("debt_id", id), slog.Any("error", err))
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
