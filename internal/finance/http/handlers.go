// Package http serves the finance dashboard and report endpoints.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/soma-erp/soma-erp/internal/finance"
	"github.com/soma-erp/soma-erp/internal/finance/export"
	"github.com/soma-erp/soma-erp/internal/platform/httpx"
)

// Handler exposes the aggregated dashboard as JSON and CSV.
type Handler struct {
	logger  *slog.Logger
	service *finance.Service
}

// NewHandler constructs the finance HTTP handler.
func NewHandler(logger *slog.Logger, service *finance.Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// Routes mounts the finance endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/report", h.report)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("dashboard build failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dash)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	dash, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("report build failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	asOf := dash.GeneratedAt
	if asOf.IsZero() {
		asOf = time.Now()
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(asOf)))
	if err := export.WriteFinancialCSV(w, dash); err != nil {
		h.logger.Error("report write failed", slog.Any("error", err))
	}
}
