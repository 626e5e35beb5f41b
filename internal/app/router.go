package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/soma-erp/soma-erp/internal/credits"
	"github.com/soma-erp/soma-erp/internal/debts"
	"github.com/soma-erp/soma-erp/internal/expenses"
	financehttp "github.com/soma-erp/soma-erp/internal/finance/http"
	"github.com/soma-erp/soma-erp/internal/investments"
	"github.com/soma-erp/soma-erp/internal/observability"
	"github.com/soma-erp/soma-erp/internal/sales"
	"github.com/soma-erp/soma-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	SalesHandler      *sales.Handler
	ExpensesHandler   *expenses.Handler
	DebtsHandler      *debts.Handler
	CreditsHandler    *credits.Handler
	InvestmentHandler *investments.Handler
	FinanceHandler    *financehttp.Handler
	JobHandler        *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with Soma defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if params.SalesHandler != nil {
			r.Route("/sales", params.SalesHandler.Routes)
			r.Route("/services", params.SalesHandler.ServiceRoutes)
		}
		if params.ExpensesHandler != nil {
			r.Route("/expenses", params.ExpensesHandler.Routes)
		}
		if params.DebtsHandler != nil {
			r.Route("/debts", params.DebtsHandler.Routes)
		}
		if params.CreditsHandler != nil {
			r.Route("/credits", params.CreditsHandler.Routes)
		}
		if params.InvestmentHandler != nil {
			r.Route("/investments", params.InvestmentHandler.Routes)
		}
		if params.FinanceHandler != nil {
			r.Route("/finance", params.FinanceHandler.Routes)
		}
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
