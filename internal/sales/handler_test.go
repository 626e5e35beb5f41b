package sales

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestReturnEndpointRejectsReversalRows(t *testing.T) {
	ctx := context.Background()
	repo := newMemorySalesRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, logger)
	h := NewHandler(logger, svc, nil)

	sale, err := svc.RecordSale(ctx, CreateSaleRequest{
		ProductID: 2, Title: "Pen", QuantitySold: 1,
		TotalSale: 20, Profit: 5, PaymentMethod: "cash", SoldBy: "otieno",
	})
	require.NoError(t, err)
	reversal, err := svc.RecordReturn(ctx, sale.ID)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Route("/sales", h.Routes)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales/"+strconv.FormatInt(reversal.ID, 10)+"/returns", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid Status")
	require.Contains(t, rec.Body.String(), "reversal")
}

func TestReturnEndpointUnknownSale(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(logger, NewService(newMemorySalesRepo(), logger), nil)

	r := chi.NewRouter()
	r.Route("/sales", h.Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales/999/returns", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
}
