package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fonda/internal/domain"
	"fonda/internal/dto"
	"fonda/internal/sales/service"
)

type stubSales struct {
	summary    *service.Summary
	result     *service.CloseResult
	batches    []domain.DayCloseBatch
	closeCalls int
}

func (s *stubSales) TodaySummary(ctx context.Context) (*service.Summary, error) {
	return s.summary, nil
}

func (s *stubSales) CloseDay(ctx context.Context) (*service.CloseResult, error) {
	s.closeCalls++
	return s.result, nil
}

func (s *stubSales) ListBatches(ctx context.Context) ([]domain.DayCloseBatch, error) {
	return s.batches, nil
}

var day = time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

func TestSummary(t *testing.T) {
	stub := &stubSales{summary: &service.Summary{
		Date:  day,
		Total: decimal.RequireFromString("55.5"),
		Orders: []domain.OrderDetail{
			{Order: domain.Order{ID: 1, Code: "COM001", Status: domain.OrderStatusCompleted, Date: day}},
		},
	}}
	c := NewController(stub, zap.NewNop())

	rec := httptest.NewRecorder()
	c.Summary(rec, httptest.NewRequest(http.MethodGet, "/api/admin/ventas", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.SalesSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-05-10", resp.Date)
	assert.Equal(t, "55.50", resp.Total)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Completado", resp.Orders[0].StatusLabel)
}

func TestClose_RequiresConfirmation(t *testing.T) {
	tests := []struct {
		name string
		body io.Reader
	}{
		{"confirm false", bytes.NewBufferString(`{"confirm":false}`)},
		{"empty object", bytes.NewBufferString(`{}`)},
		{"empty body", bytes.NewBufferString("")},
		{"no body", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSales{}
			c := NewController(stub, zap.NewNop())

			rec := httptest.NewRecorder()
			c.Close(rec, httptest.NewRequest(http.MethodPost, "/api/admin/ventas/cerrar", tt.body))

			assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
			assert.Contains(t, rec.Body.String(), "CONFIRMATION_REQUIRED")
			assert.Zero(t, stub.closeCalls)
		})
	}
}

func TestClose_InvalidJSON(t *testing.T) {
	stub := &stubSales{}
	c := NewController(stub, zap.NewNop())

	rec := httptest.NewRecorder()
	c.Close(rec, httptest.NewRequest(http.MethodPost, "/api/admin/ventas/cerrar", bytes.NewBufferString(`{"confirm":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, stub.closeCalls)
}

func TestClose_NothingToClose(t *testing.T) {
	stub := &stubSales{result: &service.CloseResult{Closed: false, Batch: domain.DayCloseBatch{Total: decimal.Zero}}}
	c := NewController(stub, zap.NewNop())

	rec := httptest.NewRecorder()
	c.Close(rec, httptest.NewRequest(http.MethodPost, "/api/admin/ventas/cerrar", bytes.NewBufferString(`{"confirm":true}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CloseDayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Closed)
	assert.Empty(t, resp.BatchID)
	assert.Equal(t, service.MsgNothingToClose, resp.Message)
}

func TestClose_Closed(t *testing.T) {
	stub := &stubSales{result: &service.CloseResult{Closed: true, Batch: domain.DayCloseBatch{
		ID:           "batch-1",
		BusinessDate: day,
		OrderCount:   2,
		Total:        decimal.RequireFromString("55.50"),
	}}}
	c := NewController(stub, zap.NewNop())

	rec := httptest.NewRecorder()
	c.Close(rec, httptest.NewRequest(http.MethodPost, "/api/admin/ventas/cerrar", bytes.NewBufferString(`{"confirm":true}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CloseDayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Closed)
	assert.Equal(t, "batch-1", resp.BatchID)
	assert.Equal(t, 2, resp.OrderCount)
	assert.Equal(t, "55.50", resp.Total)
	assert.Equal(t, service.MsgDayClosed, resp.Message)
}

func TestBatches(t *testing.T) {
	stub := &stubSales{batches: []domain.DayCloseBatch{{
		ID:           "batch-1",
		BusinessDate: day,
		OrderCount:   2,
		Total:        decimal.RequireFromString("55.5"),
		ClosedAt:     time.Date(2025, 5, 10, 22, 0, 0, 0, time.UTC),
	}}}
	c := NewController(stub, zap.NewNop())

	rec := httptest.NewRecorder()
	c.Batches(rec, httptest.NewRequest(http.MethodGet, "/api/admin/ventas/cierres", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []dto.DayCloseBatchDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "2025-05-10", resp[0].BusinessDate)
	assert.Equal(t, "2025-05-10T22:00:00Z", resp[0].ClosedAt)
}
