package controller

import (
	"context"
	"net/http"
	"time"

	"fonda/internal/commons"
	"fonda/internal/domain"
	"fonda/internal/dto"
	"fonda/internal/infrastructure/logger"
	ordercontroller "fonda/internal/order/controller"
	"fonda/internal/sales/service"

	"go.uber.org/zap"
)

type SalesService interface {
	TodaySummary(ctx context.Context) (*service.Summary, error)
	CloseDay(ctx context.Context) (*service.CloseResult, error)
	ListBatches(ctx context.Context) ([]domain.DayCloseBatch, error)
}

type Controller struct {
	service SalesService
	logger  *zap.Logger
}

func NewController(service SalesService, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

func (c *Controller) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.service.TodaySummary(r.Context())
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.SalesSummaryResponse{
		Date:   domain.FormatDay(summary.Date),
		Total:  dto.Money(summary.Total),
		Count:  len(summary.Orders),
		Orders: ordercontroller.ToOrderDetailResponses(summary.Orders),
	}, c.logger)
}

func (c *Controller) Close(w http.ResponseWriter, r *http.Request) {
	var req dto.CloseDayRequest
	if !commons.DecodeOptionalJSON(w, r, &req) {
		return
	}

	if !req.Confirm {
		commons.WriteConfirmationRequired(w, r, "¿Estás seguro de cerrar el día? Esto moverá los pedidos completados al historial y reiniciará el total a 0.")
		return
	}

	result, err := c.service.CloseDay(r.Context())
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	resp := dto.CloseDayResponse{
		TraceID:    logger.TraceID(r.Context()),
		Closed:     result.Closed,
		OrderCount: result.Batch.OrderCount,
		Total:      dto.Money(result.Batch.Total),
		Message:    service.MsgNothingToClose,
	}
	if result.Closed {
		resp.BatchID = result.Batch.ID
		resp.Message = service.MsgDayClosed
	}

	commons.WriteJSON(w, http.StatusOK, resp, c.logger)
}

func (c *Controller) Batches(w http.ResponseWriter, r *http.Request) {
	batches, err := c.service.ListBatches(r.Context())
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	out := make([]dto.DayCloseBatchDTO, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.DayCloseBatchDTO{
			ID:           b.ID,
			BusinessDate: domain.FormatDay(b.BusinessDate),
			OrderCount:   b.OrderCount,
			Total:        dto.Money(b.Total),
			ClosedAt:     b.ClosedAt.Format(time.RFC3339),
		})
	}

	commons.WriteJSON(w, http.StatusOK, out, c.logger)
}
