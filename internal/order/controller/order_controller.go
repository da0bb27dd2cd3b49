package controller

import (
	"context"
	"fmt"
	"net/http"

	"fonda/internal/commons"
	"fonda/internal/domain"
	"fonda/internal/dto"
	apperrors "fonda/internal/errors"
	"fonda/internal/infrastructure/logger"
	"fonda/internal/order/usecase"

	"go.uber.org/zap"
)

const msgOrderNotFound = "No se encontró un pedido con ese código."

type SubmitOrderUseCase interface {
	Submit(ctx context.Context, req usecase.OrderRequest) (*usecase.SubmitResult, error)
	TransferDetails(ctx context.Context) (*domain.PaymentMethodInfo, error)
}

type FulfillmentService interface {
	Search(ctx context.Context, code string) (*domain.OrderDetail, error)
	Finalize(ctx context.Context, id uint) error
	ListPending(ctx context.Context) ([]domain.OrderDetail, error)
	Delete(ctx context.Context, id uint) (*domain.Order, error)
}

type Controller struct {
	useCase     SubmitOrderUseCase
	fulfillment FulfillmentService
	logger      *zap.Logger
}

func NewController(useCase SubmitOrderUseCase, fulfillment FulfillmentService, logger *zap.Logger) *Controller {
	return &Controller{
		useCase:     useCase,
		fulfillment: fulfillment,
		logger:      logger,
	}
}

func (c *Controller) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitOrderRequest
	if !commons.DecodeJSON(w, r, &req) {
		return
	}

	result, err := c.useCase.Submit(r.Context(), toOrderRequest(req))
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	resp := dto.SubmitOrderResponse{
		TraceID: logger.TraceID(r.Context()),
		OrderID: result.Order.ID,
		Code:    result.Order.Code,
		Total:   dto.Money(result.Order.TotalPrice),
		Message: result.Message,
	}
	if result.Transfer != nil {
		resp.Transfer = toTransferResponse(*result.Transfer)
	}

	commons.WriteJSON(w, http.StatusCreated, resp, c.logger)
}

func (c *Controller) Transfer(w http.ResponseWriter, r *http.Request) {
	info, err := c.useCase.TransferDetails(r.Context())
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, toTransferResponse(*info), c.logger)
}

// Search responde "no encontrado" tambien cuando la consulta falla;
// el error real solo queda en el log.
func (c *Controller) Search(w http.ResponseWriter, r *http.Request) {
	detail, err := c.fulfillment.Search(r.Context(), r.URL.Query().Get("codigo"))
	if err != nil {
		if _, ok := apperrors.IsValidationError(err); ok {
			commons.HandleError(w, r, err, c.logger)
			return
		}
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			logger.FromContext(r.Context(), c.logger).Error("order search failed", zap.Error(err))
		}
		commons.WriteError(w, r, http.StatusNotFound, "NOT_FOUND", msgOrderNotFound)
		return
	}

	commons.WriteJSON(w, http.StatusOK, ToOrderDetailResponse(*detail), c.logger)
}

func (c *Controller) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := commons.URLParamID(w, r, "orderId")
	if !ok {
		return
	}

	if err := c.fulfillment.Finalize(r.Context(), id); err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		TraceID: logger.TraceID(r.Context()),
		Message: "Pedido finalizado exitosamente.",
	}, c.logger)
}

func (c *Controller) ListPending(w http.ResponseWriter, r *http.Request) {
	orders, err := c.fulfillment.ListPending(r.Context())
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.OrderListResponse{Orders: ToOrderDetailResponses(orders)}, c.logger)
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := commons.URLParamID(w, r, "orderId")
	if !ok {
		return
	}

	if !commons.Confirmed(r) {
		commons.WriteConfirmationRequired(w, r, "¿Estás seguro de que quieres eliminar el pedido? Esta acción no se puede deshacer.")
		return
	}

	order, err := c.fulfillment.Delete(r.Context(), id)
	if err != nil {
		commons.HandleError(w, r, err, c.logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		TraceID: logger.TraceID(r.Context()),
		Message: fmt.Sprintf("Pedido #%s eliminado exitosamente.", order.Code),
	}, c.logger)
}

func toOrderRequest(req dto.SubmitOrderRequest) usecase.OrderRequest {
	items := make([]usecase.ItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = usecase.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Note:      item.Note,
		}
	}

	return usecase.OrderRequest{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		PaymentMethod: req.PaymentMethod,
		DeliveryType:  req.DeliveryType,
		Address:       req.Address,
		Phone:         req.Phone,
		Items:         items,
	}
}

func toTransferResponse(info domain.PaymentMethodInfo) *dto.TransferDetailsResponse {
	return &dto.TransferDetailsResponse{
		Bank:          info.Bank,
		AccountHolder: info.AccountHolder,
		AccountNumber: info.AccountNumber,
	}
}

func ToOrderDetailResponse(d domain.OrderDetail) dto.OrderDetailResponse {
	lines := make([]dto.OrderLineDTO, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, dto.OrderLineDTO{
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			CategoryLabel: domain.CategoryLabel(l.ProductCategory),
			Quantity:      l.Quantity,
			Price:         dto.Money(l.Price),
			Subtotal:      dto.Money(l.Subtotal()),
			Note:          l.Note,
		})
	}

	return dto.OrderDetailResponse{
		ID:                 d.ID,
		Code:               d.Code,
		Status:             d.Status,
		StatusLabel:        domain.OrderStatusLabel(d.Status),
		PaymentMethod:      d.PaymentMethod,
		PaymentMethodLabel: domain.PaymentLabel(d.PaymentMethod),
		DeliveryType:       d.DeliveryType,
		DeliveryTypeLabel:  domain.DeliveryLabel(d.DeliveryType),
		Address:            d.Address,
		Phone:              d.Phone,
		Total:              dto.Money(d.TotalPrice),
		Date:               domain.FormatDay(d.Date),
		Customer: dto.CustomerDTO{
			ID:    d.Customer.ID,
			Name:  d.Customer.Name,
			Email: d.Customer.Email,
		},
		Lines: lines,
	}
}

func ToOrderDetailResponses(details []domain.OrderDetail) []dto.OrderDetailResponse {
	out := make([]dto.OrderDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, ToOrderDetailResponse(d))
	}
	return out
}
