package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"fonda/internal/cart"
	"fonda/internal/domain"
	apperrors "fonda/internal/errors"
	"fonda/internal/infrastructure/mysql"
	"fonda/internal/order/service"
)

const (
	msgCustomerRequired = "Por favor, ingresa el nombre y correo del cliente."
	msgPaymentRequired  = "Por favor, selecciona un método de pago."
	msgDeliveryRequired = "Por favor, selecciona si es a domicilio o pasar a recoger."
	msgAddressRequired  = "Por favor, ingresa la dirección y el número de teléfono para entrega a domicilio."
	msgEmptyCart        = "El carrito está vacío. Agrega productos antes de hacer el pedido."
	msgInvalidQuantity  = "La cantidad de cada producto debe ser al menos 1."
	msgUnknownProduct   = "Uno de los productos del carrito ya no existe en el menú."
)

type ProductCatalog interface {
	FindByIDs(ctx context.Context, ids []uint) ([]domain.Product, error)
}

type OrderSubmitter interface {
	Submit(ctx context.Context, sub service.Submission, c *cart.Cart) (*domain.Order, error)
}

type PaymentMethodRepository interface {
	FindByMethod(ctx context.Context, method string) (*domain.PaymentMethodInfo, error)
}

type OrderRequest struct {
	CustomerName  string
	CustomerEmail string
	PaymentMethod string
	DeliveryType  string
	Address       string
	Phone         string
	Items         []ItemRequest
}

type ItemRequest struct {
	ProductID uint
	Quantity  int
	Note      string
}

type SubmitResult struct {
	Order    *domain.Order
	Transfer *domain.PaymentMethodInfo
	Message  string
}

type SubmitOrderUseCase struct {
	products         ProductCatalog
	submitter        OrderSubmitter
	payments         PaymentMethodRepository
	logger           *zap.Logger
	maxRetryAttempts int
	backoffs         []time.Duration
}

func NewSubmitOrderUseCase(
	products ProductCatalog,
	submitter OrderSubmitter,
	payments PaymentMethodRepository,
	logger *zap.Logger,
	maxRetryAttempts int,
) *SubmitOrderUseCase {
	return &SubmitOrderUseCase{
		products:         products,
		submitter:        submitter,
		payments:         payments,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		backoffs:         []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond},
	}
}

func (uc *SubmitOrderUseCase) Submit(ctx context.Context, req OrderRequest) (*SubmitResult, error) {
	uc.logger.Info("order submission started", zap.Int("itemCount", len(req.Items)))

	// Validaciones antes de tocar la base
	sub, err := validate(req)
	if err != nil {
		return nil, err
	}

	c, err := uc.buildCart(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order, err := uc.submitWithRetry(ctx, sub, c)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{
		Order:   order,
		Message: successMessage(order),
	}

	if order.PaymentMethod == domain.PaymentTransfer {
		info, err := uc.payments.FindByMethod(ctx, domain.PaymentTransfer)
		if err != nil {
			// el pedido ya quedo guardado; solo faltan los datos para pagar
			uc.logger.Warn("transfer details unavailable", zap.Uint("orderId", order.ID), zap.Error(err))
		} else {
			result.Transfer = info
		}
	}

	return result, nil
}

func (uc *SubmitOrderUseCase) TransferDetails(ctx context.Context) (*domain.PaymentMethodInfo, error) {
	return uc.payments.FindByMethod(ctx, domain.PaymentTransfer)
}

func validate(req OrderRequest) (service.Submission, error) {
	sub := service.Submission{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		Address:       strings.TrimSpace(req.Address),
		Phone:         strings.TrimSpace(req.Phone),
	}

	if sub.CustomerName == "" || sub.CustomerEmail == "" {
		return sub, apperrors.NewValidationError(msgCustomerRequired,
			apperrors.ValidationDetail{Field: "customerName", Message: "customerName and customerEmail are required"},
		)
	}

	payment, ok := domain.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return sub, apperrors.NewValidationError(msgPaymentRequired,
			apperrors.ValidationDetail{Field: "paymentMethod", Message: "paymentMethod must be TRANSFER or CASH"},
		)
	}
	sub.PaymentMethod = payment

	delivery, ok := domain.ParseDeliveryType(req.DeliveryType)
	if !ok {
		return sub, apperrors.NewValidationError(msgDeliveryRequired,
			apperrors.ValidationDetail{Field: "deliveryType", Message: "deliveryType must be DELIVERY or PICKUP"},
		)
	}
	sub.DeliveryType = delivery

	if delivery == domain.DeliveryHome && (sub.Address == "" || sub.Phone == "") {
		return sub, apperrors.NewValidationError(msgAddressRequired,
			apperrors.ValidationDetail{Field: "address", Message: "address and phone are required for delivery"},
		)
	}

	if len(req.Items) == 0 {
		return sub, apperrors.NewValidationError(msgEmptyCart,
			apperrors.ValidationDetail{Field: "items", Message: "items must not be empty"},
		)
	}

	for i, item := range req.Items {
		if item.Quantity < 1 {
			return sub, apperrors.NewValidationError(msgInvalidQuantity, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be at least 1",
			})
		}
	}

	return sub, nil
}

// buildCart arma el carrito con los precios actuales del catalogo.
// Un producto repetido en la peticion suma sus cantidades.
func (uc *SubmitOrderUseCase) buildCart(ctx context.Context, items []ItemRequest) (*cart.Cart, error) {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := uc.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	c := cart.New()
	for i, item := range items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, apperrors.NewValidationError(msgUnknownProduct, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productId", i),
				Message: fmt.Sprintf("product %d not found", item.ProductID),
			})
		}

		current := c.Quantity(p.ID)
		if current == 0 {
			c.Add(p)
		}
		c.SetQuantity(p.ID, current+item.Quantity)

		if note := strings.TrimSpace(item.Note); note != "" {
			c.SetNote(p.ID, note)
		}
	}

	return c, nil
}

func (uc *SubmitOrderUseCase) submitWithRetry(ctx context.Context, sub service.Submission, c *cart.Cart) (*domain.Order, error) {
	maxAttempts := uc.maxRetryAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		order, err := uc.submitter.Submit(ctx, sub, c)
		if err == nil {
			return order, nil
		}

		if !mysql.IsDeadlockError(err) {
			return nil, err
		}

		if attempt == maxAttempts {
			break
		}

		wait := uc.backoff(attempt)
		uc.logger.Warn("deadlock detected, retrying", zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Duration("wait", wait))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, apperrors.NewDeadlockError("max retries exceeded")
}

// backoff agrega +-20% de jitter al intervalo base del intento.
func (uc *SubmitOrderUseCase) backoff(attempt int) time.Duration {
	if len(uc.backoffs) == 0 {
		return 0
	}
	idx := attempt
	if idx >= len(uc.backoffs) {
		idx = len(uc.backoffs) - 1
	}
	base := uc.backoffs[idx]
	jitter := time.Duration(float64(base) * (rand.Float64()*0.4 - 0.2))
	return base + jitter
}

func successMessage(order *domain.Order) string {
	tail := "Pásalo a recoger cuando quieras."
	if order.IsDelivery() {
		tail = "Te lo llevaremos pronto."
	}
	return fmt.Sprintf("Pedido realizado con éxito. Tu código es: %s. %s", order.Code, tail)
}
