package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"fonda/internal/domain"
	apperrors "fonda/internal/errors"
)

const (
	msgCodeRequired  = "Por favor, ingresa un código de pedido."
	msgOrderNotFound = "No se encontró un pedido con ese código."
)

type FulfillmentRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindByCode(ctx context.Context, code string) (*domain.OrderDetail, error)
	FindByStatus(ctx context.Context, status string) ([]domain.OrderDetail, error)
	MarkCompleted(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type FulfillmentService struct {
	repo   FulfillmentRepository
	logger *zap.Logger
}

func NewFulfillmentService(repo FulfillmentRepository, logger *zap.Logger) *FulfillmentService {
	return &FulfillmentService{repo: repo, logger: logger}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Search busca por codigo. Un error de consulta se devuelve tal cual para
// que el llamador pueda distinguirlo de un codigo inexistente.
func (s *FulfillmentService) Search(ctx context.Context, code string) (*domain.OrderDetail, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, apperrors.NewValidationError(msgCodeRequired, apperrors.ValidationDetail{
			Field:   "codigo",
			Message: "codigo is required",
		})
	}

	detail, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError(msgOrderNotFound)
		}
		return nil, err
	}
	return detail, nil
}

func (s *FulfillmentService) Finalize(ctx context.Context, id uint) error {
	if err := s.repo.MarkCompleted(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order completed", zap.Uint("orderId", id))
	return nil
}

func (s *FulfillmentService) ListPending(ctx context.Context) ([]domain.OrderDetail, error) {
	return s.repo.FindByStatus(ctx, domain.OrderStatusPending)
}

// Delete devuelve el pedido borrado para poder mostrar su codigo.
func (s *FulfillmentService) Delete(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("order deleted", zap.Uint("orderId", id), zap.String("code", order.Code))
	return order, nil
}
