package service

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"fonda/internal/domain"
	apperrors "fonda/internal/errors"
)

type Repository interface {
	FindByEmail(ctx context.Context, tx *sql.Tx, email string) (*domain.Customer, error)
	Insert(ctx context.Context, tx *sql.Tx, c domain.Customer) (uint, error)
}

// CustomerService resuelve un cliente por correo y lo crea si no existe.
// Pedidos y comentarios lo usan dentro de su propia transaccion.
type CustomerService struct {
	repo   Repository
	logger *zap.Logger
}

func NewCustomerService(repo Repository, logger *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) GetOrCreate(ctx context.Context, tx *sql.Tx, name, email string) (uint, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	existing, err := s.repo.FindByEmail(ctx, tx, email)
	if err == nil {
		return existing.ID, nil
	}
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		return 0, err
	}

	id, err := s.repo.Insert(ctx, tx, domain.Customer{Name: name, Email: email})
	if err != nil {
		return 0, err
	}

	s.logger.Info("customer created", zap.Uint("customerId", id))
	return id, nil
}
