package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"fonda/internal/cart"
	"fonda/internal/domain"
	apperrors "fonda/internal/errors"
	"fonda/internal/infrastructure/mysql"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type CustomerResolver interface {
	GetOrCreate(ctx context.Context, tx *sql.Tx, name, email string) (uint, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, o domain.Order) (uint, error)
}

type OrderItemRepository interface {
	InsertAll(ctx context.Context, tx *sql.Tx, orderID uint, items []domain.OrderItem) error
}

// Submission son los datos del pedido ya validados y normalizados.
type Submission struct {
	CustomerName  string
	CustomerEmail string
	PaymentMethod string
	DeliveryType  string
	Address       string
	Phone         string
}

type SubmissionService struct {
	db            TransactionManager
	customers     CustomerResolver
	orderRepo     OrderRepository
	orderItemRepo OrderItemRepository
	logger        *zap.Logger
	txTimeout     time.Duration
	codeAttempts  int
	location      *time.Location

	newCode func() (string, error)
	now     func() time.Time
}

func NewSubmissionService(
	db TransactionManager,
	customers CustomerResolver,
	orderRepo OrderRepository,
	orderItemRepo OrderItemRepository,
	logger *zap.Logger,
	txTimeout time.Duration,
	codeAttempts int,
	location *time.Location,
) *SubmissionService {
	if codeAttempts < 1 {
		codeAttempts = 1
	}
	return &SubmissionService{
		db:            db,
		customers:     customers,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
		txTimeout:     txTimeout,
		codeAttempts:  codeAttempts,
		location:      location,
		newCode:       GenerateCode,
		now:           time.Now,
	}
}

// Submit guarda cliente, encabezado y renglones en una sola transaccion.
func (s *SubmissionService) Submit(ctx context.Context, sub Submission, c *cart.Cart) (*domain.Order, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	customerID, err := s.customers.GetOrCreate(txCtx, tx, sub.CustomerName, sub.CustomerEmail)
	if err != nil {
		s.logger.Error("failed to resolve customer", zap.Error(err))
		return nil, err
	}

	order := domain.Order{
		CustomerID:    customerID,
		PaymentMethod: sub.PaymentMethod,
		DeliveryType:  sub.DeliveryType,
		TotalPrice:    c.Total(),
		Status:        domain.OrderStatusPending,
		Date:          domain.BusinessDay(s.now(), s.location),
	}
	if order.IsDelivery() {
		address, phone := sub.Address, sub.Phone
		order.Address = &address
		order.Phone = &phone
	}

	if err := s.insertHeader(txCtx, tx, &order); err != nil {
		return nil, err
	}

	entries := c.Entries()
	items := make([]domain.OrderItem, len(entries))
	for i, entry := range entries {
		items[i] = domain.OrderItem{
			ProductID: entry.Product.ID,
			Quantity:  entry.Quantity,
			Price:     entry.Product.Price,
		}
		if entry.Note != "" {
			note := entry.Note
			items[i].Note = &note
		}
	}

	if err := s.orderItemRepo.InsertAll(txCtx, tx, order.ID, items); err != nil {
		s.logger.Error("failed to insert order items", zap.Uint("orderId", order.ID), zap.Int("lineCount", len(items)), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", order.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order submitted",
		zap.Uint("orderId", order.ID),
		zap.String("code", order.Code),
		zap.Int("lineCount", c.Len()),
		zap.String("total", order.TotalPrice.StringFixed(2)),
	)
	return &order, nil
}

// insertHeader genera un codigo nuevo cada vez que el anterior ya existe.
// InnoDB solo revierte la sentencia duplicada, la transaccion sigue viva.
func (s *SubmissionService) insertHeader(ctx context.Context, tx *sql.Tx, order *domain.Order) error {
	for attempt := 1; attempt <= s.codeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return err
		}
		order.Code = code

		id, err := s.orderRepo.Insert(ctx, tx, *order)
		if err == nil {
			order.ID = id
			return nil
		}

		if !mysql.IsDuplicateKeyError(err) {
			s.logger.Error("failed to insert order", zap.Error(err))
			return err
		}
		s.logger.Warn("order code collision, regenerating", zap.String("code", code), zap.Int("attempt", attempt))
	}

	return apperrors.NewConflictError("could not generate a unique order code")
}
