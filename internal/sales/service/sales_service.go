package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fonda/internal/domain"
)

const (
	MsgNothingToClose = "No hay pedidos completados para cerrar hoy."
	MsgDayClosed      = "Día cerrado exitosamente. Total reiniciado a 0."
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type Repository interface {
	LockCompletedByDate(ctx context.Context, tx *sql.Tx, day time.Time) ([]domain.Order, error)
	InsertBatch(ctx context.Context, tx *sql.Tx, batch domain.DayCloseBatch) error
	ArchiveOrders(ctx context.Context, tx *sql.Tx, batchID string, ids []uint) (int64, error)
	DeleteOrders(ctx context.Context, tx *sql.Tx, ids []uint) (int64, error)
	FindBatches(ctx context.Context) ([]domain.DayCloseBatch, error)
}

type CompletedOrderReader interface {
	FindByStatusAndDate(ctx context.Context, status string, day time.Time) ([]domain.OrderDetail, error)
}

type Summary struct {
	Date   time.Time
	Total  decimal.Decimal
	Orders []domain.OrderDetail
}

type CloseResult struct {
	Closed bool
	Batch  domain.DayCloseBatch
}

type SalesService struct {
	db        TransactionManager
	repo      Repository
	orders    CompletedOrderReader
	logger    *zap.Logger
	location  *time.Location
	txTimeout time.Duration

	now   func() time.Time
	newID func() string
}

func NewSalesService(
	db TransactionManager,
	repo Repository,
	orders CompletedOrderReader,
	logger *zap.Logger,
	location *time.Location,
	txTimeout time.Duration,
) *SalesService {
	return &SalesService{
		db:        db,
		repo:      repo,
		orders:    orders,
		logger:    logger,
		location:  location,
		txTimeout: txTimeout,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *SalesService) Today() time.Time {
	return domain.BusinessDay(s.now(), s.location)
}

// TodaySummary son las ventas completadas de hoy que aun no se cierran.
func (s *SalesService) TodaySummary(ctx context.Context) (*Summary, error) {
	day := s.Today()

	orders, err := s.orders.FindByStatusAndDate(ctx, domain.OrderStatusCompleted, day)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalPrice)
	}

	return &Summary{Date: day, Total: total, Orders: orders}, nil
}

// CloseDay archiva y borra los pedidos completados de hoy en una sola transaccion.
// Sin pedidos no escribe nada y devuelve Closed=false.
func (s *SalesService) CloseDay(ctx context.Context) (*CloseResult, error) {
	day := s.Today()

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	orders, err := s.repo.LockCompletedByDate(txCtx, tx, day)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		s.logger.Info("day close skipped, no completed orders", zap.String("date", domain.FormatDay(day)))
		return &CloseResult{Closed: false, Batch: domain.DayCloseBatch{BusinessDate: day, Total: decimal.Zero}}, nil
	}

	ids := make([]uint, len(orders))
	total := decimal.Zero
	for i, o := range orders {
		ids[i] = o.ID
		total = total.Add(o.TotalPrice)
	}

	batch := domain.DayCloseBatch{
		ID:           s.newID(),
		BusinessDate: day,
		OrderCount:   len(orders),
		Total:        total,
		ClosedAt:     s.now().UTC().Truncate(time.Second),
	}

	if err := s.repo.InsertBatch(txCtx, tx, batch); err != nil {
		return nil, err
	}

	archived, err := s.repo.ArchiveOrders(txCtx, tx, batch.ID, ids)
	if err != nil {
		return nil, err
	}
	if archived != int64(len(ids)) {
		s.logger.Warn("some orders were already archived",
			zap.String("batchId", batch.ID),
			zap.Int("orderCount", len(ids)),
			zap.Int64("archived", archived),
		)
	}

	if _, err := s.repo.DeleteOrders(txCtx, tx, ids); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit day close", zap.String("batchId", batch.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("day closed",
		zap.String("batchId", batch.ID),
		zap.String("date", domain.FormatDay(day)),
		zap.Int("orderCount", batch.OrderCount),
		zap.String("total", batch.Total.StringFixed(2)),
	)
	return &CloseResult{Closed: true, Batch: batch}, nil
}

func (s *SalesService) ListBatches(ctx context.Context) ([]domain.DayCloseBatch, error) {
	return s.repo.FindBatches(ctx)
}
