package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"fonda/internal/domain"
	apperrors "fonda/internal/errors"
)

const msgAllFieldsRequired = "Por favor, completa todos los campos: nombre, correo y comentario."

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type CustomerResolver interface {
	GetOrCreate(ctx context.Context, tx *sql.Tx, name, email string) (uint, error)
}

type Repository interface {
	Insert(ctx context.Context, tx *sql.Tx, c domain.Comment) (uint, error)
	FindAll(ctx context.Context) ([]domain.CommentWithCustomer, error)
}

type CommentService struct {
	db        TransactionManager
	customers CustomerResolver
	repo      Repository
	logger    *zap.Logger
	txTimeout time.Duration
}

func NewCommentService(db TransactionManager, customers CustomerResolver, repo Repository, logger *zap.Logger, txTimeout time.Duration) *CommentService {
	return &CommentService{
		db:        db,
		customers: customers,
		repo:      repo,
		logger:    logger,
		txTimeout: txTimeout,
	}
}

func (s *CommentService) Submit(ctx context.Context, name, email, message string) (*domain.Comment, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if name == "" || email == "" || message == "" {
		return nil, apperrors.NewValidationError(msgAllFieldsRequired, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name, email and message are required",
		})
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	customerID, err := s.customers.GetOrCreate(txCtx, tx, name, email)
	if err != nil {
		return nil, err
	}

	comment := domain.Comment{CustomerID: customerID, Message: message}
	id, err := s.repo.Insert(txCtx, tx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit comment", zap.Error(err))
		return nil, err
	}

	s.logger.Info("comment received", zap.Uint("commentId", id), zap.Uint("customerId", customerID))
	return &comment, nil
}

func (s *CommentService) ListAll(ctx context.Context) ([]domain.CommentWithCustomer, error) {
	return s.repo.FindAll(ctx)
}
