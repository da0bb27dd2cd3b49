package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fonda/internal/domain"
	"fonda/internal/errors"
)

type MySQLPaymentMethodRepository struct {
	db *sql.DB
}

func NewMySQLPaymentMethodRepository(db *sql.DB) *MySQLPaymentMethodRepository {
	return &MySQLPaymentMethodRepository{db: db}
}

func (r *MySQLPaymentMethodRepository) FindByMethod(ctx context.Context, method string) (*domain.PaymentMethodInfo, error) {
	query := `SELECT method, bank, accountHolder, accountNumber FROM PaymentMethod WHERE method = ?`

	var info domain.PaymentMethodInfo
	err := r.db.QueryRowContext(ctx, query, method).Scan(
		&info.Method, &info.Bank, &info.AccountHolder, &info.AccountNumber,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("payment method %s not found", method))
	}
	if err != nil {
		return nil, fmt.Errorf("querying payment method: %w", err)
	}

	return &info, nil
}
