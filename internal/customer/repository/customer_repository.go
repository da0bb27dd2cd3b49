package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fonda/internal/domain"
	"fonda/internal/errors"
)

type MySQLCustomerRepository struct {
	db *sql.DB
}

func NewMySQLCustomerRepository(db *sql.DB) *MySQLCustomerRepository {
	return &MySQLCustomerRepository{db: db}
}

func (r *MySQLCustomerRepository) FindByEmail(ctx context.Context, tx *sql.Tx, email string) (*domain.Customer, error) {
	query := `SELECT id, name, email, createdAt FROM Customer WHERE email = ?`

	var c domain.Customer
	err := tx.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("customer with email %s not found", email))
	}
	if err != nil {
		return nil, fmt.Errorf("querying customer by email: %w", err)
	}

	return &c, nil
}

// Insert devuelve el id existente si otro request creo el mismo correo antes.
func (r *MySQLCustomerRepository) Insert(ctx context.Context, tx *sql.Tx, c domain.Customer) (uint, error) {
	query := `
		INSERT INTO Customer (name, email) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)
	`

	result, err := tx.ExecContext(ctx, query, c.Name, c.Email)
	if err != nil {
		return 0, fmt.Errorf("inserting customer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(id), nil
}
