package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fonda/internal/domain"
	"fonda/internal/errors"
)

type MySQLAdminRepository struct {
	db *sql.DB
}

func NewMySQLAdminRepository(db *sql.DB) *MySQLAdminRepository {
	return &MySQLAdminRepository{db: db}
}

func (r *MySQLAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query := `SELECT id, name, email, password FROM Admin WHERE email = ?`

	var a domain.Admin
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Name, &a.Email, &a.Password)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("admin with email %s not found", email))
	}
	if err != nil {
		return nil, fmt.Errorf("querying admin by email: %w", err)
	}

	return &a, nil
}
