package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fonda/internal/domain"
)

type MySQLCommentRepository struct {
	db *sql.DB
}

func NewMySQLCommentRepository(db *sql.DB) *MySQLCommentRepository {
	return &MySQLCommentRepository{db: db}
}

func (r *MySQLCommentRepository) Insert(ctx context.Context, tx *sql.Tx, c domain.Comment) (uint, error) {
	result, err := tx.ExecContext(ctx, `INSERT INTO Comment (customerId, message) VALUES (?, ?)`, c.CustomerID, c.Message)
	if err != nil {
		return 0, fmt.Errorf("inserting comment: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

// FindAll devuelve los comentarios con nombre y correo del cliente, los mas nuevos primero.
func (r *MySQLCommentRepository) FindAll(ctx context.Context) ([]domain.CommentWithCustomer, error) {
	query := `
		SELECT cm.id, cm.customerId, cm.message, cm.createdAt, c.name, c.email
		FROM Comment cm
		JOIN Customer c ON c.id = cm.customerId
		ORDER BY cm.createdAt DESC, cm.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.CommentWithCustomer
	for rows.Next() {
		var c domain.CommentWithCustomer
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.Message, &c.CreatedAt, &c.CustomerName, &c.CustomerEmail); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}
	return comments, nil
}
