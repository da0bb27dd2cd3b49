package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fonda/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

// InsertAll guarda todos los renglones del pedido en una sola sentencia,
// cada uno con el precio del producto al momento del pedido.
func (r *MySQLOrderItemRepository) InsertAll(ctx context.Context, tx *sql.Tx, orderID uint, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]string, len(items))
	args := make([]interface{}, 0, len(items)*5)
	for i, item := range items {
		rows[i] = "(?, ?, ?, ?, ?)"
		args = append(args, orderID, item.ProductID, item.Quantity, item.Price, item.Note)
	}

	query := `INSERT INTO OrderItems (orderId, productId, quantity, price, note) VALUES ` + strings.Join(rows, ", ")

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting order items: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if inserted != int64(len(items)) {
		return fmt.Errorf("inserting order items: expected %d rows, got %d", len(items), inserted)
	}

	return nil
}
