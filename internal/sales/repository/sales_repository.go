package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fonda/internal/domain"
)

type MySQLSalesRepository struct {
	db *sql.DB
}

func NewMySQLSalesRepository(db *sql.DB) *MySQLSalesRepository {
	return &MySQLSalesRepository{db: db}
}

// LockCompletedByDate bloquea los pedidos completados del dia hasta el commit.
func (r *MySQLSalesRepository) LockCompletedByDate(ctx context.Context, tx *sql.Tx, day time.Time) ([]domain.Order, error) {
	query := `
		SELECT id, code, customerId, paymentMethod, deliveryType, address, phone,
		       totalPrice, status, date, createdAt
		FROM Orders
		WHERE status = ? AND date = ?
		ORDER BY id ASC
		FOR UPDATE
	`

	rows, err := tx.QueryContext(ctx, query, domain.OrderStatusCompleted, domain.FormatDay(day))
	if err != nil {
		return nil, fmt.Errorf("locking completed orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.Code, &o.CustomerID, &o.PaymentMethod, &o.DeliveryType, &o.Address, &o.Phone,
			&o.TotalPrice, &o.Status, &o.Date, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	return orders, nil
}

func (r *MySQLSalesRepository) InsertBatch(ctx context.Context, tx *sql.Tx, batch domain.DayCloseBatch) error {
	query := `INSERT INTO DayCloseBatch (id, businessDate, orderCount, total, closedAt) VALUES (?, ?, ?, ?, ?)`

	_, err := tx.ExecContext(ctx, query,
		batch.ID, domain.FormatDay(batch.BusinessDate), batch.OrderCount, batch.Total, batch.ClosedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting day close batch: %w", err)
	}
	return nil
}

// ArchiveOrders copia los pedidos al historial con el id del cierre.
// Un pedido que ya esta en el historial se omite.
func (r *MySQLSalesRepository) ArchiveOrders(ctx context.Context, tx *sql.Tx, batchID string, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	in, args := inClause(ids)
	query := `
		INSERT IGNORE INTO OrderHistory
			(orderId, code, customerId, paymentMethod, deliveryType, address, phone, totalPrice, status, date, batchId)
		SELECT id, code, customerId, paymentMethod, deliveryType, address, phone, totalPrice, status, date, ?
		FROM Orders
		WHERE id IN (` + in + `)
	`

	result, err := tx.ExecContext(ctx, query, append([]interface{}{batchID}, args...)...)
	if err != nil {
		return 0, fmt.Errorf("archiving orders: %w", err)
	}

	archived, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return archived, nil
}

func (r *MySQLSalesRepository) DeleteOrders(ctx context.Context, tx *sql.Tx, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	in, args := inClause(ids)
	result, err := tx.ExecContext(ctx, `DELETE FROM Orders WHERE id IN (`+in+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting archived orders: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	return deleted, nil
}

func (r *MySQLSalesRepository) FindBatches(ctx context.Context) ([]domain.DayCloseBatch, error) {
	query := `SELECT id, businessDate, orderCount, total, closedAt FROM DayCloseBatch ORDER BY closedAt DESC, businessDate DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying day close batches: %w", err)
	}
	defer rows.Close()

	var batches []domain.DayCloseBatch
	for rows.Next() {
		var b domain.DayCloseBatch
		if err := rows.Scan(&b.ID, &b.BusinessDate, &b.OrderCount, &b.Total, &b.ClosedAt); err != nil {
			return nil, fmt.Errorf("scanning day close batch: %w", err)
		}
		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day close batches: %w", err)
	}
	return batches, nil
}

func inClause(ids []uint) (string, []interface{}) {
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ","), args
}
