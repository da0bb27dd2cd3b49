package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"fonda/internal/domain"
	"fonda/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

const detailColumns = `
	o.id, o.code, o.customerId, o.paymentMethod, o.deliveryType, o.address, o.phone,
	o.totalPrice, o.status, o.date, o.createdAt,
	c.id, c.name, c.email, c.createdAt
`

func (r *MySQLOrderRepository) Insert(ctx context.Context, tx *sql.Tx, o domain.Order) (uint, error) {
	query := `
		INSERT INTO Orders (code, customerId, paymentMethod, deliveryType, address, phone, totalPrice, status, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		o.Code, o.CustomerID, o.PaymentMethod, o.DeliveryType, o.Address, o.Phone,
		o.TotalPrice, o.Status, o.Date,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	query := `
		SELECT id, code, customerId, paymentMethod, deliveryType, address, phone,
		       totalPrice, status, date, createdAt
		FROM Orders
		WHERE id = ?
	`

	var o domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Code, &o.CustomerID, &o.PaymentMethod, &o.DeliveryType, &o.Address, &o.Phone,
		&o.TotalPrice, &o.Status, &o.Date, &o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	return &o, nil
}

// FindByCode trae el pedido con su cliente y sus renglones.
func (r *MySQLOrderRepository) FindByCode(ctx context.Context, code string) (*domain.OrderDetail, error) {
	query := `SELECT ` + detailColumns + `
		FROM Orders o
		JOIN Customer c ON c.id = o.customerId
		WHERE o.code = ?
	`

	rows, err := r.db.QueryContext(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("querying order by code: %w", err)
	}
	details, err := scanDetails(rows)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with code %s not found", code))
	}

	if err := r.attachLines(ctx, details); err != nil {
		return nil, err
	}

	return &details[0], nil
}

// FindByStatus lista pedidos de un estado, los mas recientes primero.
func (r *MySQLOrderRepository) FindByStatus(ctx context.Context, status string) ([]domain.OrderDetail, error) {
	query := `SELECT ` + detailColumns + `
		FROM Orders o
		JOIN Customer c ON c.id = o.customerId
		WHERE o.status = ?
		ORDER BY o.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("querying orders by status: %w", err)
	}
	details, err := scanDetails(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachLines(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *MySQLOrderRepository) FindByStatusAndDate(ctx context.Context, status string, day time.Time) ([]domain.OrderDetail, error) {
	query := `SELECT ` + detailColumns + `
		FROM Orders o
		JOIN Customer c ON c.id = o.customerId
		WHERE o.status = ? AND o.date = ?
		ORDER BY o.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, status, domain.FormatDay(day))
	if err != nil {
		return nil, fmt.Errorf("querying orders by status and date: %w", err)
	}
	details, err := scanDetails(rows)
	if err != nil {
		return nil, err
	}

	if err := r.attachLines(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

// MarkCompleted solo mueve pedidos en PENDING; un pedido ya completado es conflicto.
func (r *MySQLOrderRepository) MarkCompleted(ctx context.Context, id uint) error {
	query := `UPDATE Orders SET status = ? WHERE id = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, domain.OrderStatusCompleted, id, domain.OrderStatusPending)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return errors.NewConflictError("El pedido ya fue finalizado.")
	}

	return nil
}

func (r *MySQLOrderRepository) Delete(ctx context.Context, id uint) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

func (r *MySQLOrderRepository) attachLines(ctx context.Context, details []domain.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}

	placeholders := make([]string, len(details))
	args := make([]interface{}, len(details))
	index := make(map[uint]int, len(details))
	for i, d := range details {
		placeholders[i] = "?"
		args[i] = d.ID
		index[d.ID] = i
	}

	// el producto pudo haberse borrado del catalogo despues del pedido
	query := `
		SELECT i.id, i.orderId, i.productId, i.quantity, i.price, i.note,
		       COALESCE(p.name, ''), COALESCE(p.category, '')
		FROM OrderItems i
		LEFT JOIN Product p ON p.id = i.productId
		WHERE i.orderId IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY i.orderId ASC, i.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(
			&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.Price, &l.Note,
			&l.ProductName, &l.ProductCategory,
		); err != nil {
			return fmt.Errorf("scanning order item: %w", err)
		}
		i := index[l.OrderID]
		details[i].Lines = append(details[i].Lines, l)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating order items: %w", err)
	}
	return nil
}

func scanDetails(rows *sql.Rows) ([]domain.OrderDetail, error) {
	defer rows.Close()

	var details []domain.OrderDetail
	for rows.Next() {
		var d domain.OrderDetail
		if err := rows.Scan(
			&d.ID, &d.Code, &d.CustomerID, &d.PaymentMethod, &d.DeliveryType, &d.Address, &d.Phone,
			&d.TotalPrice, &d.Status, &d.Date, &d.CreatedAt,
			&d.Customer.ID, &d.Customer.Name, &d.Customer.Email, &d.Customer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	return details, nil
}
