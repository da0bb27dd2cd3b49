package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fonda/internal/domain"
	"fonda/internal/errors"
)

type MySQLGuisadoRepository struct {
	db *sql.DB
}

func NewMySQLGuisadoRepository(db *sql.DB) *MySQLGuisadoRepository {
	return &MySQLGuisadoRepository{db: db}
}

func (r *MySQLGuisadoRepository) Insert(ctx context.Context, g domain.Guisado) (uint, error) {
	query := `INSERT INTO Guisado (name, description, availability, date) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, g.Name, g.Description, g.Availability, domain.FormatDay(g.Date))
	if err != nil {
		return 0, fmt.Errorf("inserting guisado: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(id), nil
}

func (r *MySQLGuisadoRepository) FindByID(ctx context.Context, id uint) (*domain.Guisado, error) {
	query := `SELECT id, name, description, availability, date FROM Guisado WHERE id = ?`

	var g domain.Guisado
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.Description, &g.Availability, &g.Date)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("guisado with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying guisado by id: %w", err)
	}

	return &g, nil
}

// FindByDate lista los guisados del dia ordenados por nombre.
func (r *MySQLGuisadoRepository) FindByDate(ctx context.Context, day time.Time) ([]domain.Guisado, error) {
	query := `
		SELECT id, name, description, availability, date
		FROM Guisado
		WHERE date = ?
		ORDER BY name ASC
	`
	return r.query(ctx, query, domain.FormatDay(day))
}

// FindAvailableByDate excluye los agotados.
func (r *MySQLGuisadoRepository) FindAvailableByDate(ctx context.Context, day time.Time) ([]domain.Guisado, error) {
	query := `
		SELECT id, name, description, availability, date
		FROM Guisado
		WHERE date = ? AND availability <> ?
		ORDER BY id ASC
	`
	return r.query(ctx, query, domain.FormatDay(day), domain.AvailabilitySoldOut)
}

func (r *MySQLGuisadoRepository) UpdateAvailability(ctx context.Context, id uint, availability string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE Guisado SET availability = ? WHERE id = ?`, availability, id)
	if err != nil {
		return fmt.Errorf("updating guisado availability: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

func (r *MySQLGuisadoRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Guisado, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying guisados: %w", err)
	}
	defer rows.Close()

	var guisados []domain.Guisado
	for rows.Next() {
		var g domain.Guisado
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Availability, &g.Date); err != nil {
			return nil, fmt.Errorf("scanning guisado row: %w", err)
		}
		guisados = append(guisados, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating guisado rows: %w", err)
	}

	return guisados, nil
}
