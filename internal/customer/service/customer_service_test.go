package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fonda/internal/domain"
	apperrors "fonda/internal/errors"
)

type mockRepository struct {
	FindByEmailFunc func(ctx context.Context, tx *sql.Tx, email string) (*domain.Customer, error)
	InsertFunc      func(ctx context.Context, tx *sql.Tx, c domain.Customer) (uint, error)
}

func (m *mockRepository) FindByEmail(ctx context.Context, tx *sql.Tx, email string) (*domain.Customer, error) {
	return m.FindByEmailFunc(ctx, tx, email)
}

func (m *mockRepository) Insert(ctx context.Context, tx *sql.Tx, c domain.Customer) (uint, error) {
	return m.InsertFunc(ctx, tx, c)
}

func TestGetOrCreate_ReusesExisting(t *testing.T) {
	repo := &mockRepository{
		FindByEmailFunc: func(ctx context.Context, tx *sql.Tx, email string) (*domain.Customer, error) {
			assert.Equal(t, "ana@example.com", email)
			return &domain.Customer{ID: 12, Email: email}, nil
		},
		InsertFunc: func(ctx context.Context, tx *sql.Tx, c domain.Customer) (uint, error) {
			t.Fatal("insert must not be called")
			return 0, nil
		},
	}
	svc := NewCustomerService(repo, zap.NewNop())

	id, err := svc.GetOrCreate(context.Background(), nil, "Ana", " ana@example.com ")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)
}

func TestGetOrCreate_CreatesWhenNotFound(t *testing.T) {
	var inserted domain.Customer
	repo := &mockRepository{
		FindByEmailFunc: func(ctx context.Context, tx *sql.Tx, email string) (*domain.Customer, error) {
			return nil, apperrors.NewNotFoundError("customer not found")
		},
		InsertFunc: func(ctx context.Context, tx *sql.Tx, c domain.Customer) (uint, error) {
			inserted = c
			return 30, nil
		},
	}
	svc := NewCustomerService(repo, zap.NewNop())

	id, err := svc.GetOrCreate(context.Background(), nil, " Ana ", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(30), id)
	assert.Equal(t, "Ana", inserted.Name)
	assert.Equal(t, "ana@example.com", inserted.Email)
}

func TestGetOrCreate_LookupErrorIsNotTreatedAsMissing(t *testing.T) {
	repo := &mockRepository{
		FindByEmailFunc: func(ctx context.Context, tx *sql.Tx, email string) (*domain.Customer, error) {
			return nil, errors.New("connection reset")
		},
		InsertFunc: func(ctx context.Context, tx *sql.Tx, c domain.Customer) (uint, error) {
			t.Fatal("insert must not be called")
			return 0, nil
		},
	}
	svc := NewCustomerService(repo, zap.NewNop())

	_, err := svc.GetOrCreate(context.Background(), nil, "Ana", "ana@example.com")
	assert.EqualError(t, err, "connection reset")
}

func TestGetOrCreate_InsertError(t *testing.T) {
	repo := &mockRepository{
		FindByEmailFunc: func(ctx context.Context, tx *sql.Tx, email string) (*domain.Customer, error) {
			return nil, apperrors.NewNotFoundError("customer not found")
		},
		InsertFunc: func(ctx context.Context, tx *sql.Tx, c domain.Customer) (uint, error) {
			return 0, errors.New("disk full")
		},
	}
	svc := NewCustomerService(repo, zap.NewNop())

	_, err := svc.GetOrCreate(context.Background(), nil, "Ana", "ana@example.com")
	assert.Error(t, err)
}
