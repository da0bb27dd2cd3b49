package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fonda/internal/domain"
	"fonda/internal/errors"
	"fonda/internal/testutil"
)

func TestNewMySQLCustomerRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLCustomerRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestCustomerRepository_InsertAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLCustomerRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = repo.FindByEmail(ctx, tx, "ana@example.com")
	_, ok := errors.IsNotFoundError(err)
	require.True(t, ok)

	id, err := repo.Insert(ctx, tx, domain.Customer{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, id)

	// mismo correo: se conserva la fila y el nombre original
	again, err := repo.Insert(ctx, tx, domain.Customer{Name: "Otra Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, id, again)

	c, err := repo.FindByEmail(ctx, tx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, "Ana", c.Name)

	require.NoError(t, tx.Commit())
}
