package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fonda/internal/domain"
	"fonda/internal/testutil"
)

func TestCommentRepository_InsertAndFindAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	res, err := db.Exec(`INSERT INTO Customer (name, email) VALUES ('Ana', 'ana@example.com')`)
	require.NoError(t, err)
	customerID, _ := res.LastInsertId()

	repo := NewMySQLCommentRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	first, err := repo.Insert(ctx, tx, domain.Comment{CustomerID: uint(customerID), Message: "Muy rico"})
	require.NoError(t, err)
	second, err := repo.Insert(ctx, tx, domain.Comment{CustomerID: uint(customerID), Message: "Tardó un poco"})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	comments, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	// mismo createdAt: desempata por id descendente
	assert.Equal(t, second, comments[0].ID)
	assert.Equal(t, first, comments[1].ID)
	assert.Equal(t, "Ana", comments[0].CustomerName)
	assert.Equal(t, "ana@example.com", comments[0].CustomerEmail)
}
