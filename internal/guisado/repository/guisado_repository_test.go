package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fonda/internal/domain"
	"fonda/internal/errors"
	"fonda/internal/testutil"
)

func TestNewMySQLGuisadoRepository(t *testing.T) {
	db := &sql.DB{}
	repo := NewMySQLGuisadoRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestGuisadoRepository_DateScopedQueries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLGuisadoRepository(db)
	ctx := context.Background()
	today := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	tinga, err := repo.Insert(ctx, domain.Guisado{Name: "Tinga", Availability: domain.AvailabilityAvailable, Date: today})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, domain.Guisado{Name: "Chicharron", Availability: domain.AvailabilitySoldOut, Date: today})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, domain.Guisado{Name: "Mole", Availability: domain.AvailabilityAvailable, Date: yesterday})
	require.NoError(t, err)

	all, err := repo.FindByDate(ctx, today)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Chicharron", all[0].Name)
	assert.Equal(t, "Tinga", all[1].Name)
	assert.Equal(t, "2025-05-10", domain.FormatDay(all[0].Date))

	available, err := repo.FindAvailableByDate(ctx, today)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, tinga, available[0].ID)

	require.NoError(t, repo.UpdateAvailability(ctx, tinga, domain.AvailabilityLow))
	// mismo valor: no debe reportar not found
	require.NoError(t, repo.UpdateAvailability(ctx, tinga, domain.AvailabilityLow))

	g, err := repo.FindByID(ctx, tinga)
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityLow, g.Availability)
}

func TestGuisadoRepository_UpdateAvailability_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLGuisadoRepository(db)

	err := repo.UpdateAvailability(context.Background(), 9999, domain.AvailabilityLow)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
