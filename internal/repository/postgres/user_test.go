//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Flow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewUserRepository(testDB, logger)
	ctx := context.Background()

	user := seedUser(t, "guest@example.com", domain.RoleClient)
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	tx, err := testDB.Beginx()
	require.NoError(t, err)
	err = repo.CreateUser(ctx, tx, &domain.User{Email: "guest@example.com", FirstName: "A", LastName: "B", Role: domain.RoleOwner})
	require.NoError(t, tx.Rollback())
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	inTx(t, func(tx *sqlx.Tx) {
		require.NoError(t, repo.UpdateReputation(ctx, tx, user.ID, domain.Aggregate{Score: 8.5, Count: 2}))
	})

	got, err := repo.GetUser(ctx, testDB, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.5, got.ReputationScore)
	assert.Equal(t, 2, got.TotalRatings)

	_, err = repo.GetUser(ctx, testDB, 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
