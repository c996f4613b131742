//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepository_Stats(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewReportRepository(testDB, logger)
	payments := NewPaymentRepository(testDB, logger)
	ctx := context.Background()

	owner := seedUser(t, "owner@example.com", domain.RoleOwner)
	lonelyOwner := seedUser(t, "lonely@example.com", domain.RoleOwner)
	client := seedUser(t, "client@example.com", domain.RoleClient)
	apartment := seedApartment(t, owner.ID)
	seedApartment(t, owner.ID)

	paid := seedBooking(t, apartment.ID, client.ID, date(1), date(4), domain.BookingCompleted)
	pending := seedBooking(t, apartment.ID, client.ID, date(10), date(13), domain.BookingCheckedIn)

	paidAt := time.Date(2025, time.January, 4, 10, 0, 0, 0, time.UTC)

	inTx(t, func(tx *sqlx.Tx) {
		require.NoError(t, payments.CreatePayment(ctx, tx, &domain.Payment{
			BookingID: paid.ID, Amount: 30000, PlatformFee: 3000, OwnerAmount: 27000,
			Method: domain.MethodCreditCard, Status: domain.PaymentPaid, PaidAt: &paidAt,
		}))
		require.NoError(t, payments.CreatePayment(ctx, tx, &domain.Payment{
			BookingID: pending.ID, Amount: 30000, PlatformFee: 3000, OwnerAmount: 27000,
			Method: domain.MethodCash, Status: domain.PaymentPending,
		}))
	})

	platform, err := repo.GetPlatformStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformStats{
		TotalUsers:      3,
		TotalClients:    1,
		TotalOwners:     2,
		TotalApartments: 2,
		TotalBookings:   2,
		TotalPayments:   2,
		TotalRevenue:    30000,
		PlatformRevenue: 3000,
	}, *platform)

	ownerStats, err := repo.GetOwnerStats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerStats{
		OwnerID:         owner.ID,
		TotalApartments: 2,
		TotalBookings:   2,
		OwnerRevenue:    27000,
		TotalAmount:     30000,
	}, *ownerStats)

	empty, err := repo.GetOwnerStats(ctx, lonelyOwner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerStats{OwnerID: lonelyOwner.ID}, *empty)
}
