package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedRateCommission_Split(t *testing.T) {
	policy := NewFixedRateCommission()

	testCases := []struct {
		name  string
		total Money
		fee   Money
		owner Money
	}{
		{name: "300.00", total: 30000, fee: 3000, owner: 27000},
		{name: "zero", total: 0, fee: 0, owner: 0},
		{name: "rounds half up", total: 5, fee: 1, owner: 4},
		{name: "rounds down", total: 14, fee: 1, owner: 13},
		{name: "odd cents", total: 12345, fee: 1235, owner: 11110},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fee, owner, err := policy.Split(tc.total)

			require.NoError(t, err)
			assert.Equal(t, tc.fee, fee)
			assert.Equal(t, tc.owner, owner)
		})
	}
}

func TestFixedRateCommission_SplitSumsToTotal(t *testing.T) {
	policy := NewFixedRateCommission()

	for total := Money(0); total < 5000; total += 7 {
		fee, owner, err := policy.Split(total)

		require.NoError(t, err)
		assert.Equal(t, total, fee+owner)
		assert.Equal(t, Money(roundHalfUp(int64(total)*PlatformFeePercent, 100)), fee)
	}
}

func TestFixedRateCommission_SplitRejectsOutOfRange(t *testing.T) {
	policy := NewFixedRateCommission()

	fee, owner, err := policy.Split(MaxAmount)
	require.NoError(t, err)
	assert.Equal(t, MaxAmount, fee+owner)

	for _, total := range []Money{MaxAmount + 1, -MaxAmount - 1, Money(math.MaxInt64)} {
		_, _, err := policy.Split(total)
		assert.ErrorIs(t, err, ErrAmountOverflow)
	}

	_, _, err = FixedRateCommission{Percent: 150}.Split(100)
	assert.Error(t, err)
}

func TestMoney_Times(t *testing.T) {
	testCases := []struct {
		name     string
		price    Money
		n        int
		expected Money
		overflow bool
	}{
		{name: "three nights", price: 10000, n: 3, expected: 30000},
		{name: "zero price", price: 0, n: 365, expected: 0},
		{name: "at the limit", price: MaxAmount, n: 1, expected: MaxAmount},
		{name: "negative quantity", price: 500, n: -2, expected: -1000},
		{name: "wraps int64", price: Money(1e17), n: 100, overflow: true},
		{name: "just past the limit", price: MaxAmount/2 + 1, n: 2, overflow: true},
		{name: "negative past the limit", price: -MaxAmount, n: 2, overflow: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.price.Times(tc.n)

			if tc.overflow {
				assert.ErrorIs(t, err, ErrAmountOverflow)
				assert.Zero(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "270.00", Money(27000).String())
	assert.Equal(t, "-1.50", Money(-150).String())
}
