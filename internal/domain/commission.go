package domain

import "fmt"

// PlatformFeePercent is the platform's share of every settled booking.
const PlatformFeePercent = 10

// CommissionPolicy splits a settled total between the platform and the owner.
// Implementations must keep fee + owner == total.
type CommissionPolicy interface {
	Split(total Money) (fee, owner Money, err error)
}

// FixedRateCommission takes a constant percentage, rounded half-up to the cent.
type FixedRateCommission struct {
	Percent int64
}

func NewFixedRateCommission() FixedRateCommission {
	return FixedRateCommission{Percent: PlatformFeePercent}
}

// Split fails with ErrAmountOverflow when total is beyond MaxAmount.
func (c FixedRateCommission) Split(total Money) (Money, Money, error) {
	if total > MaxAmount || total < -MaxAmount {
		return 0, 0, fmt.Errorf("%w: total %s", ErrAmountOverflow, total)
	}

	if c.Percent < 0 || c.Percent > 100 {
		return 0, 0, fmt.Errorf("commission percent %d is outside 0..100", c.Percent)
	}

	fee := roundHalfUp(int64(total)*c.Percent, 100)

	return Money(fee), total - Money(fee), nil
}

func roundHalfUp(num, den int64) int64 {
	if num < 0 {
		return -roundHalfUp(-num, den)
	}

	return (num + den/2) / den
}
