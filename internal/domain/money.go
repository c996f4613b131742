package domain

import (
	"errors"
	"fmt"
	"math"
)

// MaxAmount bounds every amount the service stores, leaving room for the
// percentage arithmetic of a commission split.
const MaxAmount = Money(math.MaxInt64 / 100)

// MaxPricePerNight caps the nightly price of an apartment (100 000 000.00).
const MaxPricePerNight = Money(10_000_000_000)

var ErrAmountOverflow = errors.New("amount out of range")

// Money is an amount in minor currency units (cents).
type Money int64

func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}

	return fmt.Sprintf("%s%d.%02d", sign, int64(m)/100, int64(m)%100)
}

// Times multiplies a per-unit price by a whole quantity. Results beyond
// MaxAmount in either direction fail with ErrAmountOverflow.
func (m Money) Times(n int) (Money, error) {
	if m == 0 || n == 0 {
		return 0, nil
	}

	q := int64(n)
	if q < 0 {
		q = -q
	}

	limit := MaxAmount / Money(q)
	if m > limit || m < -limit {
		return 0, fmt.Errorf("%w: %s x %d", ErrAmountOverflow, m, n)
	}

	return m * Money(n), nil
}
