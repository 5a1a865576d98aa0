package kernel

import (
	"fmt"

	"bakery/internal/pkg/errs"
)

// centsPerUnit is the number of cents in one currency unit.
const centsPerUnit = 100

// Money is a value object representing a non-negative currency amount.
// Amounts are stored in integer cents so that percentage calculations
// (such as loyalty earn rates) floor exactly without floating-point drift.
//
// The zero value of Money is a valid zero amount. Negative amounts cannot
// be constructed.
//
// Example usage:
//
//	total, err := kernel.NewMoneyFromCents(100000) // 1000.00
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(total) // "1000.00"
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money amount from integer cents.
// Returns an error if cents is negative.
//
// Example:
//
//	m, err := kernel.NewMoneyFromCents(2550) // 25.50
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents}, nil
}

// MoneyFromUnits creates a Money amount from whole currency units.
// Returns an error if units is negative.
func MoneyFromUnits(units int64) (Money, error) {
	if units < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d units is negative", units))
	}
	return Money{cents: units * centsPerUnit}, nil
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// Percent returns floor(m × pct / 100) expressed in whole currency units.
// It is used to convert an order total into loyalty points, where one point
// corresponds to one currency unit.
//
// Example:
//
//	total, _ := kernel.NewMoneyFromCents(100000) // 1000.00
//	total.Percent(10)                            // 100
func (m Money) Percent(pct int64) int64 {
	return m.cents * pct / (100 * centsPerUnit)
}

// CoversUnits reports whether the amount is at least the given number of
// whole currency units. Used to cap point redemption at the order total.
func (m Money) CoversUnits(units int64) bool {
	return m.cents >= units*centsPerUnit
}

// IsEqual compares two Money amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the amount formatted with two decimal places, e.g. "1000.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/centsPerUnit, m.cents%centsPerUnit)
}
