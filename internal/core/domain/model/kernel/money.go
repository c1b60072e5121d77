package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in integer cents.
// Storing cents avoids floating point rounding in totals arithmetic.
//
// The zero value is a valid amount of zero. External decimal input is
// validated by MoneyFromDecimalString; order totals never go below zero.
//
// Example usage:
//
//	price, err := kernel.MoneyFromDecimalString("9.99")
//	if err != nil {
//	    // handle invalid amount
//	}
//	subtotal := price.Mul(3) // 29.97
type Money struct {
	cents int64
}

// MoneyFromCents creates a Money from an integer cents amount. Callers pass
// amounts that are already validated or restored from the store; untrusted
// decimal input goes through MoneyFromDecimalString instead.
func MoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

// MoneyFromDecimalString parses a decimal amount such as "15", "9.9" or "9.99"
// into Money. At most two fraction digits are accepted. Payment events carry
// fees and prices in this format.
func MoneyFromDecimalString(s string) (Money, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Money{}, errs.NewValueIsRequiredError("amount")
	}

	// A sign must be rejected up front: "-0.50" parses to a whole part of
	// zero and would otherwise slip through as +50 cents.
	if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "+") {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is signed", trimmed))
	}

	whole, fraction, _ := strings.Cut(trimmed, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}

	cents := units * 100
	if fraction != "" {
		if len(fraction) > 2 {
			return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
				fmt.Errorf("%s has more than two fraction digits", trimmed))
		}
		frac, fracErr := strconv.ParseInt(fraction, 10, 64)
		if fracErr != nil || frac < 0 {
			return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fracErr)
		}
		if len(fraction) == 1 {
			frac *= 10
		}
		cents += frac
	}

	return Money{cents: cents}, nil
}

// Cents returns the amount in integer cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Mul returns the amount multiplied by a non-negative quantity.
func (m Money) Mul(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String returns the decimal representation, e.g. "35.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
