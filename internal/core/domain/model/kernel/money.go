package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object carrying a non-negative monetary amount with
// fixed-point semantics: every constructed amount is rounded to two fraction
// digits, so sums and products never accumulate floating-point drift.
//
// The zero value is a valid zero amount, which keeps Money usable inside
// other value objects without a constructor guard.
type Money struct {
	amount decimal.Decimal
}

// NewMoneyFromString parses a decimal amount such as "12.50".
// Negative amounts are rejected.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return newMoney(d)
}

// NewMoneyFromCents constructs an amount from an integer number of cents,
// the representation persistence adapters use.
func NewMoneyFromCents(cents int64) (Money, error) {
	return newMoney(decimal.New(cents, -2))
}

func newMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", d.String()))
	}
	return Money{amount: d.Round(2)}, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulInt returns the amount multiplied by a whole quantity.
func (m Money) MulInt(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).Round(2)}
}

// Cents returns the amount as an integer number of cents.
func (m Money) Cents() int64 {
	return m.amount.Round(2).Shift(2).IntPart()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts by value.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two fraction digits, e.g. "13.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
