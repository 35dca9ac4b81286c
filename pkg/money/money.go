// Package money wraps Rhymond/go-money with the small surface the
// extraction pipeline needs: hryvnia-denominated amounts built from
// integer cents, safe arithmetic, and locale-correct display strings.
package money

import (
	"errors"
	"fmt"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// UAH is the default currency code for everything this module extracts.
const UAH = "UAH"

var (
	// ErrCurrencyMismatch is returned when arithmetic mixes currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrInvalidAmount is returned when a string cannot be parsed as money.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Money is an immutable amount in a single currency. The zero value is
// not usable; construct via New or FromString.
type Money struct {
	inner *gomoney.Money
}

// New creates Money from an integer number of minor units (kopiykas for
// UAH). An empty currency defaults to UAH.
func New(cents int64, currency string) *Money {
	if currency == "" {
		currency = UAH
	}
	return &Money{inner: gomoney.New(cents, currency)}
}

// UAHFromCents creates a hryvnia amount from kopiykas.
func UAHFromCents(cents int64) *Money {
	return New(cents, UAH)
}

// FromString parses a decimal string such as "1234.56" into Money.
func FromString(s, currency string) (*Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return New(d.Shift(2).IntPart(), currency), nil
}

// Cents returns the amount in minor units.
func (m *Money) Cents() int64 {
	return m.inner.Amount()
}

// Currency returns the ISO currency code.
func (m *Money) Currency() string {
	return m.inner.Currency().Code
}

// Decimal returns the amount in major units as an exact decimal.
func (m *Money) Decimal() decimal.Decimal {
	return decimal.New(m.inner.Amount(), -int32(m.inner.Currency().Fraction))
}

// IsZero reports whether the amount is exactly zero.
func (m *Money) IsZero() bool {
	return m.inner.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m *Money) IsNegative() bool {
	return m.inner.IsNegative()
}

// Add returns m + other.
func (m *Money) Add(other *Money) (*Money, error) {
	if m.Currency() != other.Currency() {
		return nil, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency(), other.Currency())
	}
	sum, err := m.inner.Add(other.inner)
	if err != nil {
		return nil, err
	}
	return &Money{inner: sum}, nil
}

// Negate returns the amount with its sign flipped.
func (m *Money) Negate() *Money {
	return New(-m.inner.Amount(), m.Currency())
}

// Abs returns the non-negative magnitude.
func (m *Money) Abs() *Money {
	return &Money{inner: m.inner.Absolute()}
}

// Equals reports value and currency equality.
func (m *Money) Equals(other *Money) bool {
	eq, err := m.inner.Equals(other.inner)
	return err == nil && eq
}

// Display renders the amount with its currency symbol, for example
// "1 234.56 ₴" for UAH.
func (m *Money) Display() string {
	return m.inner.Display()
}

// String renders the bare decimal amount without a symbol.
func (m *Money) String() string {
	return m.Decimal().StringFixed(int32(m.inner.Currency().Fraction))
}

// Sum adds a series of amounts in one currency. An empty series yields
// zero in the given currency.
func Sum(currency string, amounts ...*Money) (*Money, error) {
	total := New(0, currency)
	for _, a := range amounts {
		var err error
		total, err = total.Add(a)
		if err != nil {
			return nil, err
		}
	}
	return total, nil
}
