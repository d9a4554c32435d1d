package money

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
)

// DefaultSymbol is the currency prefix the wire contract uses.
const DefaultSymbol = "$"

// Amount is a decimal currency amount. It replaces the ad hoc
// strip-the-symbol-and-hope parsing of price strings: malformed input is an
// explicit validation error instead of a NaN quietly flowing into totals.
type Amount struct {
	value decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{}
}

// FromDecimal wraps an existing decimal value.
func FromDecimal(value decimal.Decimal) Amount {
	return Amount{value: value}
}

// Parse reads a currency-prefixed price string such as "$2.50". The symbol
// prefix is mandatory and the remainder must parse as a non-negative decimal.
func Parse(raw, symbol string) (Amount, error) {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, symbol) {
		return Amount{}, pkgerrors.New(pkgerrors.CodeValidation, "price must start with the currency symbol "+symbol)
	}
	return ParseNumeric(strings.TrimPrefix(trimmed, symbol))
}

// ParseNumeric reads a bare decimal string with no currency prefix, as the
// product form edits it.
func ParseNumeric(raw string) (Amount, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Amount{}, pkgerrors.New(pkgerrors.CodeValidation, "price is required")
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Amount{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price is not a valid number")
	}
	if value.IsNegative() {
		return Amount{}, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return Amount{value: value}, nil
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Mul multiplies the amount by an integer quantity.
func (a Amount) Mul(quantity int) Amount {
	return Amount{value: a.value.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Add returns the sum of two amounts.
func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

// Equal reports value equality regardless of exponent representation.
func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

// Numeric renders the amount with two decimal places and no symbol.
func (a Amount) Numeric() string {
	return a.value.StringFixed(2)
}

// Format renders the amount the way the wire contract carries prices.
func (a Amount) Format(symbol string) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return symbol + a.Numeric()
}

// LineTotal computes price * quantity for a currency-prefixed price string.
func LineTotal(price string, quantity int, symbol string) (Amount, error) {
	amount, err := Parse(price, symbol)
	if err != nil {
		return Amount{}, err
	}
	return amount.Mul(quantity), nil
}

// Sum adds up a list of precomputed amounts. An empty list sums to zero.
func Sum(amounts ...Amount) Amount {
	total := Zero()
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
