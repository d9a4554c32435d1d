package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/grocerly/grocerly-backend/pkg/errors"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain price", raw: "$2.50", want: "2.50"},
		{name: "whole number", raw: "$3", want: "3.00"},
		{name: "surrounding space", raw: " $10.99 ", want: "10.99"},
		{name: "missing symbol", raw: "2.50", wantErr: true},
		{name: "garbage after symbol", raw: "$two fifty", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "symbol only", raw: "$", wantErr: true},
		{name: "negative", raw: "$-1.00", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := Parse(tc.raw, DefaultSymbol)
			if tc.wantErr {
				require.Error(t, err)
				typed := pkgerrors.As(err)
				require.NotNil(t, typed)
				assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, amount.Numeric())
		})
	}
}

func TestLineTotal(t *testing.T) {
	total, err := LineTotal("$2.50", 3, DefaultSymbol)
	require.NoError(t, err)
	assert.Equal(t, "7.50", total.Numeric())
	assert.Equal(t, "$7.50", total.Format(DefaultSymbol))

	zero, err := LineTotal("$2.50", 0, DefaultSymbol)
	require.NoError(t, err)
	assert.True(t, zero.Equal(Zero()))

	_, err = LineTotal("2.50", 3, DefaultSymbol)
	require.Error(t, err)
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().Equal(Zero()), "empty sum is zero")

	a := FromDecimal(decimal.RequireFromString("7.5"))
	b := FromDecimal(decimal.RequireFromString("1.25"))
	assert.Equal(t, "8.75", Sum(a, b).Numeric())
}

func TestFormatUsesProvidedSymbol(t *testing.T) {
	amount, err := ParseNumeric("4.2")
	require.NoError(t, err)
	assert.Equal(t, "€4.20", amount.Format("€"))
	assert.Equal(t, "$4.20", amount.Format(""))
}
