package domain_test

import (
	"testing"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/flightdeck-io/droneledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantizeMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"33.33", "33.33"},
		{"0.015", "0.02"},
		{"-2.005", "-2.01"},
	}
	for _, tc := range cases {
		got := domain.QuantizeMoney(decimal.RequireFromString(tc.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"QuantizeMoney(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestMulMoneyHalfDollarRule(t *testing.T) {
	// 50% of amounts that do not split evenly must round at the cent,
	// never carry extra precision into later sums.
	half := decimal.NewFromFloat(0.50)
	cases := []struct {
		amount string
		want   string
	}{
		{"10.00", "5"},
		{"10.01", "5.01"}, // 5.005 rounds up
		{"33.33", "16.67"},
		{"0.01", "0.01"}, // 0.005 rounds up
	}
	for _, tc := range cases {
		got := domain.MulMoney(decimal.RequireFromString(tc.amount), half)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"MulMoney(%s, 0.5) = %s, want %s", tc.amount, got, tc.want)
		assert.True(t, got.Exponent() >= -2, "result carries more than 2 decimal places")
	}
}

func TestAddMoneyQuantizes(t *testing.T) {
	sum := domain.AddMoney(decimal.RequireFromString("0.105"), decimal.RequireFromString("0.10"))
	assert.True(t, sum.Equal(decimal.RequireFromString("0.21")))
}

func TestMoneyFromString(t *testing.T) {
	amount, err := domain.MoneyFromString("12.345")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("12.35")))

	_, err = domain.MoneyFromString("not-a-number")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
