package domain

import (
	"fmt"

	"github.com/flightdeck-io/droneledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// All currency values in the system are US dollars with exactly two
// fractional digits. Every arithmetic result is re-quantized through
// QuantizeMoney so no intermediate ever carries more precision than
// currency allows.

// QuantizeMoney rounds a decimal to 2 places, halves rounding up.
func QuantizeMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ZeroMoney returns 0.00, the identity for AddMoney.
func ZeroMoney() decimal.Decimal {
	return decimal.Zero.Round(2)
}

// AddMoney adds two monetary amounts, quantized to 2 places.
func AddMoney(a, b decimal.Decimal) decimal.Decimal {
	return QuantizeMoney(a.Add(b))
}

// MulMoney multiplies a monetary amount by a factor (rate or percentage),
// quantized to 2 places.
func MulMoney(amount, factor decimal.Decimal) decimal.Decimal {
	return QuantizeMoney(amount.Mul(factor))
}

// MoneyFromString parses a monetary amount, failing at construction time so
// bad input never surfaces deep inside an aggregation.
func MoneyFromString(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid monetary amount %q", apperrors.ErrValidation, s)
	}
	return QuantizeMoney(d), nil
}
