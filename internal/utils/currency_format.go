package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formats a dollar amount with two decimal places and comma
// thousands separators, e.g. 1234.5 -> "1,234.56" style "1,234.50".
// This is a display format; arithmetic always stays in decimal.Decimal.
func FormatUSD(amount decimal.Decimal) string {
	s := amount.Round(2).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// FormatWithPrecision formats an amount rounded to the given number of
// decimal places.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
