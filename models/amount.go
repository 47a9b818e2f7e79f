package models

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a money value. Decoding never fails on bad input: anything that
// is not a number or a numeric string becomes zero, which is how the admin
// forms treat half-typed amounts.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func AmountFromFloat(f float64) Amount {
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// ParseAmount reads a user-entered amount. Currency symbols and thousands
// separators are not accepted.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	*a = ParseAmount(strings.Trim(string(data), `"`))
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}
