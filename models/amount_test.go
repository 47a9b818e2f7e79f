package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshalLenient(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`59.99`, "59.99"},
		{`"10"`, "10"},
		{`" 12.5 "`, "12.5"},
		{`""`, "0"},
		{`null`, "0"},
		{`"abc"`, "0"},
		{`true`, "0"},
		{`{"x":1}`, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tc.in), &a))
			assert.Equal(t, tc.want, a.String())
		})
	}
}

func TestAmountMarshalsAsNumber(t *testing.T) {
	b, err := json.Marshal(LineItem{Description: "Router", Amount: ParseAmount("59.9")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"Router","amount":59.90}`, string(b))
}

func TestLineItemMissingAmountIsZero(t *testing.T) {
	var item LineItem
	require.NoError(t, json.Unmarshal([]byte(`{"description":"Install"}`), &item))
	assert.True(t, item.Amount.IsZero())
}

func TestParseStatusFilter(t *testing.T) {
	f, err := ParseStatusFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseStatusFilter(" Unpaid ")
	require.NoError(t, err)
	assert.Equal(t, FilterUnpaid, f)

	_, err = ParseStatusFilter("overdue")
	assert.Error(t, err)
}

func TestStatusFilterMatches(t *testing.T) {
	assert.True(t, FilterAll.Matches(StatusPaid))
	assert.True(t, FilterPaid.Matches(StatusPaid))
	assert.False(t, FilterPaid.Matches(StatusUnpaid))
	assert.True(t, FilterUnpaid.Matches(StatusUnpaid))
	assert.True(t, FilterUnpaid.Matches(""), "invoices without a status count as unpaid")
}
