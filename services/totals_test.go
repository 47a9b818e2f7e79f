package services

import (
	"encoding/json"
	"testing"

	"optimasfibre-web/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(amounts ...string) []models.LineItem {
	out := make([]models.LineItem, len(amounts))
	for i, a := range amounts {
		out[i] = models.LineItem{Description: "item", Amount: models.ParseAmount(a)}
	}
	return out
}

func TestComputeTotalsExample(t *testing.T) {
	got := ComputeTotals(items("59.99", "10"), models.ParseAmount("5"))
	assert.Equal(t, "69.99", got.Subtotal.StringFixed(2))
	assert.Equal(t, "74.99", got.Total.StringFixed(2))
}

func TestComputeTotalsNonNumericCountsAsZero(t *testing.T) {
	var parsed []models.LineItem
	require.NoError(t, json.Unmarshal([]byte(`[
		{"description":"a","amount":"12.50"},
		{"description":"b","amount":"n/a"},
		{"description":"c"},
		{"description":"d","amount":7.5}
	]`), &parsed))

	got := ComputeTotals(parsed, models.Amount{})
	assert.Equal(t, "20.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "20.00", got.Total.StringFixed(2))
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil, models.ParseAmount("3"))
	assert.True(t, got.Subtotal.IsZero())
	assert.Equal(t, "3.00", got.Total.StringFixed(2))
}

func TestComputeTotalsAvoidsFloatDrift(t *testing.T) {
	got := ComputeTotals(items("0.1", "0.2"), models.Amount{})
	assert.Equal(t, "0.3", got.Subtotal.String())
}

func TestComputeTotalsIsIdempotent(t *testing.T) {
	list := items("19.99", "0.01", "100")
	tax := models.ParseAmount("16")
	first := ComputeTotals(list, tax)
	second := ComputeTotals(list, tax)
	assert.True(t, first.Subtotal.Equal(second.Subtotal.Decimal))
	assert.True(t, first.Total.Equal(second.Total.Decimal))
}

func TestApplyInvoiceTotalsOverwritesClientValues(t *testing.T) {
	inv := models.Invoice{
		Items:    items("100", "50"),
		Tax:      models.ParseAmount("24"),
		Subtotal: models.ParseAmount("1"),
		Total:    models.ParseAmount("1"),
	}
	ApplyInvoiceTotals(&inv)
	assert.Equal(t, "150.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "174.00", inv.Total.StringFixed(2))
}

func TestApplyReceiptTotalsDefaultsAmountPaid(t *testing.T) {
	r := models.Receipt{Items: items("80"), Tax: models.ParseAmount("20")}
	ApplyReceiptTotals(&r, nil)
	assert.Equal(t, "100.00", r.AmountPaid.StringFixed(2))

	partial := models.ParseAmount("60")
	ApplyReceiptTotals(&r, &partial)
	assert.Equal(t, "60.00", r.AmountPaid.StringFixed(2))
	assert.Equal(t, "100.00", r.Total.StringFixed(2))
}

func TestInvoiceDraftRecomputesOnEveryChange(t *testing.T) {
	d := NewInvoiceDraft(items("10"), models.Amount{})
	assert.Equal(t, "10.00", d.Totals.Total.StringFixed(2))

	d.AddItem(models.LineItem{Description: "router", Amount: models.ParseAmount("59.99")})
	assert.Equal(t, "69.99", d.Totals.Subtotal.StringFixed(2))

	d.SetTax(models.ParseAmount("5"))
	assert.Equal(t, "74.99", d.Totals.Total.StringFixed(2))

	d.UpdateItem(0, models.LineItem{Description: "install", Amount: models.ParseAmount("abc")})
	assert.Equal(t, "59.99", d.Totals.Subtotal.StringFixed(2))

	d.RemoveItem(1)
	assert.Equal(t, "0.00", d.Totals.Subtotal.StringFixed(2))
	assert.Equal(t, "5.00", d.Totals.Total.StringFixed(2))

	d.RemoveItem(7)
	assert.Len(t, d.Items, 1)
}

func TestNewInvoiceDraftCopiesItems(t *testing.T) {
	src := items("1", "2")
	d := NewInvoiceDraft(src, models.Amount{})
	d.UpdateItem(0, models.LineItem{Description: "x", Amount: models.ParseAmount("9")})
	assert.Equal(t, "1", src[0].Amount.String())
}
