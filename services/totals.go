package services

import (
	"optimasfibre-web/models"

	"github.com/shopspring/decimal"
)

// Money is rounded half away from zero to cents once, after summing.
const moneyPlaces = 2

type Totals struct {
	Subtotal models.Amount `json:"subtotal"`
	Tax      models.Amount `json:"tax"`
	Total    models.Amount `json:"total"`
}

// ComputeTotals sums the item amounts and adds tax. Amounts that failed to
// parse are already zero, so they contribute nothing.
func ComputeTotals(items []models.LineItem, tax models.Amount) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount.Decimal)
	}
	subtotal = subtotal.Round(moneyPlaces)
	return Totals{
		Subtotal: models.NewAmount(subtotal),
		Tax:      tax,
		Total:    models.NewAmount(subtotal.Add(tax.Decimal).Round(moneyPlaces)),
	}
}

// ApplyInvoiceTotals overwrites the derived fields of inv.
func ApplyInvoiceTotals(inv *models.Invoice) Totals {
	t := ComputeTotals(inv.Items, inv.Tax)
	inv.Subtotal, inv.Total = t.Subtotal, t.Total
	return t
}

// ApplyReceiptTotals overwrites the derived fields of r. When amountPaid is
// nil the receipt is taken to be paid in full.
func ApplyReceiptTotals(r *models.Receipt, amountPaid *models.Amount) Totals {
	t := ComputeTotals(r.Items, r.Tax)
	r.Subtotal, r.Total = t.Subtotal, t.Total
	if amountPaid != nil {
		r.AmountPaid = *amountPaid
	} else {
		r.AmountPaid = t.Total
	}
	return t
}

// InvoiceDraft is an invoice being edited. Every mutation re-derives the
// totals so Subtotal and Total are never stale.
type InvoiceDraft struct {
	Items  []models.LineItem
	Tax    models.Amount
	Totals Totals
}

func NewInvoiceDraft(items []models.LineItem, tax models.Amount) *InvoiceDraft {
	d := &InvoiceDraft{Items: append([]models.LineItem(nil), items...), Tax: tax}
	d.recompute()
	return d
}

func (d *InvoiceDraft) AddItem(item models.LineItem) {
	d.Items = append(d.Items, item)
	d.recompute()
}

// RemoveItem drops the item at index i. Out-of-range indexes are ignored.
func (d *InvoiceDraft) RemoveItem(i int) {
	if i < 0 || i >= len(d.Items) {
		return
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
	d.recompute()
}

func (d *InvoiceDraft) UpdateItem(i int, item models.LineItem) {
	if i < 0 || i >= len(d.Items) {
		return
	}
	d.Items[i] = item
	d.recompute()
}

func (d *InvoiceDraft) SetTax(tax models.Amount) {
	d.Tax = tax
	d.recompute()
}

func (d *InvoiceDraft) recompute() {
	d.Totals = ComputeTotals(d.Items, d.Tax)
}
