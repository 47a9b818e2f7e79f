package services

import (
	"testing"

	"optimasfibre-web/models"

	"github.com/stretchr/testify/assert"
)

func sampleInvoices() []models.Invoice {
	return []models.Invoice{
		{InvoiceNumber: "INV-001", Customer: models.Customer{CustomerName: "Jane Wanjiru", CustomerEmail: "jane@example.com"}, Status: models.StatusPaid},
		{InvoiceNumber: "INV-002", Customer: models.Customer{CustomerName: "Otieno Ochieng", CustomerEmail: "otieno@example.com"}, Status: models.StatusUnpaid},
		{InvoiceNumber: "INV-0021", Customer: models.Customer{CustomerName: "Amina Hassan", CustomerEmail: "amina@corp.co.ke"}, Status: models.StatusPaid},
		{InvoiceNumber: "INV-0022", Customer: models.Customer{CustomerName: "Brian Kiptoo", CustomerEmail: "brian@corp.co.ke"}, Status: models.StatusUnpaid},
	}
}

func numbers(invs []models.Invoice) []string {
	out := make([]string, len(invs))
	for i, inv := range invs {
		out[i] = inv.InvoiceNumber
	}
	return out
}

func TestFilterInvoicesByNumberAndStatus(t *testing.T) {
	got := FilterInvoices(sampleInvoices(), "inv-002", models.FilterUnpaid)
	assert.Equal(t, []string{"INV-002", "INV-0022"}, numbers(got))
}

func TestFilterInvoicesMatchesNameAndEmail(t *testing.T) {
	got := FilterInvoices(sampleInvoices(), "WANJIRU", models.FilterAll)
	assert.Equal(t, []string{"INV-001"}, numbers(got))

	got = FilterInvoices(sampleInvoices(), "corp.co.ke", models.FilterAll)
	assert.Equal(t, []string{"INV-0021", "INV-0022"}, numbers(got))
}

func TestFilterInvoicesEmptyQueryKeepsStatusOnly(t *testing.T) {
	assert.Len(t, FilterInvoices(sampleInvoices(), "", models.FilterAll), 4)
	assert.Equal(t, []string{"INV-001", "INV-0021"}, numbers(FilterInvoices(sampleInvoices(), "  ", models.FilterPaid)))
}

func TestFilterInvoicesIsPure(t *testing.T) {
	in := sampleInvoices()
	a := FilterInvoices(in, "inv", models.FilterPaid)
	b := FilterInvoices(in, "inv", models.FilterPaid)
	assert.Equal(t, a, b)
	assert.Equal(t, sampleInvoices(), in)
}

func TestFilterInvoicesNoMatch(t *testing.T) {
	got := FilterInvoices(sampleInvoices(), "nobody", models.FilterAll)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterReceipts(t *testing.T) {
	receipts := []models.Receipt{
		{ReceiptNumber: "RCP-001", Customer: models.Customer{CustomerName: "Jane", CustomerEmail: "jane@example.com"}},
		{ReceiptNumber: "RCP-002", Customer: models.Customer{CustomerName: "Otieno", CustomerEmail: "o@example.com"}},
	}
	got := FilterReceipts(receipts, "rcp-002")
	assert.Len(t, got, 1)
	assert.Equal(t, "Otieno", got[0].CustomerName)

	assert.Len(t, FilterReceipts(receipts, ""), 2)
}

func TestNumberInvoicesFillsOnlyMissing(t *testing.T) {
	in := []models.Invoice{{InvoiceNumber: ""}, {InvoiceNumber: "INV-777"}, {}}
	got := NumberInvoices(in)
	assert.Equal(t, []string{"INV-001", "INV-777", "INV-003"}, numbers(got))
	assert.Empty(t, in[0].InvoiceNumber, "input must not be modified")

	rs := NumberReceipts([]models.Receipt{{}, {ReceiptNumber: "R-9"}})
	assert.Equal(t, "RCP-001", rs[0].ReceiptNumber)
	assert.Equal(t, "R-9", rs[1].ReceiptNumber)
}

func TestFallbackNumbersAreSearchable(t *testing.T) {
	in := NumberInvoices([]models.Invoice{{Status: models.StatusUnpaid}, {Status: models.StatusUnpaid}})
	got := FilterInvoices(in, "inv-002", models.FilterUnpaid)
	assert.Len(t, got, 1)
}
