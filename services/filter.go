package services

import (
	"fmt"
	"strings"

	"optimasfibre-web/models"
)

// NumberInvoices fills in display numbers (INV-001, ...) for invoices the
// backend returned without one. The numbers follow list position and are
// never sent back.
func NumberInvoices(invoices []models.Invoice) []models.Invoice {
	out := make([]models.Invoice, len(invoices))
	copy(out, invoices)
	for i := range out {
		if out[i].InvoiceNumber == "" {
			out[i].InvoiceNumber = fmt.Sprintf("INV-%03d", i+1)
		}
	}
	return out
}

func NumberReceipts(receipts []models.Receipt) []models.Receipt {
	out := make([]models.Receipt, len(receipts))
	copy(out, receipts)
	for i := range out {
		if out[i].ReceiptNumber == "" {
			out[i].ReceiptNumber = fmt.Sprintf("RCP-%03d", i+1)
		}
	}
	return out
}

// FilterInvoices keeps invoices that pass the status filter and whose
// customer name, number or email contains query, ignoring case.
func FilterInvoices(invoices []models.Invoice, query string, status models.StatusFilter) []models.Invoice {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !status.Matches(inv.Status) {
			continue
		}
		if matchesQuery(q, inv.CustomerName, inv.InvoiceNumber, inv.CustomerEmail) {
			out = append(out, inv)
		}
	}
	return out
}

// FilterReceipts is FilterInvoices without a status filter.
func FilterReceipts(receipts []models.Receipt, query string) []models.Receipt {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if matchesQuery(q, r.CustomerName, r.ReceiptNumber, r.CustomerEmail) {
			out = append(out, r)
		}
	}
	return out
}

func matchesQuery(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
