package services

import (
	"testing"
	"time"

	"optimasfibre-web/models"

	"github.com/stretchr/testify/assert"
)

func TestEncodeMessage(t *testing.T) {
	assert.Equal(t, "Hello%20there!%0AA%26B%3D1", EncodeMessage("Hello there!\nA&B=1"))
	assert.Equal(t, "*Plan%20details*%0AHome%20Plus%20(20%20Mbps)%20it's%20%2B%20more", EncodeMessage("*Plan details*\nHome Plus (20 Mbps) it's + more"))
	assert.Equal(t, "100%25%20%2F%20month", EncodeMessage("100% / month"))
}

func TestLinks(t *testing.T) {
	assert.Equal(t, "https://wa.me/254700000111?text=Hi%20you", WaMeLink("+254 700-000-111", "Hi you"))
	assert.Equal(t, "https://api.whatsapp.com/send?phone=254712345678&text=Hi", APISendLink("(254) 712 345 678", "Hi"))
}

func TestInvoiceContactMessage(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	inv := models.Invoice{
		InvoiceNumber: "INV-004",
		Customer:      models.Customer{CustomerName: "Jane"},
		DueDate:       "2024-03-05",
		Total:         models.ParseAmount("3999"),
		Status:        models.StatusUnpaid,
	}
	msg := InvoiceContactMessage(inv, now)
	assert.Contains(t, msg, "Hello Jane")
	assert.Contains(t, msg, "invoice INV-004 for KES 3999.00")
	assert.Contains(t, msg, "5 day(s) overdue")

	inv.DueDate = "2024-03-20"
	assert.Contains(t, InvoiceContactMessage(inv, now), "due on 2024-03-20")

	inv.Status = models.StatusPaid
	assert.Contains(t, InvoiceContactMessage(inv, now), "received your payment")
}

func TestInvoiceContactMessageWithoutNumber(t *testing.T) {
	inv := models.Invoice{Customer: models.Customer{CustomerName: "Jane"}, Total: models.ParseAmount("10"), Status: models.StatusPaid}
	msg := InvoiceContactMessage(inv, time.Now())
	assert.Contains(t, msg, "regarding your invoice for KES 10.00")
	assert.NotContains(t, msg, "invoice  for")
}
