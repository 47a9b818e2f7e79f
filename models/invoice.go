package models

import (
	"fmt"
	"strings"
)

type InvoiceStatus string

const (
	StatusUnpaid InvoiceStatus = "unpaid"
	StatusPaid   InvoiceStatus = "paid"
)

func (s InvoiceStatus) Valid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

// StatusFilter narrows the invoice list. The zero value means "all".
type StatusFilter string

const (
	FilterAll    StatusFilter = "all"
	FilterPaid   StatusFilter = "paid"
	FilterUnpaid StatusFilter = "unpaid"
)

func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "paid":
		return FilterPaid, nil
	case "unpaid":
		return FilterUnpaid, nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// Matches reports whether an invoice in the given status passes the filter.
func (f StatusFilter) Matches(status InvoiceStatus) bool {
	switch f {
	case FilterPaid:
		return status == StatusPaid
	case FilterUnpaid:
		return status != StatusPaid
	}
	return true
}

type LineItem struct {
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
}

// Customer holds the identity fields shared by invoices and receipts.
type Customer struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`
}

// Invoice is the dashboard's transient copy of a backend invoice. Subtotal
// and Total are always derived from Items and Tax before anything is sent
// back to the backend.
type Invoice struct {
	ID            string `json:"_id,omitempty"`
	InvoiceNumber string `json:"invoiceNumber,omitempty"`
	Customer
	InvoiceDate string        `json:"invoiceDate"`
	DueDate     string        `json:"dueDate"`
	Items       []LineItem    `json:"items"`
	Subtotal    Amount        `json:"subtotal"`
	Tax         Amount        `json:"tax"`
	Total       Amount        `json:"total"`
	Status      InvoiceStatus `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	CreatedAt   string        `json:"createdAt,omitempty"`
	UpdatedAt   string        `json:"updatedAt,omitempty"`
}

// Receipt mirrors an invoice once it has been paid. AmountPaid starts out
// equal to Total but may be edited independently.
type Receipt struct {
	ID            string `json:"_id,omitempty"`
	ReceiptNumber string `json:"receiptNumber,omitempty"`
	InvoiceNumber string `json:"invoiceNumber,omitempty"`
	Customer
	PaymentDate   string     `json:"paymentDate"`
	Items         []LineItem `json:"items"`
	Subtotal      Amount     `json:"subtotal"`
	Tax           Amount     `json:"tax"`
	Total         Amount     `json:"total"`
	AmountPaid    Amount     `json:"amountPaid"`
	PaymentMethod string     `json:"paymentMethod"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     string     `json:"createdAt,omitempty"`
	UpdatedAt     string     `json:"updatedAt,omitempty"`
}
