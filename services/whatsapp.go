package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"optimasfibre-web/models"
	"optimasfibre-web/utils"
)

// uriComponentUnescapes undoes the escapes QueryEscape adds beyond
// encodeURIComponent: space as + and the marks !'()*.
var uriComponentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeMessage escapes text the way encodeURIComponent does.
func EncodeMessage(text string) string {
	return uriComponentUnescapes.Replace(url.QueryEscape(text))
}

// WaMeLink opens a chat with number prefilled with text.
func WaMeLink(number, text string) string {
	return "https://wa.me/" + utils.WhatsAppNumber(number) + "?text=" + EncodeMessage(text)
}

// APISendLink is the api.whatsapp.com form used for admin-initiated chats.
func APISendLink(number, text string) string {
	return "https://api.whatsapp.com/send?phone=" + utils.WhatsAppNumber(number) + "&text=" + EncodeMessage(text)
}

// InvoiceContactMessage is the text an admin sends a customer about an invoice.
func InvoiceContactMessage(inv models.Invoice, now time.Time) string {
	var b strings.Builder
	name := inv.CustomerName
	if name == "" {
		name = "there"
	}
	if inv.InvoiceNumber != "" {
		fmt.Fprintf(&b, "Hello %s, this is Optimas Fibre regarding invoice %s", name, inv.InvoiceNumber)
	} else {
		fmt.Fprintf(&b, "Hello %s, this is Optimas Fibre regarding your invoice", name)
	}
	fmt.Fprintf(&b, " for KES %s", inv.Total.StringFixed(2))
	if inv.Status == models.StatusPaid {
		b.WriteString(". Thank you, we have received your payment.")
		return b.String()
	}
	if inv.DueDate != "" {
		if days := utils.DaysOverdue(inv.DueDate, now); days > 0 {
			fmt.Fprintf(&b, ", which is %d day(s) overdue", days)
		} else {
			fmt.Fprintf(&b, ", due on %s", inv.DueDate)
		}
	}
	b.WriteString(". Please let us know if you have any questions.")
	return b.String()
}
