package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier delivers a short text to the sales team.
type Notifier interface {
	Notify(ctx context.Context, body string) error
}

// WhatsAppNotifier sends staff alerts through Twilio's WhatsApp sender.
type WhatsAppNotifier struct {
	client *twilio.RestClient
	from   string
	to     string
}

// NewWhatsAppNotifier returns nil when Twilio is not configured.
func NewWhatsAppNotifier(accountSID, authToken, from, to string) *WhatsAppNotifier {
	if accountSID == "" || authToken == "" || from == "" || to == "" {
		slog.Warn("Twilio is not configured, staff booking alerts are disabled")
		return nil
	}
	return &WhatsAppNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: whatsappAddress(from),
		to:   whatsappAddress(to),
	}
}

// Notify returns when Twilio answers or ctx is done, whichever is first.
func (n *WhatsAppNotifier) Notify(ctx context.Context, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(body)

	type result struct {
		sid string
		err error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := n.client.Api.CreateMessage(params)
		r := result{err: err}
		if err == nil && resp.Sid != nil {
			r.sid = *resp.Sid
		}
		done <- r
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return r.err
		}
		slog.InfoContext(ctx, "Staff alert sent", "sid", r.sid)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sending staff alert: %w", ctx.Err())
	}
}

func whatsappAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
