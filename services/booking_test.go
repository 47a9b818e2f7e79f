package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"optimasfibre-web/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeads struct {
	recorded []*models.BookingLead
	notified int
	err      error
}

func (f *fakeLeads) RecordLead(ctx context.Context, lead *models.BookingLead) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, lead)
	return nil
}

func (f *fakeLeads) MarkNotified(ctx context.Context, lead *models.BookingLead) error {
	f.notified++
	return nil
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(ctx context.Context, body string) error {
	f.messages = append(f.messages, body)
	return f.err
}

func testCatalog() *models.Catalog {
	return &models.Catalog{Plans: []models.Plan{
		{ID: "home-plus", Name: "Home Plus", Speed: "20 Mbps", Price: "KES 3,999", Period: "month", Features: []string{"Unlimited data", "Free router"}},
		{ID: "broken", Name: "Broken", Price: ""},
	}}
}

func validBooking() BookingRequest {
	return BookingRequest{
		PlanID:   "home-plus",
		Name:     "Jane Wanjiru",
		Phone:    "+254 712 345 678",
		Email:    "jane@example.com",
		Location: "Kilimani",
	}
}

func TestBookBuildsWhatsAppLink(t *testing.T) {
	leads := &fakeLeads{}
	notifier := &fakeNotifier{}
	svc := NewBookingService(testCatalog(), "+254 700 000 111", leads, notifier)

	res, err := svc.Book(context.Background(), validBooking())
	require.NoError(t, err)
	svc.Wait()

	assert.True(t, strings.HasPrefix(res.WhatsAppURL, "https://wa.me/254700000111?text="))
	assert.NotContains(t, res.WhatsAppURL, "+", "spaces must be encoded as %20")

	u, err := url.Parse(res.WhatsAppURL)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Equal(t, res.Message, text)
	assert.Contains(t, text, "Plan: Home Plus")
	assert.Contains(t, text, "Price: KES 3,999/month")
	assert.Contains(t, text, "Features: Unlimited data, Free router")
	assert.Contains(t, text, "Location: Kilimani")
	assert.Contains(t, text, "Email: jane@example.com")

	require.Len(t, leads.recorded, 1)
	assert.Equal(t, "home-plus", leads.recorded[0].PlanID)
	assert.Len(t, notifier.messages, 1)
	assert.Equal(t, 1, leads.notified)
}

func TestBookRequiredFieldsShortCircuit(t *testing.T) {
	cases := map[string]func(*BookingRequest){
		"name":     func(r *BookingRequest) { r.Name = "" },
		"phone":    func(r *BookingRequest) { r.Phone = "   " },
		"location": func(r *BookingRequest) { r.Location = "" },
		"planId":   func(r *BookingRequest) { r.PlanID = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			leads := &fakeLeads{}
			notifier := &fakeNotifier{}
			svc := NewBookingService(testCatalog(), "254700000111", leads, notifier)

			req := validBooking()
			mutate(&req)
			res, err := svc.Book(context.Background(), req)
			svc.Wait()

			assert.Nil(t, res)
			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, field, valErr.Field)
			assert.Empty(t, leads.recorded)
			assert.Empty(t, notifier.messages)
		})
	}
}

func TestBookEmailIsOptionalButChecked(t *testing.T) {
	svc := NewBookingService(testCatalog(), "254700000111", nil, nil)

	req := validBooking()
	req.Email = ""
	res, err := svc.Book(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, res.Message, "Email:")

	req.Email = "not-an-email"
	_, err = svc.Book(context.Background(), req)
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "email", valErr.Field)
}

func TestBookRejectsUnknownOrIncompletePlan(t *testing.T) {
	svc := NewBookingService(testCatalog(), "254700000111", nil, nil)

	req := validBooking()
	req.PlanID = "missing"
	_, err := svc.Book(context.Background(), req)
	assert.ErrorContains(t, err, "not available")

	req.PlanID = "broken"
	_, err = svc.Book(context.Background(), req)
	assert.ErrorContains(t, err, "missing its details")
}

func TestBookRejectsBadPhone(t *testing.T) {
	svc := NewBookingService(testCatalog(), "254700000111", nil, nil)
	req := validBooking()
	req.Phone = "call me"
	_, err := svc.Book(context.Background(), req)
	assert.ErrorContains(t, err, "not valid")
}

func TestBookSurvivesLeadAndNotifierFailures(t *testing.T) {
	leads := &fakeLeads{err: errors.New("db down")}
	notifier := &fakeNotifier{err: errors.New("twilio down")}
	svc := NewBookingService(testCatalog(), "254700000111", leads, notifier)

	res, err := svc.Book(context.Background(), validBooking())
	require.NoError(t, err)
	svc.Wait()
	assert.NotEmpty(t, res.WhatsAppURL)
	assert.Equal(t, 0, leads.notified)
}

func TestBookWithoutNumberFails(t *testing.T) {
	svc := NewBookingService(testCatalog(), "", nil, nil)
	_, err := svc.Book(context.Background(), validBooking())
	assert.Error(t, err)
	var valErr *ValidationError
	assert.False(t, errors.As(err, &valErr))
}

func TestBookAcceptsLocalPhone(t *testing.T) {
	svc := NewBookingService(testCatalog(), "254700000111", nil, nil)
	req := validBooking()
	req.Phone = "0712 345 678"

	res, err := svc.Book(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, res.Message, "Phone: +254712345678")
}

// blockingNotifier holds every alert until release is closed or the
// context ends.
type blockingNotifier struct {
	release chan struct{}
	ctxErr  error
}

func (n *blockingNotifier) Notify(ctx context.Context, body string) error {
	select {
	case <-n.release:
		return nil
	case <-ctx.Done():
		n.ctxErr = ctx.Err()
		return ctx.Err()
	}
}

func TestBookDoesNotWaitForFollowUp(t *testing.T) {
	leads := &fakeLeads{}
	notifier := &blockingNotifier{release: make(chan struct{})}
	svc := NewBookingService(testCatalog(), "254700000111", leads, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	start := time.Now()
	res, err := svc.Book(ctx, validBooking())
	require.NoError(t, err)
	assert.NotEmpty(t, res.WhatsAppURL)
	assert.Less(t, time.Since(start), time.Second)

	// The customer leaving must not cancel the follow-up.
	cancel()
	close(notifier.release)
	svc.Wait()

	assert.NoError(t, notifier.ctxErr)
	assert.Len(t, leads.recorded, 1)
	assert.Equal(t, 1, leads.notified)
}
