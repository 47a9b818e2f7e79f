package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"optimasfibre-web/models"
	"optimasfibre-web/utils"

	"github.com/go-playground/validator/v10"
)

var fieldValidator = validator.New()

// followUpTimeout bounds the lead insert and staff alert that run after a
// booking has been answered.
const followUpTimeout = 30 * time.Second

type BookingRequest struct {
	PlanID   string `json:"planId" form:"planId"`
	Name     string `json:"name" form:"name"`
	Phone    string `json:"phone" form:"phone"`
	Email    string `json:"email" form:"email"`
	Location string `json:"location" form:"location"`
	Message  string `json:"message" form:"message"`
}

type BookingResult struct {
	Plan        models.Plan `json:"plan"`
	Message     string      `json:"message"`
	WhatsAppURL string      `json:"whatsappUrl"`
}

// LeadRecorder persists booking leads. Implemented by store.LeadStore.
type LeadRecorder interface {
	RecordLead(ctx context.Context, lead *models.BookingLead) error
	MarkNotified(ctx context.Context, lead *models.BookingLead) error
}

type BookingService struct {
	catalog  *models.Catalog
	number   string
	leads    LeadRecorder
	notifier Notifier
	pending  sync.WaitGroup
}

// NewBookingService hands bookings off to the business WhatsApp number.
// leads and notifier may be nil.
func NewBookingService(catalog *models.Catalog, whatsappNumber string, leads LeadRecorder, notifier Notifier) *BookingService {
	return &BookingService{catalog: catalog, number: whatsappNumber, leads: leads, notifier: notifier}
}

// Book validates the request and returns the WhatsApp deep link. Nothing is
// recorded or sent when validation fails. The lead is recorded and staff
// alerted in the background, detached from the request's cancellation.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	req = trimBooking(req)

	plan, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if s.number == "" {
		return nil, fmt.Errorf("booking number is not configured")
	}
	req.Phone = utils.NormalizePhone(req.Phone, utils.DefaultCountryCode)

	text := BookingMessage(plan, req)
	result := &BookingResult{
		Plan:        plan,
		Message:     text,
		WhatsAppURL: WaMeLink(s.number, text),
	}

	if s.leads != nil || s.notifier != nil {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), followUpTimeout)
			defer cancel()
			s.followUp(fctx, plan, req)
		}()
	}
	return result, nil
}

// Wait blocks until every background follow-up has finished.
func (s *BookingService) Wait() {
	s.pending.Wait()
}

func (s *BookingService) validate(req BookingRequest) (models.Plan, error) {
	if req.PlanID == "" {
		return models.Plan{}, invalid("planId", "Please select a plan")
	}
	plan, ok := PlanByID(s.catalog, req.PlanID)
	if !ok {
		return models.Plan{}, invalid("planId", "Selected plan is not available")
	}
	if !plan.Bookable() {
		return models.Plan{}, invalid("planId", "Selected plan is missing its details")
	}
	if req.Name == "" {
		return models.Plan{}, invalid("name", "Name is required")
	}
	if req.Phone == "" {
		return models.Plan{}, invalid("phone", "Phone number is required")
	}
	if !utils.ValidateLocalOrInternationalPhone(req.Phone) {
		return models.Plan{}, invalid("phone", "Phone number is not valid")
	}
	if req.Location == "" {
		return models.Plan{}, invalid("location", "Location is required")
	}
	if req.Email != "" {
		if err := fieldValidator.Var(req.Email, "email"); err != nil {
			return models.Plan{}, invalid("email", "Email address is not valid")
		}
	}
	return plan, nil
}

func (s *BookingService) followUp(ctx context.Context, plan models.Plan, req BookingRequest) {
	lead := &models.BookingLead{
		PlanID:   plan.ID,
		PlanName: plan.Name,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Location: req.Location,
		Message:  req.Message,
	}
	if s.leads != nil {
		if err := s.leads.RecordLead(ctx, lead); err != nil {
			slog.ErrorContext(ctx, "Failed to record booking lead", "plan", plan.ID, "error", err)
			lead = nil
		}
	}

	if s.notifier == nil {
		return
	}
	alert := fmt.Sprintf("New booking: %s (%s) for %s in %s", req.Name, req.Phone, plan.Name, req.Location)
	if err := s.notifier.Notify(ctx, alert); err != nil {
		slog.ErrorContext(ctx, "Failed to alert staff about booking", "plan", plan.ID, "error", err)
		return
	}
	if s.leads != nil && lead != nil {
		if err := s.leads.MarkNotified(ctx, lead); err != nil {
			slog.WarnContext(ctx, "Failed to mark lead notified", "lead", lead.ID, "error", err)
		}
	}
}

// BookingMessage renders the fixed booking template.
func BookingMessage(plan models.Plan, req BookingRequest) string {
	var b strings.Builder
	b.WriteString("Hello Optimas Fibre! I would like to book an internet plan.\n\n")
	b.WriteString("*Plan details*\n")
	fmt.Fprintf(&b, "Plan: %s\n", plan.Name)
	if plan.Speed != "" {
		fmt.Fprintf(&b, "Speed: %s\n", plan.Speed)
	}
	price := plan.Price
	if plan.Period != "" {
		price += "/" + plan.Period
	}
	fmt.Fprintf(&b, "Price: %s\n", price)
	fmt.Fprintf(&b, "Features: %s\n\n", strings.Join(plan.Features, ", "))
	b.WriteString("*My details*\n")
	fmt.Fprintf(&b, "Name: %s\n", req.Name)
	fmt.Fprintf(&b, "Phone: %s\n", req.Phone)
	if req.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", req.Email)
	}
	fmt.Fprintf(&b, "Location: %s", req.Location)
	if req.Message != "" {
		fmt.Fprintf(&b, "\n\n%s", req.Message)
	}
	return b.String()
}

func trimBooking(req BookingRequest) BookingRequest {
	req.PlanID = strings.TrimSpace(req.PlanID)
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.Location = strings.TrimSpace(req.Location)
	req.Message = strings.TrimSpace(req.Message)
	return req
}
