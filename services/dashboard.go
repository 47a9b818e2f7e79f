package services

import (
	"context"
	"fmt"
	"log/slog"

	"optimasfibre-web/models"
)

type DashboardData struct {
	Blog      []models.BlogPost      `json:"blog"`
	Portfolio []models.PortfolioItem `json:"portfolio"`
	Invoices  []models.Invoice       `json:"invoices"`
	Receipts  []models.Receipt       `json:"receipts"`
	Stats     models.Stats           `json:"stats"`
	Settings  models.Settings        `json:"settings"`
	Warnings  []string               `json:"warnings,omitempty"`
}

type DashboardLoader struct {
	api *APIClient
}

func NewDashboardLoader(api *APIClient) *DashboardLoader {
	return &DashboardLoader{api: api}
}

// Load fetches every dashboard collection in order. A missing or expired
// token fails before any request is made. The blog fetch and any 401 are
// fatal; every other failure leaves that collection empty and adds a warning.
func (l *DashboardLoader) Load(ctx context.Context, token string) (*DashboardData, error) {
	if err := l.api.checkToken(token); err != nil {
		return nil, err
	}

	data := &DashboardData{}

	blog, err := l.api.ListBlog(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("loading blog posts: %w", err)
	}
	data.Blog = blog

	steps := []struct {
		name string
		run  func() error
	}{
		{"portfolio", func() (err error) { data.Portfolio, err = l.api.ListPortfolio(ctx, token); return }},
		{"invoices", func() (err error) { data.Invoices, err = l.api.ListInvoices(ctx, token); return }},
		{"receipts", func() (err error) { data.Receipts, err = l.api.ListReceipts(ctx, token); return }},
		{"stats", func() (err error) { data.Stats, err = l.api.GetStats(ctx, token); return }},
		{"settings", func() (err error) { data.Settings, err = l.api.GetSettings(ctx, token); return }},
	}
	for _, step := range steps {
		err := step.run()
		if err == nil {
			continue
		}
		if IsAuthError(err) {
			return nil, fmt.Errorf("loading %s: %w", step.name, err)
		}
		slog.Warn("Dashboard collection unavailable", "collection", step.name, "error", err)
		data.Warnings = append(data.Warnings, fmt.Sprintf("%s unavailable: %v", step.name, err))
	}

	data.Portfolio = orEmpty(data.Portfolio)
	data.Invoices = NumberInvoices(orEmpty(data.Invoices))
	data.Receipts = NumberReceipts(orEmpty(data.Receipts))
	if data.Stats == nil {
		data.Stats = models.Stats{}
	}
	if data.Settings == nil {
		data.Settings = models.Settings{}
	}
	return data, nil
}
