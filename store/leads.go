package store

import (
	"context"

	"optimasfibre-web/models"

	"gorm.io/gorm"
)

type LeadStore struct {
	db *gorm.DB
}

func NewLeadStore(db *gorm.DB) *LeadStore {
	return &LeadStore{db: db}
}

func (s *LeadStore) RecordLead(ctx context.Context, lead *models.BookingLead) error {
	return s.db.WithContext(ctx).Create(lead).Error
}

func (s *LeadStore) MarkNotified(ctx context.Context, lead *models.BookingLead) error {
	return s.db.WithContext(ctx).Model(lead).Update("notified", true).Error
}

// RecentLeads returns the newest leads first.
func (s *LeadStore) RecentLeads(ctx context.Context, limit int) ([]models.BookingLead, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var leads []models.BookingLead
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&leads).Error
	if leads == nil {
		leads = []models.BookingLead{}
	}
	return leads, err
}
