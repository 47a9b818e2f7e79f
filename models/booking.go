package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingLead records a booking that was handed off to WhatsApp.
type BookingLead struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlanID    string    `gorm:"type:varchar(64);index;not null" json:"planId"`
	PlanName  string    `gorm:"not null" json:"planName"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"not null" json:"phone"`
	Email     string    `json:"email,omitempty"`
	Location  string    `gorm:"not null" json:"location"`
	Message   string    `gorm:"type:text" json:"message,omitempty"`
	Notified  bool      `gorm:"default:false" json:"notified"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (l *BookingLead) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
