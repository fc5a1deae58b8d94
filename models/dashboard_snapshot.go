package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DashboardSnapshot keeps the last dashboard payload fetched for a user so the
// dashboard can still render when the task API is unavailable.
type DashboardSnapshot struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserKey   string    `gorm:"not null;uniqueIndex" json:"-"` // blake2b of the API user id
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	FetchedAt time.Time `gorm:"not null;index" json:"fetched_at"`
}

// BeforeCreate hook to generate UUID
func (s *DashboardSnapshot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// Age returns how long ago the payload was fetched
func (s *DashboardSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

func (DashboardSnapshot) TableName() string {
	return "dashboard_snapshots"
}
