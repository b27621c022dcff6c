package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a dated note on a reading log, distinct from the log's inline review text.
type Review struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReadingLogID uuid.UUID  `gorm:"type:uuid;not null;index" json:"reading_log_id"`
	OwnerID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	PageNumber   *int       `json:"page_number,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}
